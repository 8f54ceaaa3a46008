// Package pool provides an append-only registry of connections addressed by
// insertion index.
package pool

import (
	"fmt"
	"sync"
)

// RegistryLookupError is returned when no connection exists at an index
type RegistryLookupError struct {
	Index int
	Size  int
}

func (e *RegistryLookupError) Error() string {
	return fmt.Sprintf("pool: there is no connection at index %d (registered: %d)", e.Index, e.Size)
}

// Registry holds connections in the order they were registered.
// Entries are never removed.
type Registry[T any] struct {
	mu    sync.RWMutex
	conns []T
}

// New creates an empty Registry
func New[T any]() *Registry[T] {
	return &Registry[T]{}
}

// Register appends conn and returns its index
func (r *Registry[T]) Register(conn T) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns = append(r.conns, conn)
	return len(r.conns) - 1
}

// Get returns the connection registered at index
func (r *Registry[T]) Get(index int) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.conns) {
		var zero T
		return zero, &RegistryLookupError{Index: index, Size: len(r.conns)}
	}
	return r.conns[index], nil
}

// Len returns the number of registered connections
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// All returns a copy of the registered connections in index order
func (r *Registry[T]) All() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, len(r.conns))
	copy(out, r.conns)
	return out
}
