// Package ordered provides the insertion-ordered mapping used to describe
// where clauses, row data and other column-keyed inputs.
package ordered

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is a string-keyed map that remembers insertion order.
// The zero value is ready to use; a nil *Map behaves as an empty map for reads.
type Map struct {
	pairs *orderedmap.OrderedMap[string, any]
}

// New creates an empty Map
func New() *Map {
	return &Map{pairs: orderedmap.New[string, any]()}
}

// Of builds a Map from a Go map. Keys are sorted so the result is deterministic.
func Of(values map[string]any) *Map {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := New()
	for _, k := range keys {
		m.Set(k, values[k])
	}
	return m
}

// Set stores value under key and returns the map for chaining.
// Re-setting an existing key keeps its original position.
func (m *Map) Set(key string, value any) *Map {
	if m.pairs == nil {
		m.pairs = orderedmap.New[string, any]()
	}
	m.pairs.Set(key, value)
	return m
}

// Get returns the value stored under key
func (m *Map) Get(key string) (any, bool) {
	if m == nil || m.pairs == nil {
		return nil, false
	}
	return m.pairs.Get(key)
}

// Delete removes key from the map
func (m *Map) Delete(key string) {
	if m == nil || m.pairs == nil {
		return
	}
	m.pairs.Delete(key)
}

// Len returns the number of entries
func (m *Map) Len() int {
	if m == nil || m.pairs == nil {
		return 0
	}
	return m.pairs.Len()
}

// Keys returns the keys in insertion order
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	_ = m.Each(func(key string, _ any) error {
		keys = append(keys, key)
		return nil
	})
	return keys
}

// Each calls fn for every entry in insertion order and stops at the first error.
func (m *Map) Each(fn func(key string, value any) error) error {
	if m == nil || m.pairs == nil {
		return nil
	}
	for pair := m.pairs.Oldest(); pair != nil; pair = pair.Next() {
		if err := fn(pair.Key, pair.Value); err != nil {
			return err
		}
	}
	return nil
}
