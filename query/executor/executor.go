// Package executor sends finished SQL to a driver and converts driver
// failures into typed errors.
package executor

import (
	"context"
	"log/slog"
	"time"
)

// Row is a single result row keyed by column name
type Row map[string]any

// ExecResult holds the driver state read right after a write
type ExecResult struct {
	// LastInsertID is the AUTO_INCREMENT value generated by the statement, or 0.
	LastInsertID int64
	// RowsAffected is the number of rows changed by the statement.
	RowsAffected int64
}

// Driver executes final SQL strings. Implementations own a single server
// session; they are not required to be safe for concurrent use.
type Driver interface {
	// Query runs a statement that returns rows.
	Query(ctx context.Context, query string) ([]Row, error)
	// Exec runs a statement that does not return rows.
	Exec(ctx context.Context, query string) (ExecResult, error)
}

// Option configures an Executor
type Option func(*Executor)

// WithLogger logs every statement at debug level and failures at error level
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.middlewares = append([]Middleware{LoggingMiddleware(logger)}, e.middlewares...)
		}
	}
}

// WithTimeout bounds every statement. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		e.timeout = d
	}
}

// WithMiddleware appends middlewares to the chain
func WithMiddleware(mw ...Middleware) Option {
	return func(e *Executor) {
		e.middlewares = append(e.middlewares, mw...)
	}
}

// Executor runs statements through the middleware chain and classifies errors
type Executor struct {
	driver      Driver
	timeout     time.Duration
	middlewares []Middleware
}

// New creates an Executor over the given driver
func New(driver Driver, opts ...Option) *Executor {
	e := &Executor{driver: driver}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Use appends a middleware to the chain
func (e *Executor) Use(mw Middleware) {
	e.middlewares = append(e.middlewares, mw)
}

// Query executes a statement that returns rows
func (e *Executor) Query(ctx context.Context, query string) ([]Row, error) {
	var rows []Row
	err := e.run(ctx, query, func(ctx context.Context) error {
		var err error
		rows, err = e.driver.Query(ctx, query)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Exec executes a statement that does not return rows
func (e *Executor) Exec(ctx context.Context, query string) (ExecResult, error) {
	var res ExecResult
	err := e.run(ctx, query, func(ctx context.Context) error {
		var err error
		res, err = e.driver.Exec(ctx, query)
		return err
	})
	if err != nil {
		return ExecResult{}, err
	}
	return res, nil
}

func (e *Executor) run(ctx context.Context, query string, call func(context.Context) error) error {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	exec := func() error {
		return Classify(query, call(ctx))
	}
	if len(e.middlewares) == 0 {
		return exec()
	}
	return chain(ctx, e.middlewares, &QueryEvent{Query: query, Start: time.Now()}, exec)
}
