// Package client provides the MySQL Connection: it owns a single server
// session and exposes the statement builders, templated queries and
// transaction control on top of it.
package client

import (
	"log/slog"
	"time"

	"github.com/yabx-net/mysql/query/escape"
	"github.com/yabx-net/mysql/query/executor"
	"github.com/yabx-net/mysql/query/sqlgen"
	"github.com/yabx-net/mysql/query/template"
	"github.com/yabx-net/mysql/runtime/pool"
)

// Re-exported so callers rarely need the lower level packages
type (
	Row        = executor.Row
	ExecResult = executor.ExecResult
	Middleware = executor.Middleware
)

// Driver is the database session a Connection runs on. Escape is the
// driver's string escaping primitive for double-quoted literals.
type Driver interface {
	executor.Driver
	Escape(s string) string
}

// Pool is a registry of connections addressed by creation order
type Pool = pool.Registry[*Connection]

// NewPool creates an empty connection registry
func NewPool() *Pool {
	return pool.New[*Connection]()
}

type options struct {
	logger      *slog.Logger
	pool        *Pool
	middlewares []Middleware
	timeout     time.Duration
}

// Option configures a Connection
type Option func(*options)

// WithLogger sets the diagnostic logger. Statements are logged at debug
// level and failures at error level. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPool registers the connection in p when it is created
func WithPool(p *Pool) Option {
	return func(o *options) {
		o.pool = p
	}
}

// WithMiddleware adds query middlewares
func WithMiddleware(mw ...Middleware) Option {
	return func(o *options) {
		o.middlewares = append(o.middlewares, mw...)
	}
}

// WithStatementTimeout bounds every statement. Zero disables the limit.
// A statement that times out takes its server session with it; see
// Config.StatementTimeout.
func WithStatementTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// Connection runs statements on one driver session. It is not safe for
// concurrent use; drive each Connection from one goroutine at a time.
type Connection struct {
	driver   Driver
	exec     *executor.Executor
	gen      *sqlgen.Generator
	renderer *template.Renderer
	logger   *slog.Logger
	index    int
}

// New creates a Connection over an existing driver session
func New(driver Driver, opts ...Option) *Connection {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	esc := escape.New(driver.Escape)
	c := &Connection{
		driver: driver,
		exec: executor.New(driver,
			executor.WithLogger(o.logger),
			executor.WithTimeout(o.timeout),
			executor.WithMiddleware(o.middlewares...),
		),
		gen:      sqlgen.NewGenerator(esc),
		renderer: template.New(esc),
		logger:   o.logger,
		index:    -1,
	}

	if o.pool != nil {
		c.index = o.pool.Register(c)
	}
	return c
}

// Index returns the connection's position in its pool, or -1
func (c *Connection) Index() int {
	return c.index
}

// Driver returns the underlying driver session
func (c *Connection) Driver() Driver {
	return c.driver
}

// Use appends a query middleware
func (c *Connection) Use(mw Middleware) {
	c.exec.Use(mw)
}

// Close releases the driver session if the driver supports it
func (c *Connection) Close() error {
	if closer, ok := c.driver.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
