package client

import (
	"context"
	"strings"

	"github.com/yabx-net/mysql/query/escape"
	"github.com/yabx-net/mysql/query/ordered"
	"github.com/yabx-net/mysql/query/sqlgen"
)

// Query renders tmpl with params and returns all rows.
//
// Placeholders: {$name} is replaced by the escaped value, {&name} by the
// escaped identifier and {#name} by the raw, unescaped string form.
func (c *Connection) Query(ctx context.Context, tmpl string, params map[string]any) ([]Row, error) {
	query, err := c.renderer.Render(tmpl, params)
	if err != nil {
		return nil, err
	}
	return c.exec.Query(ctx, query)
}

// QueryOne is Query limited to one row. It appends LIMIT 1 unless the
// template already ends with it, and returns a nil Row when nothing matches.
func (c *Connection) QueryOne(ctx context.Context, tmpl string, params map[string]any) (Row, error) {
	tmpl = strings.TrimRight(tmpl, " \t\r\n;")
	if !strings.HasSuffix(strings.ToUpper(tmpl), "LIMIT 1") {
		tmpl += " LIMIT 1"
	}
	rows, err := c.Query(ctx, tmpl, params)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// Exec renders tmpl with params and executes it as a write
func (c *Connection) Exec(ctx context.Context, tmpl string, params map[string]any) (ExecResult, error) {
	query, err := c.renderer.Render(tmpl, params)
	if err != nil {
		return ExecResult{}, err
	}
	return c.exec.Exec(ctx, query)
}

// SelectOption customises Select
type SelectOption func(*sqlgen.SelectQuery)

// OrderBy appends an ORDER BY term. direction is "ASC", "DESC" or empty.
func OrderBy(field, direction string) SelectOption {
	return func(q *sqlgen.SelectQuery) {
		q.OrderBy = append(q.OrderBy, sqlgen.OrderBy{Field: field, Direction: direction})
	}
}

// Limit caps the number of rows
func Limit(n int) SelectOption {
	return func(q *sqlgen.SelectQuery) {
		q.Limit = n
	}
}

// Fields selects columns, optionally aliased with escape.As
func Fields(fields ...escape.Field) SelectOption {
	return func(q *sqlgen.SelectQuery) {
		q.Fields = append(q.Fields, fields...)
	}
}

// Columns selects plain columns
func Columns(names ...string) SelectOption {
	return Fields(escape.Fields(names...)...)
}

// Select returns the rows of table matching where
func (c *Connection) Select(ctx context.Context, table string, where *ordered.Map, opts ...SelectOption) ([]Row, error) {
	q := sqlgen.SelectQuery{Table: table, Where: where}
	for _, opt := range opts {
		opt(&q)
	}
	query, err := c.gen.Select(q)
	if err != nil {
		return nil, err
	}
	return c.exec.Query(ctx, query)
}

// SelectOne returns the first row of table matching where, or nil
func (c *Connection) SelectOne(ctx context.Context, table string, where *ordered.Map, opts ...SelectOption) (Row, error) {
	rows, err := c.Select(ctx, table, where, append(opts, Limit(1))...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// Insert inserts data into table and returns the generated AUTO_INCREMENT id
// (0 when the table has none).
func (c *Connection) Insert(ctx context.Context, table string, data *ordered.Map) (int64, error) {
	return c.insert(ctx, table, data, false)
}

// InsertIgnore is Insert with INSERT IGNORE. A row skipped because of a
// duplicate key yields no error and an id of 0.
func (c *Connection) InsertIgnore(ctx context.Context, table string, data *ordered.Map) (int64, error) {
	return c.insert(ctx, table, data, true)
}

func (c *Connection) insert(ctx context.Context, table string, data *ordered.Map, ignore bool) (int64, error) {
	query, err := c.gen.Insert(table, data, ignore)
	if err != nil {
		return 0, err
	}
	res, err := c.exec.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.LastInsertID, nil
}

// InsertMany inserts several rows in one statement. LastInsertID in the
// result is the id of the first inserted row.
func (c *Connection) InsertMany(ctx context.Context, table string, columns []string, rows [][]any) (ExecResult, error) {
	query, err := c.gen.InsertMany(table, columns, rows, false)
	if err != nil {
		return ExecResult{}, err
	}
	return c.exec.Exec(ctx, query)
}

// Update sets data on the rows matching where and returns the affected row
// count. An empty where is rejected with sqlgen.ErrEmptyWhere.
func (c *Connection) Update(ctx context.Context, table string, data, where *ordered.Map) (int64, error) {
	query, err := c.gen.Update(table, data, where)
	if err != nil {
		return 0, err
	}
	res, err := c.exec.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// Delete removes the rows matching where and returns the affected row count.
// An empty where is rejected with sqlgen.ErrEmptyWhere.
func (c *Connection) Delete(ctx context.Context, table string, where *ordered.Map) (int64, error) {
	query, err := c.gen.Delete(table, where)
	if err != nil {
		return 0, err
	}
	res, err := c.exec.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// Where renders a WHERE clause with this connection's escaping rules
func (c *Connection) Where(conditions *ordered.Map) (string, error) {
	return c.gen.Where(conditions)
}

// EscapeValue renders v as a SQL literal
func (c *Connection) EscapeValue(v any) (string, error) {
	return c.gen.Escaper().Value(v)
}

// EscapeIdentifier quotes a table, column or alias reference
func (c *Connection) EscapeIdentifier(id any) (string, error) {
	return escape.Identifier(id)
}
