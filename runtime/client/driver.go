package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yabx-net/mysql/query/escape"
	"github.com/yabx-net/mysql/query/executor"
)

// sqlDriver runs statements on a single dedicated *sql.Conn so session state
// (transactions, SET NAMES) stays on one server session.
type sqlDriver struct {
	db    *sql.DB
	conn  *sql.Conn
	quote func(string) string
}

func (d *sqlDriver) Query(ctx context.Context, query string) ([]executor.Row, error) {
	rows, err := d.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	result := make([]executor.Row, 0)
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(executor.Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (d *sqlDriver) Exec(ctx context.Context, query string) (executor.ExecResult, error) {
	res, err := d.conn.ExecContext(ctx, query)
	if err != nil {
		return executor.ExecResult{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return executor.ExecResult{}, fmt.Errorf("failed to get last insert id: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return executor.ExecResult{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return executor.ExecResult{LastInsertID: id, RowsAffected: n}, nil
}

func (d *sqlDriver) Escape(s string) string {
	if d.quote == nil {
		return escape.Backslash(s)
	}
	return d.quote(s)
}

func (d *sqlDriver) Close() error {
	connErr := d.conn.Close()
	if err := d.db.Close(); err != nil {
		return err
	}
	return connErr
}
