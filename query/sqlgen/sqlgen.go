// Package sqlgen generates MySQL statements from structured inputs.
//
// All identifiers pass through escape.Identifier and all values through the
// Generator's Escaper; the generated SQL carries no bind arguments.
package sqlgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yabx-net/mysql/query/escape"
	"github.com/yabx-net/mysql/query/ordered"
)

// Transaction control statements
const (
	StartTransaction = "START TRANSACTION"
	Commit           = "COMMIT"
	Rollback         = "ROLLBACK"
)

var (
	// ErrEmptyWhere is returned when an UPDATE or DELETE has no conditions.
	// Unconditional full-table writes must be issued as explicit raw statements.
	ErrEmptyWhere = errors.New("sqlgen: refusing to build statement without WHERE conditions")

	// ErrEmptyData is returned when an UPDATE has nothing to set
	ErrEmptyData = errors.New("sqlgen: no columns to set")

	// ErrInvalidDirection is returned for ORDER BY directions other than ASC and DESC
	ErrInvalidDirection = errors.New("sqlgen: invalid order direction")
)

// OrderBy represents an ORDER BY term
type OrderBy struct {
	Field     string
	Direction string // "ASC", "DESC" or empty
}

// SelectQuery describes a SELECT statement
type SelectQuery struct {
	Table   string
	Where   *ordered.Map
	OrderBy []OrderBy
	Limit   int // <= 0 means no limit
	Fields  []escape.Field
}

// Generator generates MySQL statements
type Generator struct {
	esc *escape.Escaper
}

// NewGenerator creates a Generator that escapes values with esc
func NewGenerator(esc *escape.Escaper) *Generator {
	return &Generator{esc: esc}
}

// Escaper returns the value escaper used by the generator
func (g *Generator) Escaper() *escape.Escaper {
	return g.esc
}

// Select generates a SELECT statement
func (g *Generator) Select(q SelectQuery) (string, error) {
	fields := "*"
	if len(q.Fields) > 0 {
		var err error
		if fields, err = escape.Identifier(q.Fields); err != nil {
			return "", err
		}
	}
	table, err := escape.Identifier(q.Table)
	if err != nil {
		return "", err
	}

	parts := []string{"SELECT " + fields, "FROM " + table}

	where, err := g.Where(q.Where)
	if err != nil {
		return "", err
	}
	if where != "" {
		parts = append(parts, where)
	}

	if len(q.OrderBy) > 0 {
		order, err := orderClause(q.OrderBy)
		if err != nil {
			return "", err
		}
		parts = append(parts, order)
	}

	if q.Limit > 0 {
		parts = append(parts, "LIMIT "+strconv.Itoa(q.Limit))
	}

	return strings.Join(parts, " "), nil
}

// Insert generates an INSERT statement. With ignore set, rows that would
// violate a unique key are skipped by the server instead of failing.
func (g *Generator) Insert(table string, data *ordered.Map, ignore bool) (string, error) {
	columns := data.Keys()
	values := make([]any, 0, len(columns))
	_ = data.Each(func(_ string, value any) error {
		values = append(values, value)
		return nil
	})
	return g.InsertMany(table, columns, [][]any{values}, ignore)
}

// InsertMany generates a multi-row INSERT statement. Every row must have one
// value per column.
func (g *Generator) InsertMany(table string, columns []string, rows [][]any, ignore bool) (string, error) {
	if len(rows) == 0 {
		return "", ErrEmptyData
	}
	quotedTable, err := escape.Identifier(table)
	if err != nil {
		return "", err
	}

	cols := ""
	if len(columns) > 0 {
		if cols, err = escape.Identifier(columns); err != nil {
			return "", err
		}
	}

	tuples := make([]string, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return "", fmt.Errorf("sqlgen: row %d has %d values for %d columns", i, len(row), len(columns))
		}
		list := make(escape.List, len(row))
		for j, v := range row {
			if list[j], err = escape.ValueOf(v); err != nil {
				return "", err
			}
		}
		if len(list) == 0 {
			tuples[i] = "()"
			continue
		}
		if tuples[i], err = g.esc.Literal(list); err != nil {
			return "", err
		}
	}

	verb := "INSERT INTO "
	if ignore {
		verb = "INSERT IGNORE INTO "
	}
	return verb + quotedTable + " (" + cols + ") VALUES " + strings.Join(tuples, ", "), nil
}

// Update generates an UPDATE statement. Both data and where must be non-empty.
func (g *Generator) Update(table string, data, where *ordered.Map) (string, error) {
	if data.Len() == 0 {
		return "", ErrEmptyData
	}
	if where.Len() == 0 {
		return "", ErrEmptyWhere
	}
	quotedTable, err := escape.Identifier(table)
	if err != nil {
		return "", err
	}

	pairs := make([]string, 0, data.Len())
	err = data.Each(func(key string, value any) error {
		col, err := escape.Identifier(key)
		if err != nil {
			return err
		}
		val, err := g.esc.Value(value)
		if err != nil {
			return err
		}
		pairs = append(pairs, col+" = "+val)
		return nil
	})
	if err != nil {
		return "", err
	}

	whereSQL, err := g.Where(where)
	if err != nil {
		return "", err
	}
	return "UPDATE " + quotedTable + " SET " + strings.Join(pairs, ", ") + " " + whereSQL, nil
}

// Delete generates a DELETE statement. where must be non-empty.
func (g *Generator) Delete(table string, where *ordered.Map) (string, error) {
	if where.Len() == 0 {
		return "", ErrEmptyWhere
	}
	quotedTable, err := escape.Identifier(table)
	if err != nil {
		return "", err
	}
	whereSQL, err := g.Where(where)
	if err != nil {
		return "", err
	}
	return "DELETE FROM " + quotedTable + " " + whereSQL, nil
}
