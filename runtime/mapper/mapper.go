// Package mapper builds typed records from result rows.
//
// A Schema declares, once, how each column maps onto a field of T and how the
// raw driver value is coerced. Rows are keyed by snake_case column names;
// fields are registered under their lowerCamelCase names.
//
//	var users = mapper.NewSchema[User]().
//		Int("id", func(u *User) *int64 { return &u.ID }).
//		String("email", func(u *User) *string { return &u.Email }).
//		Time("createdAt", func(u *User) *time.Time { return &u.CreatedAt })
//
//	user, err := users.Build(row)
package mapper

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/yabx-net/mysql/query/executor"
)

type binding[T any] struct {
	name string
	set  func(*T, any) error
}

// Schema maps columns onto fields of T
type Schema[T any] struct {
	bindings []binding[T]
	byName   map[string]int
}

// NewSchema creates an empty Schema
func NewSchema[T any]() *Schema[T] {
	return &Schema[T]{byName: make(map[string]int)}
}

// Field registers a custom setter for name. set receives the non-nil raw value.
func (s *Schema[T]) Field(name string, set func(*T, any) error) *Schema[T] {
	if i, ok := s.byName[name]; ok {
		s.bindings[i].set = set
		return s
	}
	s.byName[name] = len(s.bindings)
	s.bindings = append(s.bindings, binding[T]{name: name, set: set})
	return s
}

// Int binds an integer field
func (s *Schema[T]) Int(name string, field func(*T) *int64) *Schema[T] {
	return s.Field(name, func(t *T, v any) error {
		n, err := toInt64(normalize(v))
		if err != nil {
			return err
		}
		*field(t) = n
		return nil
	})
}

// Float binds a floating point field
func (s *Schema[T]) Float(name string, field func(*T) *float64) *Schema[T] {
	return s.Field(name, func(t *T, v any) error {
		f, err := cast.ToFloat64E(normalize(v))
		if err != nil {
			return err
		}
		*field(t) = f
		return nil
	})
}

// String binds a string field
func (s *Schema[T]) String(name string, field func(*T) *string) *Schema[T] {
	return s.Field(name, func(t *T, v any) error {
		str, err := cast.ToStringE(normalize(v))
		if err != nil {
			return err
		}
		*field(t) = str
		return nil
	})
}

// Bool binds a boolean field
func (s *Schema[T]) Bool(name string, field func(*T) *bool) *Schema[T] {
	return s.Field(name, func(t *T, v any) error {
		b, err := toBool(normalize(v))
		if err != nil {
			return err
		}
		*field(t) = b
		return nil
	})
}

// Time binds a time field. Strings are parsed from their serialized form.
func (s *Schema[T]) Time(name string, field func(*T) *time.Time) *Schema[T] {
	return s.Field(name, func(t *T, v any) error {
		ts, err := cast.ToTimeE(normalize(v))
		if err != nil {
			return err
		}
		*field(t) = ts
		return nil
	})
}

// JSON binds a field holding a JSON encoded collection. Values that fail to
// decode leave the field at its zero value.
func JSON[T, E any](s *Schema[T], name string, field func(*T) *E) *Schema[T] {
	return s.Field(name, func(t *T, v any) error {
		var out E
		str, err := cast.ToStringE(normalize(v))
		if err == nil {
			if err := json.Unmarshal([]byte(str), &out); err != nil {
				var zero E
				out = zero
			}
		}
		*field(t) = out
		return nil
	})
}

// Columns returns the snake_case column names of all bindings in
// registration order, suitable for a select field list.
func (s *Schema[T]) Columns() []string {
	cols := make([]string, len(s.bindings))
	for i, b := range s.bindings {
		cols[i] = CamelToSnake(b.name)
	}
	return cols
}

// Build creates a T from row. Columns without a binding and bindings without
// a column are skipped; NULL leaves the field at its zero value.
func (s *Schema[T]) Build(row map[string]any) (*T, error) {
	out := new(T)
	for column, value := range row {
		i, ok := s.byName[SnakeToCamel(column)]
		if !ok || value == nil {
			continue
		}
		if err := s.bindings[i].set(out, value); err != nil {
			return nil, fmt.Errorf("mapper: column %s: %w", column, err)
		}
	}
	return out, nil
}

// BuildAll creates a T for every row
func (s *Schema[T]) BuildAll(rows []executor.Row) ([]*T, error) {
	out := make([]*T, 0, len(rows))
	for _, row := range rows {
		item, err := s.Build(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// toInt64 reads strings as base 10, so zero-padded values such as "0042"
// from ZEROFILL or VARCHAR columns are not taken as octal. Decimal strings
// are truncated toward zero.
func toInt64(v any) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return cast.ToInt64E(v)
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("unable to cast %q to int64", s)
	}
	return int64(f), nil
}

// toBool treats any non-zero number, numeric string included, as true.
// Other strings go through cast ("true", "false", "t", "f", ...).
func toBool(v any) (bool, error) {
	s, ok := v.(string)
	if !ok {
		return cast.ToBoolE(v)
	}
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0, nil
	}
	if s == "" {
		return false, nil
	}
	return cast.ToBoolE(s)
}

func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
