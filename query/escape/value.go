// Package escape turns Go values and identifiers into MySQL fragments.
//
// Every statement built by this module routes user-controlled values through
// Escaper.Value and identifiers through Identifier; nothing else is allowed to
// concatenate caller input into SQL.
package escape

import (
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// TimeFormat is the ISO-8601 layout used for temporal values.
const TimeFormat = "2006-01-02T15:04:05-07:00"

// Value is a SQL literal. Implementations are limited to the kinds declared
// in this package: Null, Int, Uint, Float, Bool, Text, Time and List.
type Value interface {
	appendSQL(b []byte, quote func(string) string) ([]byte, error)
}

// Null is the SQL NULL literal
type Null struct{}

// Int is a signed integer literal
type Int int64

// Uint is an unsigned integer literal
type Uint uint64

// Float is a floating point literal
type Float float64

// Bool renders as TRUE or FALSE
type Bool bool

// Text is a quoted string literal
type Text string

// Time renders as its ISO-8601 text form
type Time time.Time

// List renders as a parenthesized, comma separated list
type List []Value

func (Null) appendSQL(b []byte, _ func(string) string) ([]byte, error) {
	return append(b, "NULL"...), nil
}

func (v Int) appendSQL(b []byte, _ func(string) string) ([]byte, error) {
	return strconv.AppendInt(b, int64(v), 10), nil
}

func (v Uint) appendSQL(b []byte, _ func(string) string) ([]byte, error) {
	return strconv.AppendUint(b, uint64(v), 10), nil
}

func (v Float) appendSQL(b []byte, _ func(string) string) ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return b, &UnsupportedTypeError{Type: "float " + strconv.FormatFloat(f, 'g', -1, 64)}
	}
	return strconv.AppendFloat(b, f, 'g', -1, 64), nil
}

func (v Bool) appendSQL(b []byte, _ func(string) string) ([]byte, error) {
	if v {
		return append(b, "TRUE"...), nil
	}
	return append(b, "FALSE"...), nil
}

func (v Text) appendSQL(b []byte, quote func(string) string) ([]byte, error) {
	b = append(b, '"')
	b = append(b, quote(string(v))...)
	return append(b, '"'), nil
}

func (v Time) appendSQL(b []byte, quote func(string) string) ([]byte, error) {
	return Text(time.Time(v).Format(TimeFormat)).appendSQL(b, quote)
}

func (v List) appendSQL(b []byte, quote func(string) string) ([]byte, error) {
	// IN () is a syntax error; (NULL) keeps the statement valid and matches nothing.
	if len(v) == 0 {
		return append(b, "(NULL)"...), nil
	}
	b = append(b, '(')
	for i, item := range v {
		if i > 0 {
			b = append(b, ", "...)
		}
		var err error
		if b, err = item.appendSQL(b, quote); err != nil {
			return b, err
		}
	}
	return append(b, ')'), nil
}

// ValueOf converts a Go value into a Value.
//
// Supported inputs are nil, Value, the builtin numeric, bool and string kinds
// (including named types), []byte, time.Time, pointers to any of these,
// driver.Valuer implementations, and slices or arrays of supported values.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case string:
		return Text(x), nil
	case []byte:
		return Text(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(x), nil
	case int8:
		return Int(x), nil
	case int16:
		return Int(x), nil
	case int32:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case uint:
		return Uint(x), nil
	case uint8:
		return Uint(x), nil
	case uint16:
		return Uint(x), nil
	case uint32:
		return Uint(x), nil
	case uint64:
		return Uint(x), nil
	case float32:
		return Float(x), nil
	case float64:
		return Float(x), nil
	case time.Time:
		return Time(x), nil
	case driver.Valuer:
		rv := reflect.ValueOf(x)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return Null{}, nil
		}
		val, err := x.Value()
		if err != nil {
			return nil, fmt.Errorf("escape: %T value: %w", v, err)
		}
		return ValueOf(val)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}, nil
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return Text(rv.Bytes()), nil
		}
		list := make(List, rv.Len())
		for i := range list {
			item, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			list[i] = item
		}
		return list, nil
	case reflect.String:
		return Text(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	}

	return nil, &UnsupportedTypeError{Type: fmt.Sprintf("%T", v)}
}
