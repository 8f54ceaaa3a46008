package commands

import (
	"fmt"
	"strings"

	"github.com/yabx-net/mysql/query/ordered"
	"github.com/yabx-net/mysql/query/sqlgen"
)

// nullValue is the flag value that stands for SQL NULL
const nullValue = "NULL"

// parsePairs turns key=value flag values into an ordered map. Repeating a
// key collects its values into a list, which renders as IN (...).
func parsePairs(pairs []string) (*ordered.Map, error) {
	m := ordered.New()
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid pair %q, want key=value", pair)
		}

		var value any = raw
		if raw == nullValue {
			value = nil
		}

		prev, exists := m.Get(key)
		switch {
		case !exists:
			m.Set(key, value)
		case isList(prev):
			m.Set(key, append(prev.([]any), value))
		default:
			m.Set(key, []any{prev, value})
		}
	}
	return m, nil
}

func isList(v any) bool {
	_, ok := v.([]any)
	return ok
}

// parseParams is parsePairs for template parameters
func parseParams(pairs []string) (map[string]any, error) {
	m, err := parsePairs(pairs)
	if err != nil {
		return nil, err
	}
	params := make(map[string]any, m.Len())
	err = m.Each(func(key string, value any) error {
		params[key] = value
		return nil
	})
	return params, err
}

// parseOrder parses "column" or "column:asc|desc"
func parseOrder(specs []string) []sqlgen.OrderBy {
	order := make([]sqlgen.OrderBy, 0, len(specs))
	for _, s := range specs {
		field, dir, _ := strings.Cut(s, ":")
		order = append(order, sqlgen.OrderBy{Field: field, Direction: dir})
	}
	return order
}
