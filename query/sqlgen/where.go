package sqlgen

import (
	"fmt"
	"strings"

	"github.com/yabx-net/mysql/query/escape"
	"github.com/yabx-net/mysql/query/ordered"
)

// Where builds a WHERE clause from column conditions joined with AND.
//
// A nil value (or nil pointer) becomes IS NULL, a slice or array becomes an
// IN list and anything else an equality test. An empty map yields "".
func (g *Generator) Where(conditions *ordered.Map) (string, error) {
	if conditions.Len() == 0 {
		return "", nil
	}

	parts := make([]string, 0, conditions.Len())
	err := conditions.Each(func(key string, value any) error {
		col, err := escape.Identifier(key)
		if err != nil {
			return err
		}
		val, err := escape.ValueOf(value)
		if err != nil {
			return err
		}

		var cond string
		switch val.(type) {
		case escape.Null:
			cond = col + " IS NULL"
		case escape.List:
			list, err := g.esc.Literal(val)
			if err != nil {
				return err
			}
			cond = col + " IN " + list
		default:
			lit, err := g.esc.Literal(val)
			if err != nil {
				return err
			}
			cond = col + " = " + lit
		}
		parts = append(parts, cond)
		return nil
	})
	if err != nil {
		return "", err
	}

	return "WHERE " + strings.Join(parts, " AND "), nil
}

func orderClause(orderBy []OrderBy) (string, error) {
	terms := make([]string, len(orderBy))
	for i, ob := range orderBy {
		col, err := escape.Identifier(ob.Field)
		if err != nil {
			return "", err
		}
		switch dir := strings.ToUpper(strings.TrimSpace(ob.Direction)); dir {
		case "":
			terms[i] = col
		case "ASC", "DESC":
			terms[i] = col + " " + dir
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidDirection, ob.Direction)
		}
	}
	return "ORDER BY " + strings.Join(terms, ", "), nil
}
