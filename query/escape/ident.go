package escape

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yabx-net/mysql/query/ordered"
)

// Field is a column reference with an optional alias
type Field struct {
	Name  string
	Alias string
}

// As returns a Field that renders as `name` AS `alias`
func As(name, alias string) Field {
	return Field{Name: name, Alias: alias}
}

// Fields converts plain column names into Fields
func Fields(names ...string) []Field {
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{Name: name}
	}
	return fields
}

// Identifier quotes a table, column or alias reference.
//
// Accepted shapes are string, Field, []Field, []string, *ordered.Map and
// map[string]string. In the two mappings each key is a column and its value
// the alias, except that an integer key ("0", "1", ...) marks a positional
// entry whose value is the column itself:
//
//	ordered.New().Set("0", "id").Set("u.name", "name")  // `id`, `u`.`name` AS `name`
//
// An *ordered.Map renders in insertion order. A map[string]string renders
// its positional entries first, by index, then the aliased ones by key.
// Dotted names are quoted per segment and a * segment stays bare, so "t.*"
// becomes `t`.*.
func Identifier(id any) (string, error) {
	switch x := id.(type) {
	case string:
		return quoteName(x)
	case Field:
		return quoteField(x)
	case []Field:
		return joinFields(x)
	case []string:
		return joinFields(Fields(x...))
	case *ordered.Map:
		fields := make([]Field, 0, x.Len())
		err := x.Each(func(key string, value any) error {
			alias, ok := value.(string)
			if !ok {
				return &InvalidIdentifierError{Identifier: key, Reason: fmt.Sprintf("alias of type %T", value)}
			}
			fields = append(fields, mappedField(key, alias))
			return nil
		})
		if err != nil {
			return "", err
		}
		return joinFields(fields)
	case map[string]string:
		keys := make([]string, 0, len(x))
		for key := range x {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			ni, iPos := position(keys[i])
			nj, jPos := position(keys[j])
			switch {
			case iPos && jPos:
				return ni < nj
			case iPos != jPos:
				return iPos
			}
			return keys[i] < keys[j]
		})
		fields := make([]Field, len(keys))
		for i, key := range keys {
			fields[i] = mappedField(key, x[key])
		}
		return joinFields(fields)
	}
	return "", &InvalidIdentifierError{Identifier: fmt.Sprintf("%v", id), Reason: fmt.Sprintf("unsupported type %T", id)}
}

// position reports whether key is a canonical integer index
func position(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || strconv.Itoa(n) != key {
		return 0, false
	}
	return n, true
}

func mappedField(key, value string) Field {
	if _, ok := position(key); ok {
		return Field{Name: value}
	}
	return As(key, value)
}

func joinFields(fields []Field) (string, error) {
	if len(fields) == 0 {
		return "", &InvalidIdentifierError{Identifier: "[]", Reason: "empty field list"}
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		s, err := quoteField(f)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

func quoteField(f Field) (string, error) {
	name, err := quoteName(f.Name)
	if err != nil {
		return "", err
	}
	if f.Alias == "" {
		return name, nil
	}
	alias, err := quoteName(f.Alias)
	if err != nil {
		return "", err
	}
	return name + " AS " + alias, nil
}

func quoteName(name string) (string, error) {
	if name == "*" {
		return name, nil
	}
	segments := strings.Split(name, ".")
	for i, seg := range segments {
		switch {
		case seg == "*":
		case seg == "":
			return "", &InvalidIdentifierError{Identifier: name, Reason: "empty segment"}
		case strings.IndexByte(seg, 0) >= 0:
			return "", &InvalidIdentifierError{Identifier: name, Reason: "contains NUL byte"}
		default:
			segments[i] = "`" + strings.ReplaceAll(seg, "`", "``") + "`"
		}
	}
	return strings.Join(segments, "."), nil
}
