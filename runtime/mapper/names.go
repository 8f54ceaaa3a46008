package mapper

import (
	"strings"
	"unicode"
)

// SnakeToCamel converts snake_case to lowerCamelCase ("created_at" -> "createdAt")
func SnakeToCamel(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	upper := false
	for i, r := range s {
		switch {
		case r == '_':
			upper = sb.Len() > 0
		case upper:
			sb.WriteRune(unicode.ToUpper(r))
			upper = false
		case i == 0 || sb.Len() == 0:
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// CamelToSnake converts camelCase to snake_case ("createdAt" -> "created_at")
func CamelToSnake(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
