package escape

// Escaper renders values using a driver specific string escaping primitive.
type Escaper struct {
	quote func(string) string
}

// New creates an Escaper. A nil quote function defaults to Backslash.
func New(quote func(string) string) *Escaper {
	if quote == nil {
		quote = Backslash
	}
	return &Escaper{quote: quote}
}

// Value renders v as a SQL literal
func (e *Escaper) Value(v any) (string, error) {
	val, err := ValueOf(v)
	if err != nil {
		return "", err
	}
	return e.Literal(val)
}

// Literal renders an already converted Value
func (e *Escaper) Literal(v Value) (string, error) {
	b, err := v.appendSQL(make([]byte, 0, 16), e.quote)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Backslash escapes s the way mysql_real_escape_string does, for use inside a
// quoted literal on servers with the default sql_mode.
func Backslash(s string) string {
	buf := make([]byte, 0, len(s)+len(s)/8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\x00':
			buf = append(buf, '\\', '0')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\x1a':
			buf = append(buf, '\\', 'Z')
		case '\'':
			buf = append(buf, '\\', '\'')
		case '"':
			buf = append(buf, '\\', '"')
		case '\\':
			buf = append(buf, '\\', '\\')
		default:
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// DoubleQuotes escapes s for a double-quoted literal on servers running with
// NO_BACKSLASH_ESCAPES, where the only escape is a doubled quote.
func DoubleQuotes(s string) string {
	buf := make([]byte, 0, len(s)+2)
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			buf = append(buf, '"')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}
