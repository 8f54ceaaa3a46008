package escape

import "strings"

// Charsets whose multibyte sequences never contain 0x5c or 0x22 as a trail
// byte, so byte-wise escaping cannot be split by the server's decoder.
// gbk, big5, sjis, cp932 and gb18030 are not among them.
var safeCharsets = map[string]bool{
	"utf8mb4": true,
	"utf8mb3": true,
	"utf8":    true,
	"latin1":  true,
	"ascii":   true,
	"binary":  true,
}

// SafeCharset reports whether Backslash and DoubleQuotes produce correctly
// terminated literals on a connection using the named character set.
func SafeCharset(name string) bool {
	return safeCharsets[strings.ToLower(name)]
}
