// Package template substitutes named placeholders into query templates.
//
// Three placeholder forms are recognised:
//
//	{$name}  the parameter escaped as a value
//	{&name}  the parameter escaped as an identifier
//	{#name}  the parameter's raw string form, unescaped
//
// The raw form is for trusted fragments only. Templates are tokenized in a
// single pass and substituted text is never rescanned.
package template

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/spf13/cast"

	"github.com/yabx-net/mysql/query/escape"
)

// Lexer splits a template into text and placeholder tokens
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Value", Pattern: `\{\$[\w.-]+\}`},
	{Name: "Ident", Pattern: `\{&[\w.-]+\}`},
	{Name: "Raw", Pattern: `\{#[\w.-]+\}`},
	{Name: "Text", Pattern: `[^{]+`},
	{Name: "Brace", Pattern: `\{`},
})

var (
	valueToken = Lexer.Symbols()["Value"]
	identToken = Lexer.Symbols()["Ident"]
	rawToken   = Lexer.Symbols()["Raw"]
)

// Renderer renders templates with a given Escaper
type Renderer struct {
	esc *escape.Escaper
}

// New creates a Renderer
func New(esc *escape.Escaper) *Renderer {
	return &Renderer{esc: esc}
}

// Render substitutes params into tmpl. Placeholders without a matching
// parameter are left untouched; parameters absent from the template are ignored.
func (r *Renderer) Render(tmpl string, params map[string]any) (string, error) {
	if len(params) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl, nil
	}

	lex, err := Lexer.LexString("", tmpl)
	if err != nil {
		return "", fmt.Errorf("template: %w", err)
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return "", fmt.Errorf("template: %w", err)
	}

	var sb strings.Builder
	sb.Grow(len(tmpl))
	for _, tok := range tokens {
		if tok.EOF() {
			break
		}
		switch tok.Type {
		case valueToken, identToken, rawToken:
			name := tok.Value[2 : len(tok.Value)-1]
			value, ok := params[name]
			if !ok {
				sb.WriteString(tok.Value)
				continue
			}
			out, err := r.substitute(tok.Type, value)
			if err != nil {
				return "", fmt.Errorf("template: placeholder %s: %w", tok.Value, err)
			}
			sb.WriteString(out)
		default:
			sb.WriteString(tok.Value)
		}
	}
	return sb.String(), nil
}

func (r *Renderer) substitute(kind lexer.TokenType, value any) (string, error) {
	switch kind {
	case valueToken:
		return r.esc.Value(value)
	case identToken:
		return escape.Identifier(value)
	default:
		s, err := cast.ToStringE(value)
		if err != nil {
			return "", &escape.UnsupportedTypeError{Type: fmt.Sprintf("%T", value)}
		}
		return s, nil
	}
}
