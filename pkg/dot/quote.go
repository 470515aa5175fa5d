package dot

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var keywords = map[string]bool{
	"node":     true,
	"edge":     true,
	"graph":    true,
	"digraph":  true,
	"subgraph": true,
	"strict":   true,
}

// Quote returns id in a form DOT accepts as an identifier. Plain identifiers
// and numerals are returned unchanged unless they are keywords; anything else
// is double-quoted with quotes, backslashes and newlines escaped.
func Quote(id string) string {
	if isBare(id) {
		return id
	}
	var b strings.Builder
	b.Grow(len(id) + 2)
	b.WriteByte('"')
	for _, r := range id {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// HTML is an HTML-like label body. The writer emits it between angle
// brackets without quoting; text inside it must go through [Escape]. Plain
// string values are always quoted, whatever they look like.
type HTML string

// Escape escapes text for use inside an [HTML] label.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func value(v any) string {
	switch v := v.(type) {
	case HTML:
		return "<" + string(v) + ">"
	case string:
		return Quote(v)
	default:
		return Quote(fmt.Sprint(v))
	}
}

func isBare(id string) bool {
	if id == "" || !utf8.ValidString(id) {
		return false
	}
	if keywords[strings.ToLower(id)] {
		return false
	}
	return isIdent(id) || isNumeral(id)
}

func isIdent(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func isNumeral(s string) bool {
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" || s == "." {
		return false
	}
	dot := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '.':
			if dot {
				return false
			}
			dot = true
		case s[i] < '0' || s[i] > '9':
			return false
		}
	}
	return true
}
