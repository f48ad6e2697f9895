// Package text provides primitive parsers over parser.Text.
package text

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/combinator/parser"
)

// Literal matches s exactly and returns it.
func Literal(s string) parser.Parser[parser.Text, string] {
	expected := "'" + s + "'"
	return func(in parser.Text) parser.Result[parser.Text, string] {
		if !in.HasPrefix(s) {
			return parser.Err[parser.Text, string](expected, in)
		}
		return parser.Ok(s, in.Drop(len(s)))
	}
}

// Dot matches a single '.'.
var Dot parser.Parser[parser.Text, struct{}] = func(in parser.Text) parser.Result[parser.Text, struct{}] {
	if !in.HasPrefix(".") {
		return parser.Err[parser.Text, struct{}]("a dot", in)
	}
	return parser.Ok(struct{}{}, in.Drop(1))
}

// Integer matches a maximal run of ASCII digits and returns its decimal
// value. There is no sign and no overflow check.
var Integer parser.Parser[parser.Text, int] = func(in parser.Text) parser.Result[parser.Text, int] {
	s := string(in)
	if s == "" || !isDigit(s[0]) {
		return parser.Err[parser.Text, int]("an integer", in)
	}
	value := 0
	i := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		value = value*10 + int(s[i]-'0')
	}
	return parser.Ok(value, in.Drop(i))
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// QuotedString matches a double-quoted string and returns its content. A
// backslash escapes the character that follows it, which is kept literally:
// \" yields " and \\ yields \.
var QuotedString parser.Parser[parser.Text, string] = func(in parser.Text) parser.Result[parser.Text, string] {
	s := string(in)
	if !strings.HasPrefix(s, `"`) {
		return parser.Err[parser.Text, string]("a quoted string", in)
	}
	var b strings.Builder
	escaped := false
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			b.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			return parser.Ok(b.String(), in.Drop(i+1))
		default:
			b.WriteByte(c)
		}
	}
	return parser.Err[parser.Text, string]("a terminated quoted string", in)
}

// Whitespace consumes a possibly empty run of Unicode white space. It never
// fails.
var Whitespace parser.Parser[parser.Text, struct{}] = func(in parser.Text) parser.Result[parser.Text, struct{}] {
	return parser.Ok(struct{}{}, parser.Text(strings.TrimLeftFunc(string(in), unicode.IsSpace)))
}

// Rune matches a single rune for which pred returns true.
func Rune(expected string, pred func(rune) bool) parser.Parser[parser.Text, rune] {
	return func(in parser.Text) parser.Result[parser.Text, rune] {
		r, size := utf8.DecodeRuneInString(string(in))
		if size == 0 || (r == utf8.RuneError && size == 1) || !pred(r) {
			return parser.Err[parser.Text, rune](expected, in)
		}
		return parser.Ok(r, in.Drop(size))
	}
}

// Range matches a single rune between lo and hi inclusive.
func Range(lo, hi rune) parser.Parser[parser.Text, rune] {
	return Rune(fmt.Sprintf("'%c'…'%c'", lo, hi), func(r rune) bool {
		return lo <= r && r <= hi
	})
}

// Lexeme surrounds p with optional white space.
func Lexeme[Out any](p parser.Parser[parser.Text, Out]) parser.Parser[parser.Text, Out] {
	return parser.Between(Whitespace, p, Whitespace)
}

// Token matches s surrounded by optional white space.
func Token(s string) parser.Parser[parser.Text, string] {
	return Lexeme(Literal(s))
}
