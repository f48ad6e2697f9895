package text

import (
	"testing"

	"github.com/dhamidi/combinator/parser"
)

type outcome struct {
	ok       bool
	value    any
	rest     string
	expected string
}

func run[Out any](p parser.Parser[parser.Text, Out], input string) outcome {
	r := p(parser.Text(input))
	return outcome{ok: r.OK(), value: r.Value(), rest: string(r.Remaining()), expected: r.Expected()}
}

func TestPrimitives(t *testing.T) {
	tests := []struct {
		name string
		got  outcome
		want outcome
	}{
		{"dot", run(Dot, ".foo"), outcome{ok: true, value: struct{}{}, rest: "foo"}},
		{"dot fails", run(Dot, "foo"), outcome{value: struct{}{}, rest: "foo", expected: "a dot"}},
		{"integer", run(Integer, "123foo"), outcome{ok: true, value: 123, rest: "foo"}},
		{"integer to end", run(Integer, "007"), outcome{ok: true, value: 7, rest: ""}},
		{"integer fails", run(Integer, "foo"), outcome{value: 0, rest: "foo", expected: "an integer"}},
		{"integer empty", run(Integer, ""), outcome{value: 0, rest: "", expected: "an integer"}},
		{"integer sign", run(Integer, "-1"), outcome{value: 0, rest: "-1", expected: "an integer"}},
		{"literal", run(Literal("foo"), "foobar"), outcome{ok: true, value: "foo", rest: "bar"}},
		{"literal fails", run(Literal("foo"), "boofar"), outcome{value: "", rest: "boofar", expected: "'foo'"}},
		{"whitespace", run(Whitespace, " \t\n x "), outcome{ok: true, value: struct{}{}, rest: "x "}},
		{"whitespace none", run(Whitespace, "x"), outcome{ok: true, value: struct{}{}, rest: "x"}},
		{"token", run(Token(","), "  , 2"), outcome{ok: true, value: ",", rest: "2"}},
		{"range", run(Range('a', 'z'), "qx"), outcome{ok: true, value: 'q', rest: "x"}},
		{"range fails", run(Range('a', 'z'), "Q"), outcome{value: rune(0), rest: "Q", expected: "'a'…'z'"}},
		{"rune utf8", run(Range('α', 'ω'), "λx"), outcome{ok: true, value: 'λ', rest: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}

func TestQuotedString(t *testing.T) {
	tests := []struct {
		input    string
		ok       bool
		value    string
		rest     string
		expected string
	}{
		{`"foo" bar`, true, "foo", " bar", ""},
		{`""`, true, "", "", ""},
		{`"a\"b"`, true, `a"b`, "", ""},
		{`"a\\"b`, true, `a\`, "b", ""},
		{`"tab\tx"`, true, "tabtx", "", ""},
		{`"open`, false, "", `"open`, "a terminated quoted string"},
		{`"ends in escape\"`, false, "", `"ends in escape\"`, "a terminated quoted string"},
		{`foo`, false, "", "foo", "a quoted string"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := QuotedString(parser.Text(tt.input))
			value, rest, ok := r.Unpack()
			if ok != tt.ok || value != tt.value || string(rest) != tt.rest || r.Expected() != tt.expected {
				t.Errorf("QuotedString(%q) = %s", tt.input, r)
			}
		})
	}
}

func TestLocate(t *testing.T) {
	src := "{\n  \"a\": 1,\n  \"b\": x\n}"
	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 2, 1},
		{19, 3, 8},
		{-5, 1, 1},
		{1000, 4, 2},
	}
	for _, tt := range tests {
		pos := Locate(src, tt.offset)
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("Locate(%d) = %s, want %d:%d", tt.offset, pos, tt.line, tt.column)
		}
	}

	if got := LineAt(src, 19); got != `  "b": x` {
		t.Errorf("LineAt(19) = %q", got)
	}
}

func TestPositionString(t *testing.T) {
	pos := Position{Filename: "a.json", Line: 3, Column: 8}
	if got := pos.String(); got != "a.json:3:8" {
		t.Errorf("String() = %q", got)
	}
	pos.Filename = ""
	if got := pos.String(); got != "3:8" {
		t.Errorf("String() = %q", got)
	}
}
