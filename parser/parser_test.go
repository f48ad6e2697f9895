package parser_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/combinator/parser"
	"github.com/dhamidi/combinator/text"
)

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

func checkResult[Out any](t *testing.T, got, want parser.Result[parser.Text, Out]) {
	t.Helper()
	if diff := cmp.Diff(want, got, exportAll); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s\ngot: %s", diff, got)
	}
}

func ok[Out any](value Out, rest string) parser.Result[parser.Text, Out] {
	return parser.Ok(value, parser.Text(rest))
}

func fail[Out any](expected, actual string) parser.Result[parser.Text, Out] {
	return parser.Err[parser.Text, Out](expected, parser.Text(actual))
}

func TestSeq(t *testing.T) {
	p := parser.Seq(text.Integer, text.Literal("foo"))

	checkResult(t, p("123foo"), ok(parser.Pair[int, string]{First: 123, Second: "foo"}, ""))
	checkResult(t, p("foo"), fail[parser.Pair[int, string]]("an integer", "foo"))
	checkResult(t, p("123bar"), fail[parser.Pair[int, string]]("'foo'", "bar"))
}

func TestOr(t *testing.T) {
	p := parser.Means(text.Literal("foo"), 1).Or(parser.Means(text.Literal("bar"), 2))

	checkResult(t, p("foobar"), ok(1, "bar"))
	checkResult(t, p("barfoo"), ok(2, "foo"))
	checkResult(t, p("xyz"), fail[int]("'foo' or 'bar'", "xyz"))
}

func TestOrBacktracksToChoicePoint(t *testing.T) {
	// The first alternative consumes "12" before failing; the second must
	// still see the original input.
	first := parser.Means(parser.Seq(text.Integer, text.Literal("px")), "px")
	second := parser.Means(parser.Seq(text.Integer, text.Literal("em")), "em")

	checkResult(t, first.Or(second)("12em"), ok("em", ""))
	checkResult(t, first.Or(second)("12pt"), fail[string]("'px' or 'em'", "pt"))
}

func TestOrKeepsFirstSuccess(t *testing.T) {
	never := parser.Fail[parser.Text, int]("never")
	checkResult(t, text.Integer.Or(never)("7"), ok(7, ""))
}

func TestChoice(t *testing.T) {
	p := parser.Choice(
		parser.Means(text.Literal("a"), 'a'),
		parser.Means(text.Literal("b"), 'b'),
		parser.Means(text.Literal("c"), 'c'),
	)

	checkResult(t, p("cab"), ok('c', "ab"))
	checkResult(t, p("xyz"), fail[rune]("'a' or 'b' or 'c'", "xyz"))
}

func TestBracketing(t *testing.T) {
	tests := []struct {
		name  string
		p     parser.Parser[parser.Text, int]
		input string
	}{
		{"before", parser.Before(text.Literal("*"), text.Integer), "*123"},
		{"followedBy", parser.FollowedBy(text.Integer, text.Literal("%")), "123%"},
		{"between", parser.Between(text.Literal("<"), text.Integer, text.Literal(">")), "<123>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkResult(t, tt.p(parser.Text(tt.input)), ok(123, ""))
		})
	}
}

func TestBetweenPropagatesClosingFailure(t *testing.T) {
	p := parser.Between(text.Literal("<"), text.Integer, text.Literal(">"))
	checkResult(t, p("<123]"), fail[int]("'>'", "]"))
}

func TestMany(t *testing.T) {
	p := parser.Map(parser.Many(parser.Means(text.Dot, 1)), sum)

	checkResult(t, p("...foo"), ok(3, "foo"))
	checkResult(t, p("foo"), ok(0, "foo"))
	checkResult(t, p(""), ok(0, ""))
}

func TestManyNeverFails(t *testing.T) {
	ps := []parser.Parser[parser.Text, []int]{
		parser.Many(text.Integer),
		parser.Many(parser.FollowedBy(text.Integer, text.Literal(","))),
		parser.Many(parser.Fail[parser.Text, int]("nothing")),
	}
	inputs := []string{"", "x", "1,2,", "1,2,3", ",,,", "12x"}

	for _, p := range ps {
		for _, in := range inputs {
			if r := p(parser.Text(in)); !r.OK() {
				t.Errorf("Many failed on %q: %s", in, r)
			}
		}
	}
}

func TestManyStopsOnEmptyMatch(t *testing.T) {
	// Whitespace succeeds without consuming anything on "abc".
	p := parser.Many(text.Whitespace)
	checkResult(t, p("abc"), ok([]struct{}{}, "abc"))
	checkResult(t, p("  abc"), ok([]struct{}{{}}, "abc"))
}

func TestSepByStopsOnEmptyFirstItem(t *testing.T) {
	p := parser.SepBy(text.Whitespace, text.Whitespace)
	checkResult(t, p("abc"), ok([]struct{}{}, "abc"))
	checkResult(t, p(" abc"), ok([]struct{}{{}}, "abc"))
}

func TestAtLeastOneKeepsEmptyFirstMatch(t *testing.T) {
	p := parser.AtLeastOne(parser.Pure[parser.Text](1))
	checkResult(t, p("abc"), ok([]int{1}, "abc"))
	checkResult(t, parser.AtLeastOne(text.Whitespace)("abc"), ok([]struct{}{{}}, "abc"))
}

func TestAtLeastOne(t *testing.T) {
	p := parser.AtLeastOne(parser.FollowedBy(text.Integer, text.Whitespace))

	checkResult(t, p("1 2 3x"), ok([]int{1, 2, 3}, "x"))
	checkResult(t, p("x"), fail[[]int]("at least one an integer", "x"))
}

func TestTimes(t *testing.T) {
	count := parser.FollowedBy(text.Integer, text.Literal(":"))
	p := parser.Bind(count, func(n int) parser.Parser[parser.Text, []int] {
		return parser.Times(parser.FollowedBy(text.Integer, text.Whitespace), n)
	})

	checkResult(t, p("3:4 5 6"), ok([]int{4, 5, 6}, ""))
	checkResult(t, p("3:4 5 foo"), fail[[]int]("3 times an integer", "foo"))
	checkResult(t, p("0:4"), ok([]int{}, "4"))
}

func TestSepBy(t *testing.T) {
	p := parser.SepBy(text.Integer, text.Literal(","))

	checkResult(t, p("1,2,3"), ok([]int{1, 2, 3}, ""))
	checkResult(t, p("1,2,foo"), fail[[]int]("an integer", "foo"))
	checkResult(t, p("foo"), ok([]int{}, "foo"))
	checkResult(t, p("1;2"), ok([]int{1}, ";2"))
}

func TestSepByRejectsTrailingSeparator(t *testing.T) {
	p := parser.SepBy(text.Integer, text.Literal(","))
	checkResult(t, p("1,2,"), fail[[]int]("an integer", ""))
}

func TestListOfInts(t *testing.T) {
	p := parser.Between(text.Literal("["), parser.SepBy(text.Integer, text.Literal(",")), text.Literal("]"))
	checkResult(t, p("[1,2,3,4]"), ok([]int{1, 2, 3, 4}, ""))
}

func TestOptional(t *testing.T) {
	p := parser.Optional(text.Integer, -1)

	checkResult(t, p("5x"), ok(5, "x"))
	checkResult(t, p("x"), ok(-1, "x"))
}

func TestLabel(t *testing.T) {
	p := parser.SepBy(text.Integer, text.Literal(",")).Label("a list")
	checkResult(t, p("1,x"), fail[[]int]("a list", "x"))
}

func TestEnd(t *testing.T) {
	end := parser.End[parser.Text]()
	checkResult(t, end(""), ok(struct{}{}, ""))
	checkResult(t, end("x"), fail[struct{}]("end of input", "x"))
}

func TestSepBy1(t *testing.T) {
	p := parser.SepBy1(text.Integer, text.Literal(","))

	checkResult(t, p("1,2x"), ok([]int{1, 2}, "x"))
	checkResult(t, p("x"), fail[[]int]("an integer", "x"))
	checkResult(t, p("1,x"), fail[[]int]("an integer", "x"))
}

func TestRemainderNeverGrows(t *testing.T) {
	ps := map[string]func(parser.Text) parser.Text{
		"integer":    func(in parser.Text) parser.Text { return text.Integer(in).Remaining() },
		"quoted":     func(in parser.Text) parser.Text { return text.QuotedString(in).Remaining() },
		"whitespace": func(in parser.Text) parser.Text { return text.Whitespace(in).Remaining() },
		"sepBy": func(in parser.Text) parser.Text {
			return parser.SepBy(text.Integer, text.Token(","))(in).Remaining()
		},
		"many": func(in parser.Text) parser.Text { return parser.Many(text.Token("a"))(in).Remaining() },
	}
	inputs := []string{"", "1", "  a a", `"x\"y"`, "1 , 2,", "abc"}

	for name, p := range ps {
		for _, in := range inputs {
			if rest := p(parser.Text(in)); rest.Len() > len(in) {
				t.Errorf("%s: remainder %q longer than input %q", name, rest, in)
			}
		}
	}
}

func TestRun(t *testing.T) {
	list := parser.SepBy(text.Integer, text.Literal(","))

	got, err := parser.Run(list, parser.Text("1,2,3"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		input    string
		expected string
		offset   int
	}{
		{"1,2x", "end of input", 3},
		{"1,2,", "an integer", 4},
	}
	for _, tt := range tests {
		_, err := parser.Run(list, parser.Text(tt.input))
		var perr *parser.Error
		if !errors.As(err, &perr) {
			t.Fatalf("Run(%q): got %v, want *parser.Error", tt.input, err)
		}
		if perr.Expected != tt.expected || perr.Offset != tt.offset {
			t.Errorf("Run(%q) = %+v, want expected %q at %d", tt.input, perr, tt.expected, tt.offset)
		}
	}
}

func TestTokens(t *testing.T) {
	words := parser.Tokens[string]{"the", "big", "big", "dog"}
	phrase := parser.Seq(
		parser.Before(parser.Equal("the"), parser.Many(parser.Equal("big"))),
		parser.Equal("dog"),
	)

	r := phrase(words)
	value, rest, ok := r.Unpack()
	if !ok {
		t.Fatalf("phrase failed: %s", r)
	}
	if len(value.First) != 2 || value.Second != "dog" || rest.Len() != 0 {
		t.Errorf("got %s", r)
	}

	r = phrase(parser.Tokens[string]{"the", "cat"})
	if r.OK() || r.Expected() != "'dog'" {
		t.Errorf("got %s, want failure expecting 'dog'", r)
	}
	if head, _ := r.Remaining().Head(); head != "cat" {
		t.Errorf("failure at %q, want %q", head, "cat")
	}
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
