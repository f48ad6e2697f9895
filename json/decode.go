package json

import (
	"sync"

	"github.com/dhamidi/combinator/parser"
	"github.com/dhamidi/combinator/text"
)

// Grammar returns a parser for a single value. Leading white space is not
// skipped; trailing white space inside arrays and objects is.
//
// A value starting with '[' or '{' can only be an array or an object, so the
// grammar commits to that alternative and a failure inside a container is
// reported where it happened rather than where the container started.
func Grammar() parser.Parser[parser.Text, Value] {
	value := parser.NewRef[parser.Text, Value]("value")

	null := parser.Means(text.Literal("null"), Value(Null{}))
	yes := parser.Means(text.Literal("true"), Value(Bool(true)))
	no := parser.Means(text.Literal("false"), Value(Bool(false)))
	number := parser.Map(text.Integer, func(n int) Value { return Number(n) })
	str := parser.Map(text.QuotedString, func(s string) Value { return String(s) })

	array := parser.Map(
		parser.Between(text.Token("["), elements(value.Parser(), "]"), text.Token("]")),
		func(items []Value) Value { return Array(items) },
	)

	member := parser.Map(
		parser.Seq(parser.FollowedBy(text.QuotedString, text.Token(":")), value.Parser()),
		func(p parser.Pair[string, Value]) Member { return Member{Key: p.First, Value: p.Second} },
	)
	object := parser.Map(
		parser.Between(text.Token("{"), elements(member, "}"), text.Token("}")),
		func(members []Member) Value { return Object(members) },
	)

	anyValue := parser.Choice(null, yes, no, number, str, array, object)
	value.Set(func(in parser.Text) parser.Result[parser.Text, Value] {
		switch {
		case in.HasPrefix("["):
			return array(in)
		case in.HasPrefix("{"):
			return object(in)
		}
		return anyValue(in)
	})
	return value.Parser()
}

// elements parses the comma separated items of a container closed by
// closing. Unless the container is empty, its first item is required.
func elements[T any](item parser.Parser[parser.Text, T], closing string) parser.Parser[parser.Text, []T] {
	end := text.Token(closing)
	items := parser.SepBy1(item, text.Token(","))
	return func(in parser.Text) parser.Result[parser.Text, []T] {
		if end(in).OK() {
			return parser.Ok(make([]T, 0), in)
		}
		return items(in)
	}
}

var document = sync.OnceValue(func() parser.Parser[parser.Text, Value] {
	return text.Lexeme(Grammar())
})

// Decode parses src, which must hold exactly one value surrounded by optional
// white space.
func Decode(src string) (Value, error) {
	return parser.Run(document(), parser.Text(src))
}
