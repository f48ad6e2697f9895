// Package parser is a small parser-combinator algebra.
//
// A Parser is a pure function from an input to a Result. Results are either
// a success carrying a value and the unconsumed remainder, or a failure
// carrying a human-readable expectation and the input at the point of
// failure. Grammars are built by composing primitive parsers with the
// combinators in this package and are applied once to a complete input:
//
//	digits := text.Integer
//	list := parser.Between(text.Token("["), parser.SepBy(digits, text.Token(",")), text.Token("]"))
//	r := list(parser.Text("[1, 2, 3]"))
//
// # Input
//
// Parsers are generic in the input representation. The combinators only ask
// an input how much of it is left (see Input); primitives decide how to take
// and drop prefixes. Text covers strings and Tokens covers token sequences.
//
// # Failures
//
// Parse failures are values, not panics. Choice merges the expectations of its
// alternatives ("'[' or '{'"), repetition treats a failure as "no more
// items", and Run turns a failed top-level Result into an *Error carrying the
// byte or token offset of the failure.
//
// Panics are reserved for programming errors in the code that builds or
// inspects a grammar. Invoking a Ref before Set, setting it twice, or setting
// it to nil panics with an error wrapping ErrRefUnset, ErrRefAlreadySet or
// ErrRefNil. Cast panics when given a successful Result.
//
// # Recursion
//
// Self-referential rules are expressed with Ref. Every Parser built from
// Ref.Parser before Set is safe to construct because the lookup is deferred
// until the parser runs. Deeply nested input grows the goroutine stack in
// proportion to its nesting depth.
package parser
