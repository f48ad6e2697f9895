package parser

import (
	"fmt"
	"strconv"
)

// Result is the outcome of one parse attempt. It is either Ok, holding a
// value and the remaining input, or Err, holding an expectation and the input
// at the point of failure. The zero Result is an Err with an empty
// expectation.
type Result[In Input, Out any] struct {
	ok       bool
	value    Out
	rest     In
	expected string
}

// Ok returns a successful Result.
func Ok[In Input, Out any](value Out, remaining In) Result[In, Out] {
	return Result[In, Out]{ok: true, value: value, rest: remaining}
}

// Err returns a failed Result. actual is the input the failing parser saw.
func Err[In Input, Out any](expected string, actual In) Result[In, Out] {
	return Result[In, Out]{expected: expected, rest: actual}
}

// OK reports whether r is a success.
func (r Result[In, Out]) OK() bool { return r.ok }

// Value returns the parsed value, or the zero value for a failure.
func (r Result[In, Out]) Value() Out { return r.value }

// Remaining returns the unconsumed input after a success, or the input at the
// point of failure.
func (r Result[In, Out]) Remaining() In { return r.rest }

// Expected returns the expectation of a failure, or "" for a success.
func (r Result[In, Out]) Expected() string { return r.expected }

// Unpack returns the value, the remaining input and whether r is a success.
func (r Result[In, Out]) Unpack() (Out, In, bool) {
	return r.value, r.rest, r.ok
}

// MapExpected rewrites the expectation of a failure. Successes pass through.
func (r Result[In, Out]) MapExpected(f func(string) string) Result[In, Out] {
	if r.ok {
		return r
	}
	return Err[In, Out](f(r.expected), r.rest)
}

func (r Result[In, Out]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%v, %s)", r.value, quoteInput(r.rest))
	}
	return fmt.Sprintf("Err(%s, %s)", strconv.Quote(r.expected), quoteInput(r.rest))
}

func quoteInput(in any) string {
	if t, ok := in.(Text); ok {
		return strconv.Quote(string(t))
	}
	return fmt.Sprint(in)
}

// MapResult applies f to the value of a success.
func MapResult[In Input, A, B any](r Result[In, A], f func(A) B) Result[In, B] {
	if !r.ok {
		return Cast[B](r)
	}
	return Ok(f(r.value), r.rest)
}

// FlatMapResult continues a success with f, which may consume further input
// starting at the remainder. Failures short-circuit.
func FlatMapResult[In Input, A, B any](r Result[In, A], f func(A, In) Result[In, B]) Result[In, B] {
	if !r.ok {
		return Cast[B](r)
	}
	return f(r.value, r.rest)
}

// Cast re-types a failed Result. It panics if r is a success, since a value
// cannot be converted between arbitrary types.
func Cast[B any, In Input, A any](r Result[In, A]) Result[In, B] {
	if r.ok {
		panic("parser: Cast of a successful result")
	}
	return Err[In, B](r.expected, r.rest)
}
