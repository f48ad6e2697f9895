package parser

import (
	"fmt"
	"strings"
)

// Input is anything a Parser can consume. Len reports how much input is left;
// combinators use it to detect exhaustion and forward progress.
type Input interface {
	Len() int
}

// Text is string input.
type Text string

func (t Text) Len() int { return len(t) }

func (t Text) String() string { return string(t) }

// HasPrefix reports whether t begins with prefix.
func (t Text) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(t), prefix)
}

// Drop returns t without its first n bytes.
func (t Text) Drop(n int) Text {
	if n >= len(t) {
		return ""
	}
	return t[n:]
}

// Tokens is a sequence of already-scanned tokens.
type Tokens[T any] []T

func (ts Tokens[T]) Len() int { return len(ts) }

// Head returns the first token, if any.
func (ts Tokens[T]) Head() (T, bool) {
	if len(ts) == 0 {
		var zero T
		return zero, false
	}
	return ts[0], true
}

// Drop returns ts without its first n tokens.
func (ts Tokens[T]) Drop(n int) Tokens[T] {
	if n >= len(ts) {
		return ts[len(ts):]
	}
	return ts[n:]
}

// Satisfy consumes a single token for which pred returns true.
func Satisfy[T any](expected string, pred func(T) bool) Parser[Tokens[T], T] {
	return func(in Tokens[T]) Result[Tokens[T], T] {
		tok, ok := in.Head()
		if !ok || !pred(tok) {
			return Err[Tokens[T], T](expected, in)
		}
		return Ok(tok, in.Drop(1))
	}
}

// Equal consumes a single token equal to want.
func Equal[T comparable](want T) Parser[Tokens[T], T] {
	return Satisfy(fmt.Sprintf("'%v'", want), func(tok T) bool { return tok == want })
}
