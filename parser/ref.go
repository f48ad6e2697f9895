package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrRefUnset is wrapped by the panic raised when a Ref runs before Set.
	ErrRefUnset = errors.New("parser: reference used before Set")
	// ErrRefAlreadySet is wrapped by the panic raised when Set is called twice.
	ErrRefAlreadySet = errors.New("parser: reference already set")
	// ErrRefNil is wrapped by the panic raised when Set is given a nil parser.
	ErrRefNil = errors.New("parser: nil parser for reference")
)

// Ref is a single-assignment forward reference to a Parser. It lets a rule
// refer to itself, or to a rule defined later, while the grammar is being
// built:
//
//	value := parser.NewRef[parser.Text, Value]("value")
//	array := parser.Between(open, parser.SepBy(value.Parser(), comma), close)
//	value.Set(parser.Choice(number, array))
//
// A Ref must be set exactly once, before any parser using it runs. It is not
// safe to call Set concurrently with parsing.
type Ref[In Input, Out any] struct {
	name string
	p    Parser[In, Out]
}

// NewRef returns an unset reference. name appears in the panics raised for
// misuse.
func NewRef[In Input, Out any](name string) *Ref[In, Out] {
	return &Ref[In, Out]{name: name}
}

func (r *Ref[In, Out]) Name() string { return r.name }

// IsSet reports whether Set has been called.
func (r *Ref[In, Out]) IsSet() bool { return r.p != nil }

// Set installs the parser r delegates to.
func (r *Ref[In, Out]) Set(p Parser[In, Out]) {
	if p == nil {
		panic(fmt.Errorf("%w: %q", ErrRefNil, r.name))
	}
	if r.p != nil {
		panic(fmt.Errorf("%w: %q", ErrRefAlreadySet, r.name))
	}
	r.p = p
}

// Parse runs the installed parser.
func (r *Ref[In, Out]) Parse(in In) Result[In, Out] {
	if r.p == nil {
		panic(fmt.Errorf("%w: %q", ErrRefUnset, r.name))
	}
	return r.p(in)
}

// Parser returns a parser that delegates to r when it runs.
func (r *Ref[In, Out]) Parser() Parser[In, Out] {
	return r.Parse
}
