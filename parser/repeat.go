package parser

import "fmt"

// Many applies p repeatedly and collects its values in order. It stops at the
// first failure, when the input is exhausted, or when an application succeeds
// without consuming input; the value of such an empty match is not
// collected. Many never fails.
func Many[In Input, Out any](p Parser[In, Out]) Parser[In, []Out] {
	return func(in In) Result[In, []Out] {
		values, rest := collect(p, make([]Out, 0), in)
		return Ok(values, rest)
	}
}

// AtLeastOne is like Many but requires the first application to succeed.
// The value of that required application is always collected, even when it
// consumed nothing; the repetition that follows stops on an empty match.
func AtLeastOne[In Input, Out any](p Parser[In, Out]) Parser[In, []Out] {
	return func(in In) Result[In, []Out] {
		first := p(in)
		if !first.ok {
			return Err[In, []Out]("at least one "+first.expected, first.rest)
		}
		if first.rest.Len() >= in.Len() {
			return Ok([]Out{first.value}, first.rest)
		}
		values, rest := collect(p, []Out{first.value}, first.rest)
		return Ok(values, rest)
	}
}

func collect[In Input, Out any](p Parser[In, Out], values []Out, in In) ([]Out, In) {
	for in.Len() > 0 {
		r := p(in)
		if !r.ok || r.rest.Len() >= in.Len() {
			break
		}
		values = append(values, r.value)
		in = r.rest
	}
	return values, in
}

// Times applies p exactly n times.
func Times[In Input, Out any](p Parser[In, Out], n int) Parser[In, []Out] {
	n = max(n, 0)
	return func(in In) Result[In, []Out] {
		values := make([]Out, 0, n)
		rest := in
		for range n {
			r := p(rest)
			if !r.ok {
				return Err[In, []Out](fmt.Sprintf("%d times %s", n, r.expected), r.rest)
			}
			values = append(values, r.value)
			rest = r.rest
		}
		return Ok(values, rest)
	}
}

// SepBy parses a possibly empty list of items separated by sep.
//
// If the first item fails, or succeeds without consuming input, the result
// is an empty list and no input is consumed. A separator that fails ends the
// list and is not consumed, so a trailing separator is never required. Once
// a separator has matched, an item must follow: if it fails, SepBy fails with
// the item's failure.
func SepBy[In Input, T, S any](item Parser[In, T], sep Parser[In, S]) Parser[In, []T] {
	return func(in In) Result[In, []T] {
		first := item(in)
		if !first.ok || first.rest.Len() >= in.Len() {
			return Ok(make([]T, 0), in)
		}
		return sepTail(item, sep, []T{first.value}, first.rest)
	}
}

// SepBy1 is like SepBy but requires the first item: its failure is the
// failure of SepBy1. As with AtLeastOne, that first value is collected even
// when it consumed nothing.
func SepBy1[In Input, T, S any](item Parser[In, T], sep Parser[In, S]) Parser[In, []T] {
	return func(in In) Result[In, []T] {
		first := item(in)
		if !first.ok {
			return Cast[[]T](first)
		}
		return sepTail(item, sep, []T{first.value}, first.rest)
	}
}

func sepTail[In Input, T, S any](item Parser[In, T], sep Parser[In, S], values []T, rest In) Result[In, []T] {
	for rest.Len() > 0 {
		s := sep(rest)
		if !s.ok {
			break
		}
		r := item(s.rest)
		if !r.ok {
			return Cast[[]T](r)
		}
		if r.rest.Len() >= rest.Len() {
			break
		}
		values = append(values, r.value)
		rest = r.rest
	}
	return Ok(values, rest)
}
