package parser

// Parser is a pure function from an input to a Result. Applying the same
// Parser to the same input always yields the same Result.
type Parser[In Input, Out any] func(In) Result[In, Out]

// Parse applies p to in.
func (p Parser[In, Out]) Parse(in In) Result[In, Out] {
	return p(in)
}

// Pure succeeds with value without consuming input.
func Pure[In Input, Out any](value Out) Parser[In, Out] {
	return func(in In) Result[In, Out] {
		return Ok(value, in)
	}
}

// Fail always fails with expected.
func Fail[In Input, Out any](expected string) Parser[In, Out] {
	return func(in In) Result[In, Out] {
		return Err[In, Out](expected, in)
	}
}

// End succeeds only when the input is exhausted.
func End[In Input]() Parser[In, struct{}] {
	return func(in In) Result[In, struct{}] {
		if in.Len() > 0 {
			return Err[In, struct{}]("end of input", in)
		}
		return Ok(struct{}{}, in)
	}
}

// Map transforms the value of p.
func Map[In Input, A, B any](p Parser[In, A], f func(A) B) Parser[In, B] {
	return func(in In) Result[In, B] {
		return MapResult(p(in), f)
	}
}

// Means replaces the value of p with value.
func Means[In Input, A, B any](p Parser[In, A], value B) Parser[In, B] {
	return Map(p, func(A) B { return value })
}

// Bind runs p and then the parser f builds from its value on the remainder.
func Bind[In Input, A, B any](p Parser[In, A], f func(A) Parser[In, B]) Parser[In, B] {
	return func(in In) Result[In, B] {
		return FlatMapResult(p(in), func(a A, rest In) Result[In, B] {
			return f(a)(rest)
		})
	}
}

// Label replaces the expectation of p's failures with expected.
func (p Parser[In, Out]) Label(expected string) Parser[In, Out] {
	return func(in In) Result[In, Out] {
		return p(in).MapExpected(func(string) string { return expected })
	}
}
