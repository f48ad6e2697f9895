package parser

// Pair holds the values of two sequenced parsers.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Seq runs p1 and then p2 on p1's remainder. It never backtracks into p1:
// if p1 fails, p2 is not run, and if p2 fails its failure is returned.
func Seq[In Input, A, B any](p1 Parser[In, A], p2 Parser[In, B]) Parser[In, Pair[A, B]] {
	return func(in In) Result[In, Pair[A, B]] {
		return FlatMapResult(p1(in), func(a A, rest In) Result[In, Pair[A, B]] {
			return MapResult(p2(rest), func(b B) Pair[A, B] {
				return Pair[A, B]{First: a, Second: b}
			})
		})
	}
}

// Or tries p and, if it fails, q on the same input. When both fail, the
// expectations are joined as "<p> or <q>" and the failure input is q's.
func (p Parser[In, Out]) Or(q Parser[In, Out]) Parser[In, Out] {
	return func(in In) Result[In, Out] {
		r1 := p(in)
		if r1.ok {
			return r1
		}
		return q(in).MapExpected(func(e string) string {
			return r1.expected + " or " + e
		})
	}
}

// Choice is the ordered choice of its arguments, folded left with Or.
func Choice[In Input, Out any](first Parser[In, Out], rest ...Parser[In, Out]) Parser[In, Out] {
	p := first
	for _, q := range rest {
		p = p.Or(q)
	}
	return p
}

// Optional succeeds with fallback when p fails, consuming nothing.
func Optional[In Input, Out any](p Parser[In, Out], fallback Out) Parser[In, Out] {
	return p.Or(Pure[In](fallback))
}

// Before runs x then p, keeping p's value.
func Before[In Input, X, T any](x Parser[In, X], p Parser[In, T]) Parser[In, T] {
	return Map(Seq(x, p), func(pr Pair[X, T]) T { return pr.Second })
}

// FollowedBy runs p then y, keeping p's value.
func FollowedBy[In Input, T, Y any](p Parser[In, T], y Parser[In, Y]) Parser[In, T] {
	return Map(Seq(p, y), func(pr Pair[T, Y]) T { return pr.First })
}

// Between runs left, p and right in order, keeping p's value.
func Between[In Input, X, T, Y any](left Parser[In, X], p Parser[In, T], right Parser[In, Y]) Parser[In, T] {
	return FollowedBy(Before(left, p), right)
}
