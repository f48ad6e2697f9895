package parser

import "fmt"

// Error is a failed top-level parse.
type Error struct {
	// Expected describes what would have matched.
	Expected string
	// Offset is the number of bytes or tokens consumed before the failure,
	// computed as the length of the input minus the length of the input at
	// the point of failure.
	Offset int
}

func (e *Error) Error() string {
	return fmt.Sprintf("offset %d: expected %s", e.Offset, e.Expected)
}

// Run applies p to in and requires it to consume all of in.
func Run[In Input, Out any](p Parser[In, Out], in In) (Out, error) {
	r := FollowedBy(p, End[In]())(in)
	value, rest, ok := r.Unpack()
	if !ok {
		return value, &Error{Expected: r.expected, Offset: in.Len() - rest.Len()}
	}
	return value, nil
}
