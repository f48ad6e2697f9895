package ebnf

import (
	"strconv"
	"strings"

	"github.com/dhamidi/combinator/parser"
)

// LiteralKind is the Kind of terminal nodes matched by a literal token or a
// character range inside a non-lexical production.
const LiteralKind = "literal"

// Span is a range of byte offsets in the parsed source.
type Span struct {
	Start int
	End   int
}

// Node represents a node in the concrete syntax tree.
// Terminals (literals and lexical productions) have Text and no Children;
// non-terminals have Children.
type Node struct {
	Kind     string  // Production name or LiteralKind
	Children []*Node // nil for terminals
	Text     string  // Matched source text for terminals
	Span     Span
}

// IsTerminal returns true if this is a leaf node.
func (n *Node) IsTerminal() bool {
	return n.Children == nil
}

// Find returns all descendants of n, including n itself, with the given kind
// in document order.
func (n *Node) Find(kind string) []*Node {
	var found []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Kind == kind {
			found = append(found, n)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(n)
	return found
}

// String returns the tree as an s-expression. Literals are printed quoted,
// lexical productions as (kind "text").
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch {
	case n.Kind == LiteralKind:
		sb.WriteString(strconv.Quote(n.Text))
	case n.IsTerminal():
		sb.WriteString("(" + n.Kind + " " + strconv.Quote(n.Text) + ")")
	default:
		sb.WriteString("(" + n.Kind)
		for _, child := range n.Children {
			sb.WriteByte(' ')
			child.write(sb)
		}
		sb.WriteByte(')')
	}
}

// While parsing, spans hold the length of the input remaining at the start
// and end of a node; resolve turns them into offsets once the length of the
// whole input is known.
func (n *Node) resolve(total int) {
	n.Span = Span{Start: total - n.Span.Start, End: total - n.Span.End}
	for _, child := range n.Children {
		child.resolve(total)
	}
}

func newTerminal(kind, text string, in, rest parser.Text) *Node {
	return &Node{
		Kind: kind,
		Text: text,
		Span: Span{Start: in.Len(), End: rest.Len()},
	}
}

func newNonTerminal(kind string, children []*Node, in, rest parser.Text) *Node {
	return &Node{
		Kind:     kind,
		Children: append(make([]*Node, 0, len(children)), children...),
		Span:     Span{Start: in.Len(), End: rest.Len()},
	}
}
