package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/combinator/ebnf"
	"github.com/dhamidi/combinator/json"
)

// TreeEncoder writes one line per value or node, indented by depth.
type TreeEncoder struct {
	w      io.Writer
	indent string
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w, indent: "  "}
}

func (e *TreeEncoder) EncodeValue(v json.Value) error {
	text, err := e.MarshalValue(v)
	return write(e.w, text, err)
}

func (e *TreeEncoder) EncodeNode(n *ebnf.Node) error {
	text, err := e.MarshalNode(n)
	return write(e.w, text, err)
}

func (e *TreeEncoder) MarshalValue(v json.Value) ([]byte, error) {
	var sb strings.Builder
	e.value(&sb, 0, "", v)
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) MarshalNode(n *ebnf.Node) ([]byte, error) {
	var sb strings.Builder
	e.node(&sb, 0, n)
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) value(sb *strings.Builder, depth int, label string, v json.Value) {
	sb.WriteString(strings.Repeat(e.indent, depth))
	sb.WriteString(label)

	switch v := v.(type) {
	case json.Bool:
		fmt.Fprintf(sb, "bool %t\n", bool(v))
	case json.Number:
		fmt.Fprintf(sb, "number %d\n", int(v))
	case json.String:
		fmt.Fprintf(sb, "string %s\n", strconv.Quote(string(v)))
	case json.Array:
		fmt.Fprintf(sb, "array (%d)\n", len(v))
		for _, item := range v {
			e.value(sb, depth+1, "", item)
		}
	case json.Object:
		fmt.Fprintf(sb, "object (%d)\n", len(v))
		for _, m := range v {
			e.value(sb, depth+1, strconv.Quote(m.Key)+": ", m.Value)
		}
	default:
		sb.WriteString("null\n")
	}
}

func (e *TreeEncoder) node(sb *strings.Builder, depth int, n *ebnf.Node) {
	sb.WriteString(strings.Repeat(e.indent, depth))
	if n.IsTerminal() {
		fmt.Fprintf(sb, "%s %s\t%d:%d\n", n.Kind, strconv.Quote(n.Text), n.Span.Start, n.Span.End)
		return
	}
	fmt.Fprintf(sb, "%s\t%d:%d\n", n.Kind, n.Span.Start, n.Span.End)
	for _, child := range n.Children {
		e.node(sb, depth+1, child)
	}
}
