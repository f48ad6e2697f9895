package format

import (
	stdjson "encoding/json"
	"io"

	"github.com/dhamidi/combinator/ebnf"
	"github.com/dhamidi/combinator/json"
)

type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) EncodeValue(v json.Value) error {
	text, err := e.MarshalValue(v)
	return write(e.w, text, err)
}

func (e *JSONEncoder) EncodeNode(n *ebnf.Node) error {
	text, err := e.MarshalNode(n)
	return write(e.w, text, err)
}

// MarshalValue encodes v as indented JSON, keeping object keys in document
// order.
func (e *JSONEncoder) MarshalValue(v json.Value) ([]byte, error) {
	text, err := stdjson.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

func (e *JSONEncoder) MarshalNode(n *ebnf.Node) ([]byte, error) {
	text, err := stdjson.MarshalIndent(nodeToJSON(n), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     jsonSpan    `json:"span"`
	Text     string      `json:"text,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func nodeToJSON(n *ebnf.Node) *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind,
		Span: jsonSpan{Start: n.Span.Start, End: n.Span.End},
		Text: n.Text,
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child)
		}
	}

	return jn
}
