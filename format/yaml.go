package format

import (
	"bytes"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/combinator/ebnf"
	"github.com/dhamidi/combinator/json"
)

// YAMLEncoder writes YAML documents. Objects become mappings with their keys
// in document order.
type YAMLEncoder struct {
	w io.Writer
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) EncodeValue(v json.Value) error {
	text, err := e.MarshalValue(v)
	return write(e.w, text, err)
}

func (e *YAMLEncoder) EncodeNode(n *ebnf.Node) error {
	text, err := e.MarshalNode(n)
	return write(e.w, text, err)
}

func (e *YAMLEncoder) MarshalValue(v json.Value) ([]byte, error) {
	return marshalYAML(valueToYAML(v))
}

func (e *YAMLEncoder) MarshalNode(n *ebnf.Node) ([]byte, error) {
	return marshalYAML(nodeToYAML(n))
}

func marshalYAML(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func valueToYAML(v json.Value) *yaml.Node {
	switch v := v.(type) {
	case json.Bool:
		return scalar("!!bool", strconv.FormatBool(bool(v)))
	case json.Number:
		return scalar("!!int", strconv.Itoa(int(v)))
	case json.String:
		return scalar("!!str", string(v))
	case json.Array:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			seq.Content = append(seq.Content, valueToYAML(item))
		}
		return seq
	case json.Object:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, member := range v {
			m.Content = append(m.Content, scalar("!!str", member.Key), valueToYAML(member.Value))
		}
		return m
	default:
		return scalar("!!null", "null")
	}
}

func nodeToYAML(n *ebnf.Node) *yaml.Node {
	span := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	span.Content = []*yaml.Node{
		scalar("!!int", strconv.Itoa(n.Span.Start)),
		scalar("!!int", strconv.Itoa(n.Span.End)),
	}

	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	m.Content = append(m.Content,
		scalar("!!str", "kind"), scalar("!!str", n.Kind),
		scalar("!!str", "span"), span,
	)
	if n.IsTerminal() {
		m.Content = append(m.Content, scalar("!!str", "text"), scalar("!!str", n.Text))
		return m
	}

	children := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, child := range n.Children {
		children.Content = append(children.Content, nodeToYAML(child))
	}
	m.Content = append(m.Content, scalar("!!str", "children"), children)
	return m
}
