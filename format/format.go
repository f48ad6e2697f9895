// Package format writes decoded JSON values and EBNF syntax trees in the
// output formats supported by the command line tools.
package format

import (
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/combinator/ebnf"
	"github.com/dhamidi/combinator/json"
)

var ErrUnknownFormat = errors.New("unknown format")

type Encoder interface {
	EncodeValue(v json.Value) error
	EncodeNode(n *ebnf.Node) error
}

// Names lists the formats accepted by NewEncoder.
var Names = []string{"json", "yaml", "tree"}

// NewEncoder returns the encoder for the named format writing to w.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "tree":
		return NewTreeEncoder(w), nil
	}
	return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnknownFormat, name, Names)
}

func write(w io.Writer, text []byte, err error) error {
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
