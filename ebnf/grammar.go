// Package ebnf compiles EBNF grammars, as accepted by golang.org/x/exp/ebnf,
// into combinator parsers producing concrete syntax trees.
//
// Productions whose name does not start with an upper-case letter are
// lexical: they match characters exactly and produce a single terminal node
// holding the matched text. All other productions skip white space (or
// whatever WithSkip installs) before each literal and each reference to a
// lexical production, and produce a node whose children are the nodes of
// their right-hand side:
//
//	Sum    = number { ("+" | "-") number } .
//	number = digit { digit } .
//	digit  = "0" … "9" .
//
// Every production is compiled behind a parser.Ref, so productions may refer
// to each other in any order. Left-recursive grammars are rejected.
package ebnf

import (
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/combinator/parser"
)

var log = commonlog.GetLogger("combinator.ebnf")

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return ParseGrammar(filename, f)
}

// ParseGrammar reads an EBNF grammar. filename is used in error positions.
func ParseGrammar(filename string, r io.Reader) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// Grammar is a compiled grammar.
type Grammar struct {
	start string
	top   parser.Parser[parser.Text, *Node]
}

// Start returns the name of the start production.
func (g *Grammar) Start() string { return g.start }

// Parse parses all of src starting from the start production.
func (g *Grammar) Parse(src string) (*Node, error) {
	node, err := parser.Run(g.top, parser.Text(src))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", g.start, err)
	}
	node.resolve(len(src))
	return node, nil
}
