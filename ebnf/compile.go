package ebnf

import (
	"fmt"
	"maps"
	"slices"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/combinator/parser"
	"github.com/dhamidi/combinator/text"
)

// rule is the compiled form of an expression: the nodes it contributes to
// the enclosing production.
type rule = parser.Parser[parser.Text, []*Node]

type compiler struct {
	grammar ebnf.Grammar
	refs    map[string]*parser.Ref[parser.Text, *Node]
	skip    parser.Parser[parser.Text, struct{}]
}

// Option configures Compile.
type Option func(*compiler)

// WithSkip sets the parser run before every literal and lexical production
// referenced from a non-lexical production. The default is text.Whitespace.
func WithSkip(skip parser.Parser[parser.Text, struct{}]) Option {
	return func(c *compiler) {
		c.skip = skip
	}
}

// Compile verifies g and compiles it into a parser for the start production.
func Compile(g ebnf.Grammar, start string, opts ...Option) (*Grammar, error) {
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	if err := checkLeftRecursion(g); err != nil {
		return nil, err
	}

	c := &compiler{
		grammar: g,
		refs:    make(map[string]*parser.Ref[parser.Text, *Node], len(g)),
		skip:    text.Whitespace,
	}
	for _, opt := range opts {
		opt(c)
	}

	names := slices.Sorted(maps.Keys(g))
	for _, name := range names {
		c.refs[name] = parser.NewRef[parser.Text, *Node](name)
	}
	for _, name := range names {
		c.refs[name].Set(c.production(g[name]))
		log.Debugf("compiled production %s (lexical: %t)", name, isLexical(name))
	}

	top := c.refs[start].Parser()
	if !isLexical(start) {
		top = parser.FollowedBy(top, c.skip)
	}
	return &Grammar{start: start, top: top}, nil
}

// isLexical reports whether name denotes a lexical production.
func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

func (c *compiler) production(prod *ebnf.Production) parser.Parser[parser.Text, *Node] {
	name := prod.Name.String
	lexical := isLexical(name)
	body := c.expr(prod.Expr, lexical)

	if lexical {
		p := func(in parser.Text) parser.Result[parser.Text, *Node] {
			return parser.FlatMapResult(body(in), func(_ []*Node, rest parser.Text) parser.Result[parser.Text, *Node] {
				matched := string(in[:in.Len()-rest.Len()])
				return parser.Ok(newTerminal(name, matched, in, rest), rest)
			})
		}
		return parser.Parser[parser.Text, *Node](p).Label(name)
	}

	return func(in parser.Text) parser.Result[parser.Text, *Node] {
		return parser.FlatMapResult(body(in), func(children []*Node, rest parser.Text) parser.Result[parser.Text, *Node] {
			node := newNonTerminal(name, children, in, rest)
			if len(children) > 0 {
				// Leading skipped text belongs to no node.
				node.Span = Span{Start: children[0].Span.Start, End: children[len(children)-1].Span.End}
			}
			return parser.Ok(node, rest)
		})
	}
}

func (c *compiler) expr(x ebnf.Expression, lexical bool) rule {
	switch x := x.(type) {
	case nil:
		return parser.Pure[parser.Text, []*Node](nil)

	case ebnf.Alternative:
		alts := make([]rule, len(x))
		for i, alt := range x {
			alts[i] = c.expr(alt, lexical)
		}
		return parser.Choice(alts[0], alts[1:]...)

	case ebnf.Sequence:
		seq := c.expr(x[0], lexical)
		for _, next := range x[1:] {
			seq = parser.Map(parser.Seq(seq, c.expr(next, lexical)), func(p parser.Pair[[]*Node, []*Node]) []*Node {
				return slices.Concat(p.First, p.Second)
			})
		}
		return seq

	case *ebnf.Group:
		return c.expr(x.Body, lexical)

	case *ebnf.Option:
		return parser.Optional(c.expr(x.Body, lexical), []*Node(nil))

	case *ebnf.Repetition:
		return parser.Map(parser.Many(c.expr(x.Body, lexical)), func(groups [][]*Node) []*Node {
			return slices.Concat(groups...)
		})

	case *ebnf.Token:
		return c.terminal(text.Literal(x.String), lexical)

	case *ebnf.Range:
		lo, _ := utf8.DecodeRuneInString(x.Begin.String)
		hi, _ := utf8.DecodeRuneInString(x.End.String)
		return c.terminal(parser.Map(text.Range(lo, hi), func(r rune) string { return string(r) }), lexical)

	case *ebnf.Name:
		ref := c.refs[x.String]
		p := func(in parser.Text) parser.Result[parser.Text, []*Node] {
			return parser.MapResult(ref.Parse(in), func(n *Node) []*Node { return []*Node{n} })
		}
		if !lexical && isLexical(x.String) {
			return parser.Before(c.skip, rule(p))
		}
		return p

	default:
		panic(fmt.Sprintf("ebnf: unexpected expression %T", x))
	}
}

// terminal turns a literal match into a single literal node, skipping
// before it when used inside a non-lexical production.
func (c *compiler) terminal(p parser.Parser[parser.Text, string], lexical bool) rule {
	leaf := func(in parser.Text) parser.Result[parser.Text, []*Node] {
		return parser.FlatMapResult(p(in), func(s string, rest parser.Text) parser.Result[parser.Text, []*Node] {
			return parser.Ok([]*Node{newTerminal(LiteralKind, s, in, rest)}, rest)
		})
	}
	if lexical {
		return leaf
	}
	return parser.Before(c.skip, rule(leaf))
}
