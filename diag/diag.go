// Package diag turns parse failures into located diagnostics and renders
// them for terminals.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dhamidi/combinator/parser"
	"github.com/dhamidi/combinator/text"
)

// Diagnostic is a parse failure located in its source.
type Diagnostic struct {
	Pos      text.Position
	Expected string
	Line     string // source line containing Pos
}

// New locates perr in src.
func New(filename, src string, perr *parser.Error) Diagnostic {
	pos := text.Locate(src, perr.Offset)
	pos.Filename = filename
	return Diagnostic{
		Pos:      pos,
		Expected: perr.Expected,
		Line:     text.LineAt(src, perr.Offset),
	}
}

// FromError returns the diagnostic for err if it wraps a *parser.Error.
func FromError(filename, src string, err error) (Diagnostic, bool) {
	var perr *parser.Error
	if !errors.As(err, &perr) {
		return Diagnostic{}, false
	}
	return New(filename, src, perr), true
}

// Message describes the failure without its position.
func (d Diagnostic) Message() string {
	return "expected " + d.Expected
}

func (d Diagnostic) Error() string {
	return d.Pos.String() + ": " + d.Message()
}

// Renderer formats diagnostics as a header line followed by the offending
// source line and a caret under the failure column.
type Renderer struct {
	pos    lipgloss.Style
	msg    lipgloss.Style
	gutter lipgloss.Style
	caret  lipgloss.Style
}

// NewRenderer returns a renderer for output written to w. Colors are used
// only when color is set and w is a terminal.
func NewRenderer(w io.Writer, color bool) *Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		pos:    r.NewStyle().Bold(true),
		msg:    r.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		gutter: r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		caret:  r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
	}
}

func (r *Renderer) Render(d Diagnostic) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", r.pos.Render(d.Pos.String()+":"), r.msg.Render(d.Message()))

	lineNo := strconv.Itoa(d.Pos.Line)
	blank := strings.Repeat(" ", len(lineNo))
	fmt.Fprintf(&sb, "%s %s\n", r.gutter.Render(lineNo+" |"), d.Line)
	fmt.Fprintf(&sb, "%s %s%s\n", r.gutter.Render(blank+" |"), padding(d.Line, d.Pos.Column-1), r.caret.Render("^"))
	return sb.String()
}

// Fprint writes the rendered diagnostic to w.
func (r *Renderer) Fprint(w io.Writer, d Diagnostic) error {
	_, err := io.WriteString(w, r.Render(d))
	return err
}

// padding returns the white space lining up a caret with byte n of line,
// keeping tabs so the caret stays aligned.
func padding(line string, n int) string {
	n = min(max(n, 0), len(line))
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}
		return ' '
	}, line[:n])
}
