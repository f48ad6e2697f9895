package text

import (
	"fmt"
	"strings"
)

// Position is a location in source text.
type Position struct {
	Filename string
	Offset   int // byte offset, starting at 0
	Line     int // 1-based
	Column   int // 1-based, in bytes
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Locate converts a byte offset into src to a line and column. Offsets
// outside src are clamped.
func Locate(src string, offset int) Position {
	offset = min(max(offset, 0), len(src))
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	column := offset - strings.LastIndexByte(before, '\n')
	return Position{Offset: offset, Line: line, Column: column}
}

// LineAt returns the full line of src containing offset, without its line
// terminator.
func LineAt(src string, offset int) string {
	offset = min(max(offset, 0), len(src))
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	end := strings.IndexByte(src[offset:], '\n')
	if end < 0 {
		return strings.TrimSuffix(src[start:], "\r")
	}
	return strings.TrimSuffix(src[start:offset+end], "\r")
}
