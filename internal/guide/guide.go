// Package guide computes vertical indent-guide annotations for a text
// buffer: it locates the indentation block around the cursor, expands it
// to the contiguous run of member lines, and resolves one glyph per line.
// The package is host-agnostic; the host supplies read-only line access
// and composites the produced annotations.
package guide

import (
	"github.com/mattn/go-runewidth"
)

// Source is read-only line access provided by the host buffer.
type Source interface {
	LineCount() int
	Line(i int) []rune
}

// Surface receives the annotations of one command cycle. Clear removes
// whatever the previous cycle installed; it must be idempotent.
type Surface interface {
	Apply(anns []Annotation)
	ClearAnnotations()
}

// Cursor is a buffer position. Col is a logical rune index into the row.
type Cursor struct {
	Row int
	Col int
}

// Viewport is the inclusive range of currently visible rows.
type Viewport struct {
	Top    int
	Bottom int
}

// RenderMode says how an annotation is composited.
type RenderMode int

const (
	// ModeReplace overrides the display of the rune at Annotation.Col.
	ModeReplace RenderMode = iota
	// ModeAppend draws the glyph after the line's last character.
	ModeAppend
)

// Annotation is one transient guide marker on one row. It lives for a
// single command cycle and is destroyed by the next ClearAnnotations.
type Annotation struct {
	Row   int
	Col   int
	Mode  RenderMode
	Glyph *Glyph
}

// Span is the contiguous vertical run to annotate. Start and End are the
// first and last annotated rows; Column is the block's indentation level.
type Span struct {
	Start  int
	End    int
	Column int
}

// IsBlank reports whether a line contains only whitespace.
func IsBlank(line []rune) bool {
	for _, r := range line {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

// VisualIndent returns the visual width of the line's leading whitespace
// after tab expansion.
func VisualIndent(line []rune, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	col := 0
	for _, r := range line {
		switch r {
		case '\t':
			col += tabWidth - (col % tabWidth)
		case ' ':
			col++
		default:
			return col
		}
	}
	return col
}

// advance returns the visual width of r rendered at column col.
func advance(r rune, col, tabWidth int) int {
	if r == '\t' {
		if tabWidth < 1 {
			tabWidth = 1
		}
		return tabWidth - (col % tabWidth)
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}
