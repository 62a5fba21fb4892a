package core

import (
	"slices"

	"github.com/mattn/go-runewidth"
)

// Cell is one terminal cell holding a single grapheme cluster: the base
// rune plus any combining runes.
type Cell struct {
	Rune      rune
	Combining []rune

	// Width is the display width in columns. A wide cluster has width 2
	// and the cell after it is a width 0 continuation.
	Width int

	Style Style
}

// EmptyCell is a blank in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// NewStyledCell creates a cell for a single rune.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// ClusterCell creates a cell from a grapheme cluster. An empty cluster
// yields a blank.
func ClusterCell(cluster string, style Style) Cell {
	runes := []rune(cluster)
	if len(runes) == 0 {
		return Cell{Rune: ' ', Width: 1, Style: style}
	}
	c := Cell{Rune: runes[0], Width: runewidth.StringWidth(cluster), Style: style}
	if len(runes) > 1 {
		c.Combining = runes[1:]
	}
	return c
}

// Text returns the cluster held by the cell.
func (c Cell) Text() string {
	return string(c.Rune) + string(c.Combining)
}

// IsEmpty reports whether the cell is blank.
func (c Cell) IsEmpty() bool {
	return (c.Rune == ' ' || c.Rune == 0) && len(c.Combining) == 0
}

// Equals compares content, width and style.
func (c Cell) Equals(other Cell) bool {
	return c.Rune == other.Rune &&
		c.Width == other.Width &&
		slices.Equal(c.Combining, other.Combining) &&
		c.Style.Equals(other.Style)
}

// RuneWidth returns the display width of r. Control characters are 0.
func RuneWidth(r rune) int {
	if r < 0x20 || r == 0x7F {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of s in columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// ScreenRect is a half-open rectangle of cells: rows [Top, Bottom) and
// columns [Left, Right).
type ScreenRect struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// RectFromSize creates a rectangle from its top-left corner and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the number of columns, never negative.
func (r ScreenRect) Width() int {
	return max(r.Right-r.Left, 0)
}

// Height returns the number of rows, never negative.
func (r ScreenRect) Height() int {
	return max(r.Bottom-r.Top, 0)
}

// IsEmpty reports whether the rectangle holds no cells.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() == 0 || r.Height() == 0
}
