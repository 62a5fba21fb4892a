// Package viewport provides viewport management for the renderer.
//
// The viewport owns the coordinate math between a document and the
// terminal: its visible size, the scroll offset and the cursor.
package viewport

import (
	"sync"
)

// ReservedRows is the number of terminal rows not available for text:
// the status bar at the top and the position line at the bottom.
const ReservedRows = 2

// Viewport represents the visible portion of the document.
type Viewport struct {
	mu sync.RWMutex

	// Raw terminal size in cells
	termWidth  int
	termHeight int

	// Columns taken by the gutter
	reservedCols int

	offset Position
	cursor Position
}

// New creates a viewport for a terminal of the given size.
// Rows reserved for the status bars are excluded from the text height;
// a terminal shorter than that yields a height of 0.
func New(termWidth, termHeight int) *Viewport {
	v := &Viewport{}
	v.resize(termWidth, termHeight)
	return v
}

func (v *Viewport) resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	v.termWidth = termWidth
	v.termHeight = termHeight
}

// Resize updates the terminal size. Offset and cursor are kept; the next
// ScrollToReveal brings the cursor back into view.
func (v *Viewport) Resize(termWidth, termHeight int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.resize(termWidth, termHeight)
}

// TerminalSize returns the raw terminal size the viewport was built for.
func (v *Viewport) TerminalSize() (width, height int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.termWidth, v.termHeight
}

// SetReservedColumns sets how many columns at the left edge are used by
// the gutter and are therefore unavailable for text.
func (v *Viewport) SetReservedColumns(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if n < 0 {
		n = 0
	}
	v.reservedCols = n
}

// ReservedColumns returns the gutter width.
func (v *Viewport) ReservedColumns() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.reservedCols
}

// Width returns the number of text columns.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width()
}

func (v *Viewport) width() int {
	return saturatingSub(v.termWidth, v.reservedCols)
}

// Height returns the number of visible text rows.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height()
}

func (v *Viewport) height() int {
	return saturatingSub(v.termHeight, ReservedRows)
}

// Offset returns the document position shown at the top-left cell.
func (v *Viewport) Offset() Position {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offset
}

// Cursor returns the cursor position in document coordinates.
func (v *Viewport) Cursor() Position {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cursor
}

// SetCursor moves the cursor to p. Negative components become 0.
func (v *Viewport) SetCursor(p Position) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cursor = Position{X: max(p.X, 0), Y: max(p.Y, 0)}
}

// MoveCursor moves the cursor one step in dir.
//
// The column is first clamped to the width of the current row. Left, Right
// and Up then move by one, saturating at 0. Down clamps the row to the row
// count before adding one. Nothing is clamped after the move, so the cursor
// may end one column past the row end or one row past the last row.
func (v *Viewport) MoveCursor(dir Direction, rows Rows) {
	v.mu.Lock()
	defer v.mu.Unlock()

	c := v.cursor
	if rowLen := rows.RowLen(c.Y); c.X > rowLen {
		c.X = rowLen
	}

	switch dir {
	case Left:
		c.X = saturatingSub(c.X, 1)
	case Right:
		c.X++
	case Up:
		c.Y = saturatingSub(c.Y, 1)
	case Down:
		if n := rows.RowCount(); c.Y > n {
			c.Y = n
		}
		c.Y++
	}

	v.cursor = c
}

// ScrollToReveal moves the offset by the minimal amount that puts the
// cursor inside the visible window. It reports whether the offset changed.
// An axis with zero size is left alone.
func (v *Viewport) ScrollToReveal() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	before := v.offset

	if h := v.height(); h > 0 {
		switch {
		case v.cursor.Y < v.offset.Y:
			v.offset.Y = v.cursor.Y
		case v.cursor.Y >= v.offset.Y+h:
			v.offset.Y = v.cursor.Y - h + 1
		}
	}

	if w := v.width(); w > 0 {
		switch {
		case v.cursor.X < v.offset.X:
			v.offset.X = v.cursor.X
		case v.cursor.X >= v.offset.X+w:
			v.offset.X = v.cursor.X - w + 1
		}
	}

	v.offset.X = max(v.offset.X, 0)
	v.offset.Y = max(v.offset.Y, 0)

	return v.offset != before
}

// RevealColumn advances the horizontal offset one grapheme at a time,
// never past the cursor column, until fits reports that the cursor is
// drawn inside the window when the row starts at that offset. Use it
// after ScrollToReveal on rows whose graphemes are wider than one cell.
// It reports whether the offset changed.
func (v *Viewport) RevealColumn(fits func(first int) bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.width() == 0 {
		return false
	}
	before := v.offset.X
	for v.offset.X < v.cursor.X && !fits(v.offset.X) {
		v.offset.X++
	}
	return v.offset.X != before
}

// VisibleRowSpan returns the document rows [first, last) in view.
func (v *Viewport) VisibleRowSpan() (first, last int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offset.Y, v.offset.Y + v.height()
}

// VisibleColSpan returns the grapheme columns [first, last) in view.
func (v *Viewport) VisibleColSpan() (first, last int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offset.X, v.offset.X + v.width()
}

// CursorScreenPos returns the cursor relative to the text area as
// (column, row). Underflow saturates at 0 and the result is clamped to
// [0, width) x [0, height); an empty axis yields 0.
func (v *Viewport) CursorScreenPos() (col, row int) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	col = saturatingSub(v.cursor.X, v.offset.X)
	row = saturatingSub(v.cursor.Y, v.offset.Y)

	if w := v.width(); col >= w {
		col = max(w-1, 0)
	}
	if h := v.height(); row >= h {
		row = max(h-1, 0)
	}
	return col, row
}

// ScrollPercent returns how far through a document of rowCount rows the
// bottom of the window is, from 0 to 100.
func (v *Viewport) ScrollPercent(rowCount int) int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if rowCount <= 0 {
		return 100
	}
	bottom := v.offset.Y + v.height()
	if bottom >= rowCount {
		return 100
	}
	return bottom * 100 / rowCount
}
