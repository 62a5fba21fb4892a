package viewport

import "fmt"

// Position is a column/row pair used for both the cursor and the scroll
// offset. X counts grapheme clusters, Y counts document rows.
type Position struct {
	X int
	Y int
}

// String returns a readable "(x, y)" form.
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Direction is a cursor movement direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Rows is the read-only view of a document the cursor math needs.
type Rows interface {
	// RowCount returns the number of rows.
	RowCount() int
	// RowLen returns the grapheme count of row y, or 0 past the end.
	RowLen(y int) int
}

// saturatingSub returns a-b, or 0 if that would be negative.
func saturatingSub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}
