package layout

// DefaultTabWidth applies when the configured width is not positive.
const DefaultTabWidth = 4

// TabStops places a tab stop every n columns, counted from the first
// visible column of the line being laid out.
type TabStops int

// NewTabStops returns stops every width columns, or every
// DefaultTabWidth columns when width is not positive.
func NewTabStops(width int) TabStops {
	if width < 1 {
		return DefaultTabWidth
	}
	return TabStops(width)
}

// Advance returns how many columns a tab at col fills. It is always at
// least 1 and lands on the next stop.
func (t TabStops) Advance(col int) int {
	n := max(int(t), 1)
	return n - col%n
}
