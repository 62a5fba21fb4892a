// Package layout turns highlighted text into terminal cells.
package layout

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/nanoview/internal/renderer/core"
	"github.com/dshills/nanoview/internal/renderer/highlight"
)

// LineLayout represents the visual layout of one row of text.
type LineLayout struct {
	// Visual representation, one entry per screen column. The second
	// column of a wide cluster holds a zero-width continuation cell.
	Cells []core.Cell

	// GraphemeCols maps grapheme index -> visual column.
	GraphemeCols []int

	// Metadata
	Width   int  // Total visual width in columns
	HasTabs bool // Contains tab characters
	HasWide bool // Contains wide (CJK) characters
}

// VisualColumn converts a grapheme index to a visual column.
// Indices past the end extrapolate one column per grapheme.
func (l *LineLayout) VisualColumn(g int) int {
	if g < 0 {
		return 0
	}
	if g >= len(l.GraphemeCols) {
		return l.Width + g - len(l.GraphemeCols)
	}
	return l.GraphemeCols[g]
}

// IsEmpty returns true if the layout represents an empty line.
func (l *LineLayout) IsEmpty() bool {
	return len(l.Cells) == 0
}

// continuation is the filler cell behind a wide cluster.
func continuation(style core.Style) core.Cell {
	return core.Cell{Width: 0, Style: style}
}

// Engine computes line layouts.
type Engine struct {
	tabs TabStops
}

// NewEngine creates a layout engine with the given tab width.
func NewEngine(tabWidth int) *Engine {
	return &Engine{tabs: NewTabStops(tabWidth)}
}

// TabWidth returns the current tab width.
func (e *Engine) TabWidth() int {
	return int(e.tabs)
}

// SetTabWidth sets the tab width. Widths below 1 become 1.
func (e *Engine) SetTabWidth(width int) {
	e.tabs = TabStops(max(width, 1))
}

// Layout computes the cells for a sequence of spans. Each grapheme
// cluster takes its span's style. Tabs expand to the next tab stop and
// control characters render in caret notation.
func (e *Engine) Layout(spans []highlight.Span) *LineLayout {
	l := &LineLayout{}

	for _, span := range spans {
		g := uniseg.NewGraphemes(span.Text)
		for g.Next() {
			e.appendCluster(l, g.Str(), span.Style)
		}
	}

	l.Width = len(l.Cells)
	return l
}

// LayoutText lays out unstyled text.
func (e *Engine) LayoutText(text string) *LineLayout {
	return e.Layout(highlight.Plain(text))
}

func (e *Engine) appendCluster(l *LineLayout, cluster string, style core.Style) {
	col := len(l.Cells)
	l.GraphemeCols = append(l.GraphemeCols, col)

	if cluster == "\t" {
		l.HasTabs = true
		for i := e.tabs.Advance(col); i > 0; i-- {
			l.Cells = append(l.Cells, core.Cell{Rune: ' ', Width: 1, Style: style})
		}
		return
	}

	if caret, ok := Placeholder(cluster); ok {
		for _, r := range caret {
			l.Cells = append(l.Cells, core.NewStyledCell(r, style.Reverse()))
		}
		return
	}

	cell := core.ClusterCell(cluster, style)
	switch {
	case cell.Width <= 0:
		// Nothing to draw; the grapheme shares the next column.
	case cell.Width == 1:
		l.Cells = append(l.Cells, cell)
	default:
		l.HasWide = true
		l.Cells = append(l.Cells, cell)
		for i := 1; i < cell.Width; i++ {
			l.Cells = append(l.Cells, continuation(style))
		}
	}
}

// Placeholder returns the caret notation for a control character
// cluster such as "^A" or "^?".
func Placeholder(cluster string) (string, bool) {
	if len(cluster) == 0 {
		return "", false
	}
	r := cluster[0]
	switch {
	case r == '\t':
		return "", false
	case r < 0x20:
		return "^" + string(rune(r+'@')), true
	case r == 0x7F:
		return "^?", true
	default:
		return "", false
	}
}
