package backend

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/nanoview/internal/renderer/core"
)

// DrawText writes text at (x, y) one grapheme cluster per cell, stopping
// before column maxX. A wide cluster that would straddle maxX is not drawn.
// It returns the column after the last cell written.
func DrawText(b Backend, x, y, maxX int, text string, style core.Style) int {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		cell := core.ClusterCell(cluster, style)
		w := cell.Width
		if w <= 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		b.SetCell(x, y, cell)
		x += w
	}
	return x
}

// FillRow paints columns [x, maxX) of row y with blanks in style.
func FillRow(b Backend, x, y, maxX int, style core.Style) {
	if maxX <= x {
		return
	}
	b.Fill(core.ScreenRect{Top: y, Left: x, Bottom: y + 1, Right: maxX}, core.Cell{Rune: ' ', Width: 1, Style: style})
}
