package document

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Line is one immutable row of text indexed by extended grapheme clusters.
//
// All indices taken or returned by Line count grapheme clusters, never bytes
// or code points. A flag emoji, a base letter with combining marks and a
// ZWJ family sequence each count as one.
type Line struct {
	text string
	// bounds[i] is the byte offset of cluster i; bounds[len-1] == len(text).
	bounds []int
}

// NewLine splits raw into grapheme clusters and returns the Line.
func NewLine(raw string) Line {
	if raw == "" {
		return Line{}
	}
	bounds := make([]int, 0, len(raw)+1)
	g := uniseg.NewGraphemes(raw)
	for g.Next() {
		from, _ := g.Positions()
		bounds = append(bounds, from)
	}
	bounds = append(bounds, len(raw))
	return Line{text: raw, bounds: bounds}
}

// Display returns the full text of the line.
func (l Line) Display() string {
	return l.text
}

// Len returns the number of grapheme clusters in the line.
func (l Line) Len() int {
	if len(l.bounds) == 0 {
		return 0
	}
	return len(l.bounds) - 1
}

// IsEmpty reports whether the line has no graphemes.
func (l Line) IsEmpty() bool {
	return l.Len() == 0
}

// clamp normalizes [start, end) to valid cluster indices.
// ok is false when the range selects nothing.
func (l Line) clamp(start, end int) (int, int, bool) {
	n := l.Len()
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= n || end <= start {
		return 0, 0, false
	}
	return start, end, true
}

// DisplayRange returns graphemes [start, end). Out of range input never
// panics: end < start or start past the end yields "", and end is clamped
// to Len.
func (l Line) DisplayRange(start, end int) string {
	start, end, ok := l.clamp(start, end)
	if !ok {
		return ""
	}
	return l.text[l.bounds[start]:l.bounds[end]]
}

// Graphemes returns the clusters [start, end) with the same clamping rules
// as DisplayRange.
func (l Line) Graphemes(start, end int) []string {
	start, end, ok := l.clamp(start, end)
	if !ok {
		return nil
	}
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, l.text[l.bounds[i]:l.bounds[i+1]])
	}
	return out
}

// Grapheme returns cluster i, or "" when i is out of range.
func (l Line) Grapheme(i int) string {
	if i < 0 || i >= l.Len() {
		return ""
	}
	return l.text[l.bounds[i]:l.bounds[i+1]]
}

// Width returns the display width of the line in terminal cells.
func (l Line) Width() int {
	return runewidth.StringWidth(l.text)
}
