// Package gutter provides gutter rendering for the viewer.
// The gutter is the area to the left of the text that displays line numbers.
package gutter

import (
	"github.com/dshills/nanoview/internal/renderer/backend"
	"github.com/dshills/nanoview/internal/renderer/core"
)

// Config holds gutter configuration.
type Config struct {
	// ShowLineNumbers enables line number display.
	ShowLineNumbers bool

	// Mode selects absolute, relative or hybrid numbering.
	Mode LineNumberMode

	// MinLineNumberWidth is the minimum number of digit columns.
	MinLineNumberWidth int
}

// DefaultConfig returns the default gutter configuration.
func DefaultConfig() Config {
	return Config{
		ShowLineNumbers:    false,
		Mode:               LineNumberAbsolute,
		MinLineNumberWidth: 3,
	}
}

// Gutter draws the line number column.
type Gutter struct {
	config    Config
	lineCount int
	formatter *LineNumberFormatter

	numberStyle  core.Style
	currentStyle core.Style
}

// New creates a gutter.
func New(config Config) *Gutter {
	g := &Gutter{
		config:       config,
		formatter:    NewLineNumberFormatter(config.Mode, config.MinLineNumberWidth),
		numberStyle:  core.NewStyle(core.ColorGray),
		currentStyle: core.DefaultStyle().Bold(),
	}
	g.formatter.SetWidth(g.numberWidth())
	return g
}

// SetLineCount sets the document size used to size the number column.
func (g *Gutter) SetLineCount(count int) {
	g.lineCount = count
	g.formatter.SetWidth(g.numberWidth())
}

// SetCurrentLine sets the cursor row, highlighted and used as the
// reference for relative numbers.
func (g *Gutter) SetCurrentLine(line int) {
	g.formatter.SetCurrentLine(line)
}

// Enabled reports whether line numbers are shown.
func (g *Gutter) Enabled() bool {
	return g.config.ShowLineNumbers
}

// Width returns the total gutter width including the separator column,
// or 0 when line numbers are off.
func (g *Gutter) Width() int {
	if !g.config.ShowLineNumbers {
		return 0
	}
	return g.numberWidth() + 1
}

func (g *Gutter) numberWidth() int {
	return CalculateWidth(g.lineCount, g.config.MinLineNumberWidth)
}

// Render draws the gutter for screen row y showing document row line.
// Rows past the end of the document get a blank gutter.
func (g *Gutter) Render(b backend.Backend, y, line int, exists bool) {
	width := g.Width()
	if width == 0 {
		return
	}

	backend.FillRow(b, 0, y, width, core.DefaultStyle())
	if !exists {
		return
	}

	style := g.numberStyle
	if line == g.formatter.current {
		style = g.currentStyle
	}
	backend.DrawText(b, 0, y, width-1, g.formatter.Format(line), style)
}
