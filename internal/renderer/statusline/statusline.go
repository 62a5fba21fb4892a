// Package statusline provides the title bar and the bottom position line.
package statusline

import (
	"fmt"
	"strconv"

	"github.com/dshills/nanoview/internal/renderer/backend"
	"github.com/dshills/nanoview/internal/renderer/core"
)

// DefaultHint is the key hint shown on the right of the bottom line.
const DefaultHint = "q: quit"

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine renders the top title bar and the bottom position line.
type StatusLine struct {
	program string
	version string

	// Display state
	filename      string
	language      string
	line          int // 1-indexed for display
	col           int // 1-indexed for display
	totalLines    int
	percentScroll int
	hint          string

	// Message display
	message     string
	messageType MessageType

	barStyle core.Style
	width    int
}

// New creates a status line for the named program.
func New(program, version string) *StatusLine {
	return &StatusLine{
		program:  program,
		version:  version,
		hint:     DefaultHint,
		barStyle: core.DefaultStyle().Reverse(),
	}
}

// SetFilename updates the displayed document name.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetLanguage updates the displayed language name.
func (s *StatusLine) SetLanguage(language string) {
	s.language = language
}

// SetPosition updates the cursor position (1-indexed).
func (s *StatusLine) SetPosition(line, col int) {
	s.line = line
	s.col = col
}

// SetTotalLines updates the total line count.
func (s *StatusLine) SetTotalLines(total int) {
	s.totalLines = total
}

// SetScrollPercent updates the scroll percentage.
func (s *StatusLine) SetScrollPercent(percent int) {
	s.percentScroll = percent
}

// SetMessage shows msg on the bottom line in place of the hint. An empty
// msg brings the hint back.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// SetBarStyle overrides the title bar colors. Default colors keep the
// reverse video look.
func (s *StatusLine) SetBarStyle(fg, bg core.Color) {
	style := core.DefaultStyle()
	if fg.IsDefault() && bg.IsDefault() {
		style = style.Reverse()
	}
	s.barStyle = style.WithForeground(fg).WithBackground(bg)
}

// BarStyle returns the title bar style.
func (s *StatusLine) BarStyle() core.Style {
	return s.barStyle
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	if width < 0 {
		width = 0
	}
	s.width = width
}

// Title returns "<program> <version> - <name>".
func (s *StatusLine) Title() string {
	name := s.filename
	if name == "" {
		name = "[No Name]"
	}
	return fmt.Sprintf("%s %s - %s", s.program, s.version, name)
}

// TitlePadding returns the left pad that centers the title, 0 when it
// does not fit.
func (s *StatusLine) TitlePadding() int {
	w := core.StringWidth(s.Title())
	if w >= s.width {
		return 0
	}
	return (s.width - w) / 2
}

// RenderTitle draws the centered title bar across row.
func (s *StatusLine) RenderTitle(b backend.Backend, row int) {
	backend.FillRow(b, 0, row, s.width, s.barStyle)
	backend.DrawText(b, s.TitlePadding(), row, s.width, s.Title(), s.barStyle)
}

// RenderPosition draws the position line across row.
func (s *StatusLine) RenderPosition(b backend.Backend, row int) {
	style := core.DefaultStyle()
	backend.FillRow(b, 0, row, s.width, style)

	col := backend.DrawText(b, 0, row, s.width, s.formatPosition(), style)

	right := s.rightText()
	rightStyle := s.messageStyle()
	start := s.width - core.StringWidth(right)
	if s.message != "" {
		// Messages go left, after the position, and may be truncated.
		backend.DrawText(b, col+2, row, s.width, s.message, rightStyle)
		return
	}
	if start > col+1 {
		backend.DrawText(b, start, row, s.width, right, rightStyle)
	}
}

func (s *StatusLine) rightText() string {
	if s.totalLines == 0 {
		return s.hint
	}
	return s.scrollText() + "  " + s.hint
}

func (s *StatusLine) scrollText() string {
	switch {
	case s.line <= 1:
		return "Top"
	case s.line >= s.totalLines:
		return "Bot"
	default:
		return strconv.Itoa(s.percentScroll) + "%"
	}
}

func (s *StatusLine) messageStyle() core.Style {
	switch s.messageType {
	case MessageError:
		return core.NewStyle(core.ColorRed).Bold()
	case MessageWarning:
		return core.NewStyle(core.ColorYellow)
	default:
		return core.DefaultStyle()
	}
}

// formatPosition formats "Ln y, Col x" followed by the language.
func (s *StatusLine) formatPosition() string {
	line := s.line
	if line < 1 {
		line = 1
	}
	col := s.col
	if col < 1 {
		col = 1
	}

	result := "Ln " + strconv.Itoa(line) + ", Col " + strconv.Itoa(col)
	if s.language != "" {
		result += "  " + s.language
	}
	return result
}
