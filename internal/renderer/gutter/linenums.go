package gutter

import (
	"fmt"
	"strconv"
	"strings"
)

// LineNumberMode selects what number is printed beside each row.
type LineNumberMode uint8

const (
	// LineNumberAbsolute prints the 1-based row number.
	LineNumberAbsolute LineNumberMode = iota
	// LineNumberRelative prints the distance to the cursor row.
	LineNumberRelative
	// LineNumberHybrid is relative except on the cursor row.
	LineNumberHybrid
)

var modeNames = [...]string{
	LineNumberAbsolute: "absolute",
	LineNumberRelative: "relative",
	LineNumberHybrid:   "hybrid",
}

// String returns the name used in settings files.
func (m LineNumberMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return modeNames[LineNumberAbsolute]
}

// ParseLineNumberMode accepts a mode name in any case. An empty name
// means absolute.
func ParseLineNumberMode(s string) (LineNumberMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return LineNumberAbsolute, nil
	}
	for m, n := range modeNames {
		if n == name {
			return LineNumberMode(m), nil
		}
	}
	return LineNumberAbsolute, fmt.Errorf("unknown line number mode %q", s)
}

// LineNumberFormatter renders right-aligned row labels.
type LineNumberFormatter struct {
	mode    LineNumberMode
	width   int
	current int
}

// NewLineNumberFormatter returns a formatter padding labels to width.
func NewLineNumberFormatter(mode LineNumberMode, width int) *LineNumberFormatter {
	return &LineNumberFormatter{mode: mode, width: width}
}

func (f *LineNumberFormatter) SetWidth(width int) { f.width = width }

// SetCurrentLine sets the 0-based cursor row used by the relative modes.
func (f *LineNumberFormatter) SetCurrentLine(line int) { f.current = line }

// Format returns the label for the 0-based row line.
func (f *LineNumberFormatter) Format(line int) string {
	n := line + 1
	if f.mode == LineNumberRelative || (f.mode == LineNumberHybrid && line != f.current) {
		n = line - f.current
		if n < 0 {
			n = -n
		}
	}
	return PadLeft(strconv.Itoa(n), f.width)
}

// PadLeft right-aligns s in width columns. Longer strings are returned
// unchanged.
func PadLeft(s string, width int) string {
	if pad := width - len(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

// CalculateWidth returns the columns needed to print lineCount, at least
// minWidth.
func CalculateWidth(lineCount, minWidth int) int {
	return max(len(strconv.Itoa(max(lineCount, 0))), minWidth)
}
