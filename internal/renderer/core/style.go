package core

// Attribute is a set of text attributes.
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
	AttrStrikethrough
)

// Has reports whether every attribute in attr is set.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr == attr && attr != AttrNone
}

// Style is how a cell is drawn.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle uses the terminal's colors with no attributes.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// NewStyle returns the default style with foreground fg.
func NewStyle(fg Color) Style {
	return DefaultStyle().WithForeground(fg)
}

// WithForeground returns s with foreground fg.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns s with background bg.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

func (s Style) with(attr Attribute) Style {
	s.Attributes |= attr
	return s
}

// Bold returns s in bold.
func (s Style) Bold() Style { return s.with(AttrBold) }

// Italic returns s in italics.
func (s Style) Italic() Style { return s.with(AttrItalic) }

// Underline returns s underlined.
func (s Style) Underline() Style { return s.with(AttrUnderline) }

// Reverse returns s in reverse video.
func (s Style) Reverse() Style { return s.with(AttrReverse) }

// Equals compares colors and attributes.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Attributes == other.Attributes
}

// IsDefault reports whether s equals DefaultStyle.
func (s Style) IsDefault() bool {
	return s.Equals(DefaultStyle())
}
