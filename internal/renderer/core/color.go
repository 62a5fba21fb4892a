// Package core holds the value types shared by the renderer and its
// backends: colors, styles, cells and screen rectangles.
package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a terminal color: the terminal default, a palette index or
// a 24-bit RGB value.
type Color struct {
	R, G, B uint8
	// Indexed means R holds a palette index (0-255).
	Indexed bool
	// Default means the terminal's own color.
	Default bool
}

// ColorDefault is the terminal's default color.
var ColorDefault = Color{Default: true}

// Fixed colors used by the status line and gutter.
var (
	ColorWhite  = Color{R: 255, G: 255, B: 255}
	ColorGray   = Color{R: 128, G: 128, B: 128}
	ColorYellow = Color{R: 229, G: 229, B: 16}
	ColorRed    = Color{R: 205, G: 49, B: 49}
)

// ColorFromRGB creates a true color.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates a palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex parses "#rgb" or "#rrggbb". The '#' is optional.
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}

// IsDefault reports whether c is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals compares two colors by kind and value.
func (c Color) Equals(other Color) bool {
	switch {
	case c.Default || other.Default:
		return c.Default == other.Default
	case c.Indexed || other.Indexed:
		return c.Indexed == other.Indexed && c.R == other.R
	default:
		return c.R == other.R && c.G == other.G && c.B == other.B
	}
}

// String returns "default", "idx(N)" or "#RRGGBB".
func (c Color) String() string {
	switch {
	case c.Default:
		return "default"
	case c.Indexed:
		return fmt.Sprintf("idx(%d)", c.R)
	default:
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
}
