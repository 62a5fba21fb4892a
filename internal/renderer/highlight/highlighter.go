// Package highlight turns a line of text into styled spans.
//
// The renderer depends only on the Highlighter interface. Chroma is the
// production implementation; Plain is the fallback used whenever a line
// cannot be highlighted.
package highlight

import (
	"errors"
	"strings"

	"github.com/dshills/nanoview/internal/renderer/core"
)

// Highlight errors.
var (
	// ErrUnsupportedLanguage indicates no grammar matches the language tag.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrThemeMissing indicates the theme name cannot be resolved.
	ErrThemeMissing = errors.New("theme not found")
)

// Span is a run of text drawn with one style.
type Span struct {
	Text  string
	Style core.Style
}

// Highlighter defines the interface for syntax highlighters.
type Highlighter interface {
	// Highlight splits text into styled spans. The spans concatenate to
	// exactly text. language is a file extension style tag such as "go".
	// Errors wrap ErrUnsupportedLanguage or ErrThemeMissing.
	Highlight(text, language, theme string) ([]Span, error)
}

// Func adapts an ordinary function to the Highlighter interface.
type Func func(text, language, theme string) ([]Span, error)

// Highlight calls f.
func (f Func) Highlight(text, language, theme string) ([]Span, error) {
	return f(text, language, theme)
}

// Plain returns text as a single default-style span.
func Plain(text string) []Span {
	if text == "" {
		return nil
	}
	return []Span{{Text: text, Style: core.DefaultStyle()}}
}

// Join returns the concatenated text of spans.
func Join(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// appendSpan adds text to spans, extending the last span when the style
// matches.
func appendSpan(spans []Span, text string, style core.Style) []Span {
	if text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Style.Equals(style) {
		spans[n-1].Text += text
		return spans
	}
	return append(spans, Span{Text: text, Style: style})
}
