package highlight

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"

	"github.com/dshills/nanoview/internal/renderer/core"
)

// Chroma highlights text with chroma lexers and styles.
// It is meant to be built once and reused for every line; resolved lexers
// and styles are cached, including failed lookups.
type Chroma struct {
	mu     sync.Mutex
	lexers map[string]chroma.Lexer
	styles map[string]*chroma.Style
}

// NewChroma creates a chroma backed highlighter.
func NewChroma() *Chroma {
	return &Chroma{
		lexers: make(map[string]chroma.Lexer),
		styles: make(map[string]*chroma.Style),
	}
}

// Highlight implements Highlighter.
func (c *Chroma) Highlight(text, language, theme string) ([]Span, error) {
	lexer, err := c.lexer(language)
	if err != nil {
		return nil, err
	}
	style, err := c.style(theme)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", language, err)
	}

	// Some lexers append a newline to their input. Spans are cut back to
	// the original text; anything else that does not line up falls back
	// to plain text.
	spans := make([]Span, 0, len(tokens))
	rest := text
	for _, tok := range tokens {
		if rest == "" {
			break
		}
		v := tok.Value
		switch {
		case v == "":
			continue
		case strings.HasPrefix(rest, v):
		case strings.HasPrefix(v, rest):
			v = rest
		default:
			return Plain(text), nil
		}
		spans = appendSpan(spans, v, tokenStyle(style.Get(tok.Type)))
		rest = rest[len(v):]
	}
	if rest != "" {
		return Plain(text), nil
	}
	return spans, nil
}

// HasLanguage reports whether a grammar exists for the language tag.
func (c *Chroma) HasLanguage(language string) bool {
	_, err := c.lexer(language)
	return err == nil
}

// HasTheme reports whether the theme name resolves.
func (c *Chroma) HasTheme(theme string) bool {
	_, err := c.style(theme)
	return err == nil
}

// Themes returns the names of all available themes, sorted.
func Themes() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Chroma) lexer(language string) (chroma.Lexer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.lexers[language]
	if !ok {
		l = lookupLexer(language)
		c.lexers[language] = l
	}
	if l == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	return l, nil
}

func (c *Chroma) style(theme string) (*chroma.Style, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.styles[theme]
	if !ok {
		s = lookupStyle(theme)
		c.styles[theme] = s
	}
	if s == nil {
		return nil, fmt.Errorf("%w: %q", ErrThemeMissing, theme)
	}
	return s, nil
}

// lookupLexer resolves a tag by chroma name, alias or extension first,
// then through the linguist language for the extension.
func lookupLexer(language string) chroma.Lexer {
	if language == "" {
		return nil
	}
	if l := lexers.Get(language); l != nil {
		return chroma.Coalesce(l)
	}
	if name, _ := enry.GetLanguageByExtension("file." + language); name != "" {
		if l := lexers.Get(name); l != nil {
			return chroma.Coalesce(l)
		}
	}
	return nil
}

// lookupStyle resolves a theme name. styles.Get is not used because it
// silently returns the fallback style for unknown names.
func lookupStyle(theme string) *chroma.Style {
	if theme == "" {
		return nil
	}
	if s, ok := styles.Registry[theme]; ok {
		return s
	}
	if s, ok := styles.Registry[strings.ToLower(theme)]; ok {
		return s
	}
	return nil
}

// tokenStyle maps a chroma style entry to a core style. Backgrounds are
// left to the terminal.
func tokenStyle(entry chroma.StyleEntry) core.Style {
	s := core.DefaultStyle()
	if entry.Colour.IsSet() {
		s = s.WithForeground(core.ColorFromRGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue()))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold()
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic()
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline()
	}
	return s
}
