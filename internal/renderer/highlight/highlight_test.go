package highlight

import (
	"errors"
	"testing"

	"github.com/dshills/nanoview/internal/renderer/core"
)

func TestPlain(t *testing.T) {
	spans := Plain("hello")
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Text != "hello" {
		t.Errorf("expected %q, got %q", "hello", spans[0].Text)
	}
	if !spans[0].Style.IsDefault() {
		t.Error("plain span should use the default style")
	}
	if Plain("") != nil {
		t.Error("plain of empty text should be nil")
	}
}

func TestJoin(t *testing.T) {
	spans := []Span{{Text: "ab"}, {Text: ""}, {Text: "c"}}
	if got := Join(spans); got != "abc" {
		t.Errorf("expected %q, got %q", "abc", got)
	}
}

func TestAppendSpanMergesEqualStyles(t *testing.T) {
	bold := core.DefaultStyle().Bold()

	var spans []Span
	spans = appendSpan(spans, "a", bold)
	spans = appendSpan(spans, "b", bold)
	spans = appendSpan(spans, "", core.DefaultStyle())
	spans = appendSpan(spans, "c", core.DefaultStyle())

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Text != "ab" || spans[1].Text != "c" {
		t.Errorf("unexpected spans %+v", spans)
	}
}

func TestFunc(t *testing.T) {
	var h Highlighter = Func(func(text, language, theme string) ([]Span, error) {
		return Plain(text + language + theme), nil
	})
	spans, err := h.Highlight("a", "b", "c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Join(spans) != "abc" {
		t.Errorf("expected %q, got %q", "abc", Join(spans))
	}
}

func TestChromaRoundTrip(t *testing.T) {
	h := NewChroma()

	tests := []struct {
		name     string
		text     string
		language string
	}{
		{"go func", "func main() { fmt.Println(\"hi\") }", "go"},
		{"go comment", "// 日本語 comment 😀", "go"},
		{"python", "def f(x):  # trailing", "py"},
		{"leading tab", "\tx := 1", "go"},
		{"unterminated string", "s := \"abc", "go"},
		{"plain text", "just words", "txt"},
		{"combining mark", "name := \"e\u0301\"", "go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, err := h.Highlight(tt.text, tt.language, "monokai")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := Join(spans); got != tt.text {
				t.Errorf("expected spans to rebuild %q, got %q", tt.text, got)
			}
			for i, s := range spans {
				if s.Text == "" {
					t.Errorf("span %d is empty", i)
				}
			}
		})
	}
}

func TestChromaColorsKeywords(t *testing.T) {
	h := NewChroma()

	spans, err := h.Highlight("func main() {}", "go", "monokai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) < 2 {
		t.Fatalf("expected several spans, got %d", len(spans))
	}
	if spans[0].Text != "func" {
		t.Fatalf("expected first span %q, got %q", "func", spans[0].Text)
	}
	if spans[0].Style.Foreground.IsDefault() {
		t.Error("keyword should have a theme color")
	}
	if !spans[0].Style.Background.IsDefault() {
		t.Error("background should be left to the terminal")
	}
}

func TestChromaEmptyText(t *testing.T) {
	h := NewChroma()

	spans, err := h.Highlight("", "go", "monokai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 0 {
		t.Errorf("expected no spans, got %d", len(spans))
	}
}

func TestChromaUnsupportedLanguage(t *testing.T) {
	h := NewChroma()

	for _, lang := range []string{"zzqq", ""} {
		_, err := h.Highlight("text", lang, "monokai")
		if !errors.Is(err, ErrUnsupportedLanguage) {
			t.Errorf("language %q: expected ErrUnsupportedLanguage, got %v", lang, err)
		}
		if h.HasLanguage(lang) {
			t.Errorf("language %q should not resolve", lang)
		}
	}
}

func TestChromaThemeLookup(t *testing.T) {
	h := NewChroma()

	tests := []struct {
		theme string
		ok    bool
	}{
		{"monokai", true},
		{"Monokai", true},
		{"dracula", true},
		{"no-such-theme", false},
		{"", false},
	}

	for _, tt := range tests {
		_, err := h.Highlight("x := 1", "go", tt.theme)
		if tt.ok && err != nil {
			t.Errorf("theme %q: unexpected error %v", tt.theme, err)
		}
		if !tt.ok && !errors.Is(err, ErrThemeMissing) {
			t.Errorf("theme %q: expected ErrThemeMissing, got %v", tt.theme, err)
		}
		if h.HasTheme(tt.theme) != tt.ok {
			t.Errorf("theme %q: HasTheme mismatch", tt.theme)
		}
	}
}

func TestThemes(t *testing.T) {
	names := Themes()
	if len(names) == 0 {
		t.Fatal("expected registered themes")
	}
	found := false
	for i, n := range names {
		if n == "monokai" {
			found = true
		}
		if i > 0 && names[i-1] > n {
			t.Errorf("themes not sorted at %d", i)
		}
	}
	if !found {
		t.Error("expected monokai to be registered")
	}
}

func TestCache(t *testing.T) {
	calls := 0
	inner := Func(func(text, language, theme string) ([]Span, error) {
		calls++
		if language == "bad" {
			return nil, ErrUnsupportedLanguage
		}
		return Plain(text), nil
	})

	c := NewCache(inner, 10)
	for i := 0; i < 3; i++ {
		if _, err := c.Highlight("a", "go", "monokai"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 underlying call, got %d", calls)
	}

	for i := 0; i < 2; i++ {
		if _, err := c.Highlight("a", "bad", "monokai"); !errors.Is(err, ErrUnsupportedLanguage) {
			t.Errorf("expected cached error, got %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("expected 2 underlying calls, got %d", calls)
	}

	hits, misses := c.Stats()
	if hits != 3 || misses != 2 {
		t.Errorf("expected 3 hits and 2 misses, got %d and %d", hits, misses)
	}
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(Func(func(text, _, _ string) ([]Span, error) {
		return Plain(text), nil
	}), 8)

	for i := 0; i < 50; i++ {
		_, _ = c.Highlight(string(rune('a'+i%26))+string(rune('A'+i/26)), "go", "monokai")
	}
	if c.Len() > 8 {
		t.Errorf("expected at most 8 cached lines, got %d", c.Len())
	}
}
