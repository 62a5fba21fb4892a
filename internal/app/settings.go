package app

import (
	"fmt"

	"github.com/dshills/nanoview/internal/config"
	"github.com/dshills/nanoview/internal/renderer"
	"github.com/dshills/nanoview/internal/renderer/gutter"
	"github.com/dshills/nanoview/internal/renderer/highlight"
)

// ThemeChecker reports whether a theme name resolves.
type ThemeChecker interface {
	HasTheme(theme string) bool
}

// CheckTheme returns a *config.ConfigError wrapping
// highlight.ErrThemeMissing when the settings name an unknown theme.
func CheckTheme(themes ThemeChecker, s config.Settings) error {
	if themes.HasTheme(s.Theme) {
		return nil
	}
	return &config.ConfigError{
		Path: s.Source,
		Key:  config.KeyTheme,
		Err:  fmt.Errorf("%w: %q", highlight.ErrThemeMissing, s.Theme),
	}
}

// RendererOptions converts resolved settings into renderer options.
func RendererOptions(s config.Settings, version string) (renderer.Options, error) {
	mode, err := gutter.ParseLineNumberMode(s.LineNumberMode)
	if err != nil {
		return renderer.Options{}, &config.ConfigError{Path: s.Source, Key: config.KeyLineNumberMode, Err: err}
	}

	opts := renderer.DefaultOptions()
	if version != "" {
		opts.Version = version
	}
	opts.Theme = s.Theme
	opts.ShowLineNumbers = s.LineNumbers
	opts.LineNumberMode = mode
	opts.TabWidth = s.TabWidth
	opts.StatusForeground, opts.StatusBackground = s.StatusColors()
	return opts, nil
}
