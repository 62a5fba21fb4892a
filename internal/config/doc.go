// Package config provides the settings for nanoview.
//
// Settings are resolved in layers, later layers overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  4. Command line flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment (NANOVIEW_) │
//	├─────────────────────────────┤
//	│  2. Settings file           │  ← nanoview.{toml,yaml,yml,json}
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Without an explicit path the settings file is searched for in the working
// directory and then in the user config directory (for example
// ~/.config/nanoview). Finding no file is not an error. A file that cannot
// be parsed, or a value of the wrong type or out of range, is a
// *ConfigError.
//
// # Keys
//
//	appearance.theme         chroma style name (default "monokai")
//	appearance.status_fg     title bar foreground, "#rrggbb"
//	appearance.status_bg     title bar background, "#rrggbb"
//	editor.line_numbers      show the line number gutter (default false)
//	editor.line_number_mode  absolute, relative or hybrid
//	editor.tab_width         columns per tab stop, 1-16 (default 4)
//	logging.level            debug, info, warn or error (default info)
//
// # Basic Usage
//
//	settings, err := config.Load(config.LoadOptions{})
//	if err != nil {
//		var cerr *config.ConfigError
//		errors.As(err, &cerr)
//	}
package config
