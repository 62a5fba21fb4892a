package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/nanoview/internal/config/loader"
	"github.com/dshills/nanoview/internal/renderer/core"
)

// Defaults.
const (
	DefaultTheme          = "monokai"
	DefaultTabWidth       = 4
	DefaultLogLevel       = "info"
	DefaultLineNumberMode = "absolute"

	// MaxTabWidth bounds editor.tab_width.
	MaxTabWidth = 16

	// FileBaseName is the settings file name without extension.
	FileBaseName = "nanoview"
)

// Setting keys.
const (
	KeyTheme          = "appearance.theme"
	KeyStatusFG       = "appearance.status_fg"
	KeyStatusBG       = "appearance.status_bg"
	KeyLineNumbers    = "editor.line_numbers"
	KeyLineNumberMode = "editor.line_number_mode"
	KeyTabWidth       = "editor.tab_width"
	KeyLogLevel       = "logging.level"
)

var (
	logLevels       = []string{"debug", "info", "warn", "warning", "error"}
	lineNumberModes = []string{"absolute", "relative", "hybrid"}
)

// Settings holds the resolved viewer settings.
type Settings struct {
	Theme            string
	StatusForeground string
	StatusBackground string
	LineNumbers      bool
	LineNumberMode   string
	TabWidth         int
	LogLevel         string

	// Source is the settings file that was applied, "" when none.
	Source string
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Theme:          DefaultTheme,
		LineNumbers:    false,
		LineNumberMode: DefaultLineNumberMode,
		TabWidth:       DefaultTabWidth,
		LogLevel:       DefaultLogLevel,
	}
}

// Overrides holds values set on the command line. Nil fields are unset.
type Overrides struct {
	Theme       *string
	LineNumbers *bool
	LogLevel    *string
}

// LoadOptions controls where settings are read from.
type LoadOptions struct {
	// Path is an explicit settings file. It must exist.
	Path string

	// SearchDirs are tried in order when Path is empty.
	// Nil means DefaultSearchDirs.
	SearchDirs []string

	// FS defaults to the OS file system.
	FS loader.FileSystem

	// Env defaults to EnvLayer.
	Env loader.Loader

	Overrides Overrides
}

// EnvLayer returns the environment loader: NANOVIEW_<SECTION>_<KEY> for
// every setting plus the short names NANOVIEW_THEME, NANOVIEW_LINE_NUMBERS,
// NANOVIEW_LINE_NUMBER_MODE, NANOVIEW_TAB_WIDTH and NANOVIEW_LOG_LEVEL.
func EnvLayer() *loader.EnvLoader {
	env := loader.NewEnvLoader(loader.DefaultEnvPrefix)
	env.AddMapping(loader.DefaultEnvPrefix+"LINE_NUMBER_MODE", KeyLineNumberMode)
	return env
}

// DefaultSearchDirs returns the working directory followed by the user
// config directory for nanoview, when one is known.
func DefaultSearchDirs() []string {
	dirs := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, FileBaseName))
	}
	return dirs
}

// FindFile returns the first nanoview.{toml,yaml,yml,json} in dirs.
func FindFile(fsys loader.FileSystem, dirs []string) (string, bool) {
	for _, dir := range dirs {
		for _, ext := range loader.Extensions {
			path := filepath.Join(dir, FileBaseName+ext)
			if info, err := fsys.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
	}
	return "", false
}

// Load resolves settings from defaults, the settings file, the
// environment and opts.Overrides, in that order.
func Load(opts LoadOptions) (Settings, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = loader.DefaultFS()
	}
	settings := Default()

	path := opts.Path
	if path != "" {
		if _, err := fsys.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				err = ErrFileNotFound
			}
			return settings, &ConfigError{Path: path, Err: err}
		}
	} else {
		dirs := opts.SearchDirs
		if dirs == nil {
			dirs = DefaultSearchDirs()
		}
		path, _ = FindFile(fsys, dirs)
	}

	if path != "" {
		data, err := loader.NewFileLoaderWithFS(fsys, path).Load()
		if err != nil {
			return settings, &ConfigError{Path: path, Err: err}
		}
		if err := settings.applyLayer(data); err != nil {
			err.Path = path
			return settings, err
		}
		settings.Source = path
	}

	env := opts.Env
	if env == nil {
		env = EnvLayer()
	}
	data, err := env.Load()
	if err != nil {
		return settings, &ConfigError{Err: err}
	}
	if err := settings.applyLayer(data); err != nil {
		return settings, err
	}

	settings.ApplyOverrides(opts.Overrides)
	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// ApplyOverrides copies every set override into s.
func (s *Settings) ApplyOverrides(o Overrides) {
	if o.Theme != nil {
		s.Theme = *o.Theme
	}
	if o.LineNumbers != nil {
		s.LineNumbers = *o.LineNumbers
	}
	if o.LogLevel != nil {
		s.LogLevel = *o.LogLevel
	}
}

// applyLayer merges one configuration map into s and validates the result.
func (s *Settings) applyLayer(data map[string]any) *ConfigError {
	if len(data) == 0 {
		return nil
	}

	strs := []struct {
		key string
		dst *string
	}{
		{KeyTheme, &s.Theme},
		{KeyStatusFG, &s.StatusForeground},
		{KeyStatusBG, &s.StatusBackground},
		{KeyLineNumberMode, &s.LineNumberMode},
		{KeyLogLevel, &s.LogLevel},
	}
	for _, f := range strs {
		val, ok := loader.GetPath(data, f.key)
		if !ok {
			continue
		}
		str, ok := val.(string)
		if !ok {
			return typeError(f.key, "string", val)
		}
		*f.dst = str
	}

	if val, ok := loader.GetPath(data, KeyLineNumbers); ok {
		b, err := asBool(val)
		if err != nil {
			return &ConfigError{Key: KeyLineNumbers, Err: err}
		}
		s.LineNumbers = b
	}

	if val, ok := loader.GetPath(data, KeyTabWidth); ok {
		n, err := asInt(val)
		if err != nil {
			return &ConfigError{Key: KeyTabWidth, Err: err}
		}
		s.TabWidth = n
	}

	return s.validate()
}

// Validate reports the first setting that is out of range.
func (s Settings) Validate() error {
	if err := s.validate(); err != nil {
		return err
	}
	return nil
}

func (s Settings) validate() *ConfigError {
	if strings.TrimSpace(s.Theme) == "" {
		return invalid(KeyTheme, "must not be empty")
	}
	if s.TabWidth < 1 || s.TabWidth > MaxTabWidth {
		return invalid(KeyTabWidth, fmt.Sprintf("%d not in 1..%d", s.TabWidth, MaxTabWidth))
	}
	if !oneOf(s.LogLevel, logLevels) {
		return invalid(KeyLogLevel, fmt.Sprintf("%q not one of %s", s.LogLevel, strings.Join(logLevels, ", ")))
	}
	if !oneOf(s.LineNumberMode, lineNumberModes) {
		return invalid(KeyLineNumberMode, fmt.Sprintf("%q not one of %s", s.LineNumberMode, strings.Join(lineNumberModes, ", ")))
	}
	for key, hex := range map[string]string{KeyStatusFG: s.StatusForeground, KeyStatusBG: s.StatusBackground} {
		if hex == "" {
			continue
		}
		if _, err := core.ColorFromHex(hex); err != nil {
			return &ConfigError{Key: key, Err: fmt.Errorf("%w: %v", ErrValidationFailed, err)}
		}
	}
	return nil
}

// StatusColors returns the title bar colors, default when unset.
// Settings that passed Validate always parse.
func (s Settings) StatusColors() (fg, bg core.Color) {
	fg, bg = core.ColorDefault, core.ColorDefault
	if c, err := core.ColorFromHex(s.StatusForeground); err == nil && s.StatusForeground != "" {
		fg = c
	}
	if c, err := core.ColorFromHex(s.StatusBackground); err == nil && s.StatusBackground != "" {
		bg = c
	}
	return fg, bg
}

func oneOf(s string, allowed []string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

func invalid(key, msg string) *ConfigError {
	return &ConfigError{Key: key, Err: fmt.Errorf("%w: %s", ErrValidationFailed, msg)}
}

func typeError(key, want string, val any) *ConfigError {
	return &ConfigError{Key: key, Err: fmt.Errorf("%w: expected %s, got %T", ErrTypeMismatch, want, val)}
}

// asBool accepts booleans, 0/1 and the words true/false/yes/no/on/off.
func asBool(val any) (bool, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	case int:
		return intBool(int64(v))
	case int64:
		return intBool(v)
	case float64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: expected bool, got %T %v", ErrTypeMismatch, val, val)
}

func intBool(v int64) (bool, error) {
	if v == 0 || v == 1 {
		return v == 1, nil
	}
	return false, fmt.Errorf("%w: expected bool, got %d", ErrTypeMismatch, v)
}

// asInt accepts the integer types produced by the TOML, YAML and JSON
// decoders. Floats must be whole numbers.
func asInt(val any) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return int(v), nil
		}
	case float64:
		if v == math.Trunc(v) && math.Abs(v) <= math.MaxInt32 {
			return int(v), nil
		}
	}
	return 0, fmt.Errorf("%w: expected integer, got %T %v", ErrTypeMismatch, val, val)
}
