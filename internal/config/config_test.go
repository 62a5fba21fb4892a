package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/nanoview/internal/config/loader"
	"github.com/dshills/nanoview/internal/renderer/core"
)

type memFS struct {
	files map[string]string
}

func newMemFS(files map[string]string) *memFS {
	return &memFS{files: files}
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (m *memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return fileInfo(path), nil
	}
	return nil, fs.ErrNotExist
}

type fileInfo string

func (f fileInfo) Name() string       { return string(f) }
func (f fileInfo) Size() int64        { return 0 }
func (f fileInfo) Mode() fs.FileMode  { return 0644 }
func (f fileInfo) ModTime() time.Time { return time.Time{} }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() any           { return nil }

// noEnv returns an environment loader that sees only env.
func noEnv(env ...string) loader.Loader {
	return EnvLayer().WithEnviron(env)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestDefault(t *testing.T) {
	s := Default()

	if s.Theme != "monokai" {
		t.Errorf("expected theme monokai, got %q", s.Theme)
	}
	if s.LineNumbers {
		t.Error("line numbers should be off by default")
	}
	if s.TabWidth != 4 {
		t.Errorf("expected tab width 4, got %d", s.TabWidth)
	}
	if s.LogLevel != "info" {
		t.Errorf("expected log level info, got %q", s.LogLevel)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadNoFileGivesDefaults(t *testing.T) {
	s, err := Load(LoadOptions{
		FS:         newMemFS(nil),
		SearchDirs: []string{"/work", "/home/u/.config/nanoview"},
		Env:        noEnv(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Default()
	if s != want {
		t.Errorf("expected defaults %+v, got %+v", want, s)
	}
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "nanoview.toml", "[appearance]\ntheme = \"dracula\"\n[editor]\nline_numbers = true\ntab_width = 8\n"},
		{"yaml", "nanoview.yaml", "appearance:\n  theme: dracula\neditor:\n  line_numbers: true\n  tab_width: 8\n"},
		{"yml", "nanoview.yml", "appearance: {theme: dracula}\neditor: {line_numbers: true, tab_width: 8}\n"},
		{"json", "nanoview.json", `{"appearance":{"theme":"dracula"},"editor":{"line_numbers":true,"tab_width":8}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join("/work", tt.file)
			s, err := Load(LoadOptions{
				FS:         newMemFS(map[string]string{path: tt.content}),
				SearchDirs: []string{"/work"},
				Env:        noEnv(),
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Theme != "dracula" || !s.LineNumbers || s.TabWidth != 8 {
				t.Errorf("expected dracula/true/8, got %q/%v/%d", s.Theme, s.LineNumbers, s.TabWidth)
			}
			if s.Source != path {
				t.Errorf("expected source %q, got %q", path, s.Source)
			}
		})
	}
}

func TestLoadSearchOrder(t *testing.T) {
	files := map[string]string{
		"/work/nanoview.json":                  `{"appearance":{"theme":"work-json"}}`,
		"/work/nanoview.yaml":                  "appearance:\n  theme: work-yaml\n",
		"/home/.config/nanoview/nanoview.toml": "[appearance]\ntheme = \"user\"\n",
	}

	s, err := Load(LoadOptions{
		FS:         newMemFS(files),
		SearchDirs: []string{"/work", "/home/.config/nanoview"},
		Env:        noEnv(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Theme != "work-yaml" {
		t.Errorf("expected yaml in the working directory to win, got %q", s.Theme)
	}

	delete(files, "/work/nanoview.json")
	delete(files, "/work/nanoview.yaml")
	s, err = Load(LoadOptions{
		FS:         newMemFS(files),
		SearchDirs: []string{"/work", "/home/.config/nanoview"},
		Env:        noEnv(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Theme != "user" {
		t.Errorf("expected user config dir fallback, got %q", s.Theme)
	}
}

func TestLoadPrecedence(t *testing.T) {
	files := map[string]string{
		"/c.toml": "[appearance]\ntheme = \"file\"\n[editor]\ntab_width = 2\nline_numbers = true\n[logging]\nlevel = \"warn\"\n",
	}

	tests := []struct {
		name      string
		env       []string
		overrides Overrides
		wantTheme string
		wantTab   int
		wantLines bool
		wantLevel string
	}{
		{
			name:      "file only",
			wantTheme: "file", wantTab: 2, wantLines: true, wantLevel: "warn",
		},
		{
			name:      "env beats file",
			env:       []string{"NANOVIEW_THEME=env", "NANOVIEW_TAB_WIDTH=6"},
			wantTheme: "env", wantTab: 6, wantLines: true, wantLevel: "warn",
		},
		{
			name:      "flags beat env",
			env:       []string{"NANOVIEW_THEME=env", "NANOVIEW_LOG_LEVEL=error"},
			overrides: Overrides{Theme: strPtr("flag"), LineNumbers: boolPtr(false)},
			wantTheme: "flag", wantTab: 2, wantLines: false, wantLevel: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(LoadOptions{
				Path:      "/c.toml",
				FS:        newMemFS(files),
				Env:       noEnv(tt.env...),
				Overrides: tt.overrides,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Theme != tt.wantTheme {
				t.Errorf("expected theme %q, got %q", tt.wantTheme, s.Theme)
			}
			if s.TabWidth != tt.wantTab {
				t.Errorf("expected tab width %d, got %d", tt.wantTab, s.TabWidth)
			}
			if s.LineNumbers != tt.wantLines {
				t.Errorf("expected line numbers %v, got %v", tt.wantLines, s.LineNumbers)
			}
			if s.LogLevel != tt.wantLevel {
				t.Errorf("expected log level %q, got %q", tt.wantLevel, s.LogLevel)
			}
		})
	}
}

func TestLoadEnvNames(t *testing.T) {
	s, err := Load(LoadOptions{
		SearchDirs: []string{"/empty"},
		FS:         newMemFS(nil),
		Env: noEnv(
			"NANOVIEW_LINE_NUMBER_MODE=hybrid",
			"NANOVIEW_APPEARANCE_STATUS_BG=#102030",
			"OTHER_THEME=ignored",
		),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.LineNumberMode != "hybrid" {
		t.Errorf("expected hybrid mode, got %q", s.LineNumberMode)
	}
	if s.StatusBackground != "#102030" {
		t.Errorf("expected status background #102030, got %q", s.StatusBackground)
	}
	if s.Theme != DefaultTheme {
		t.Errorf("expected default theme, got %q", s.Theme)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(LoadOptions{Path: "/nope.toml", FS: newMemFS(nil), Env: noEnv()})

	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
	if cerr.Path != "/nope.toml" {
		t.Errorf("expected path /nope.toml, got %q", cerr.Path)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	files := map[string]string{"/work/nanoview.toml": "[appearance\ntheme = "}

	_, err := Load(LoadOptions{FS: newMemFS(files), SearchDirs: []string{"/work"}, Env: noEnv()})

	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	var perr *loader.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("expected wrapped *loader.ParseError, got %v", err)
	}
	if cerr.Path != "/work/nanoview.toml" {
		t.Errorf("expected path of the bad file, got %q", cerr.Path)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     []string
		wantKey string
		wantErr error
	}{
		{"tab width string", "[editor]\ntab_width = \"wide\"\n", nil, KeyTabWidth, ErrTypeMismatch},
		{"tab width zero", "[editor]\ntab_width = 0\n", nil, KeyTabWidth, ErrValidationFailed},
		{"tab width huge", "[editor]\ntab_width = 99\n", nil, KeyTabWidth, ErrValidationFailed},
		{"line numbers string", "[editor]\nline_numbers = \"maybe\"\n", nil, KeyLineNumbers, ErrTypeMismatch},
		{"theme number", "[appearance]\ntheme = 3\n", nil, KeyTheme, ErrTypeMismatch},
		{"theme empty", "[appearance]\ntheme = \"\"\n", nil, KeyTheme, ErrValidationFailed},
		{"bad level", "[logging]\nlevel = \"loud\"\n", nil, KeyLogLevel, ErrValidationFailed},
		{"bad mode", "[editor]\nline_number_mode = \"sideways\"\n", nil, KeyLineNumberMode, ErrValidationFailed},
		{"bad color", "[appearance]\nstatus_fg = \"#zzzzzz\"\n", nil, KeyStatusFG, ErrValidationFailed},
		{"bad env tab width", "", []string{"NANOVIEW_TAB_WIDTH=-1"}, KeyTabWidth, ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(LoadOptions{
				FS:         newMemFS(map[string]string{"/w/nanoview.toml": tt.content}),
				SearchDirs: []string{"/w"},
				Env:        noEnv(tt.env...),
			})

			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigError, got %T (%v)", err, err)
			}
			if cerr.Key != tt.wantKey {
				t.Errorf("expected key %q, got %q", tt.wantKey, cerr.Key)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLineNumbersCoercion(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"NANOVIEW_LINE_NUMBERS=1", true},
		{"NANOVIEW_LINE_NUMBERS=0", false},
		{"NANOVIEW_LINE_NUMBERS=true", true},
		{"NANOVIEW_LINE_NUMBERS=off", false},
	}

	for _, tt := range tests {
		s, err := Load(LoadOptions{FS: newMemFS(nil), SearchDirs: []string{}, Env: noEnv(tt.env)})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.env, err)
		}
		if s.LineNumbers != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.env, tt.want, s.LineNumbers)
		}
	}
}

func TestStatusColors(t *testing.T) {
	s := Default()
	fg, bg := s.StatusColors()
	if !fg.IsDefault() || !bg.IsDefault() {
		t.Errorf("expected default colors, got %s and %s", fg, bg)
	}

	s.StatusForeground = "#000000"
	s.StatusBackground = "ffffff"
	fg, bg = s.StatusColors()
	if !fg.Equals(core.ColorFromRGB(0, 0, 0)) {
		t.Errorf("expected black, got %s", fg)
	}
	if !bg.Equals(core.ColorFromRGB(255, 255, 255)) {
		t.Errorf("expected white, got %s", bg)
	}
}

func TestConfigErrorMessage(t *testing.T) {
	tests := []struct {
		err  *ConfigError
		want string
	}{
		{&ConfigError{Path: "a.toml", Key: KeyTabWidth, Err: ErrTypeMismatch}, "config a.toml: editor.tab_width: type mismatch"},
		{&ConfigError{Key: KeyTheme, Err: ErrValidationFailed}, "config: appearance.theme: validation failed"},
		{&ConfigError{Path: "a.toml", Err: ErrFileNotFound}, "config a.toml: config file not found"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}

	var nilErr *ConfigError
	if nilErr.Error() != "" || nilErr.Unwrap() != nil {
		t.Error("nil ConfigError should be empty")
	}
}

func TestFindFile(t *testing.T) {
	fsys := newMemFS(map[string]string{
		"/b/nanoview.yml":  "",
		"/b/nanoview.json": "",
	})

	path, ok := FindFile(fsys, []string{"/a", "/b"})
	if !ok || path != "/b/nanoview.yml" {
		t.Errorf("expected /b/nanoview.yml, got %q (found=%v)", path, ok)
	}

	if _, ok := FindFile(fsys, []string{"/a"}); ok {
		t.Error("expected no file in /a")
	}
}
