package app

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"Info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"WARNING", LogLevelWarn},
		{" error ", LogLevelError},
		{"unknown", LogLevelInfo}, // Default
		{"", LogLevelInfo},        // Default
	}

	for _, tt := range tests {
		result := ParseLogLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "nanoview"})

	logger.Info("opened %s", "main.go")

	line := buf.String()
	pattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3} \[INFO\] nanoview: opened main.go\n$`)
	if !pattern.MatchString(line) {
		t.Errorf("unexpected log line %q", line)
	}
}

func TestLogger_NoArgsKeepsPercent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Output: &buf})

	logger.Info("100% done")

	if !strings.Contains(buf.String(), "[INFO] 100% done") {
		t.Errorf("expected message without prefix, got %q", buf.String())
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	out := buf.String()
	if strings.Contains(out, "[DEBUG]") || strings.Contains(out, "[INFO]") {
		t.Errorf("expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARN] warn") || !strings.Contains(out, "[ERROR] error") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
	if logger.Level() != LogLevelWarn {
		t.Errorf("expected level WARN, got %s", logger.Level())
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggerConfig{Output: &buf, Prefix: "nv"})
	logger := base.WithComponent("renderer").WithFields(map[string]any{"frame": 3})

	logger.Info("drawn")

	if !strings.HasSuffix(buf.String(), "nv: drawn {component=renderer, frame=3}\n") {
		t.Errorf("expected sorted fields, got %q", buf.String())
	}

	buf.Reset()
	base.Info("plain")
	if strings.Contains(buf.String(), "{") {
		t.Errorf("parent logger should not carry child fields, got %q", buf.String())
	}
}

func TestLogger_SetOutputShared(t *testing.T) {
	var first, second bytes.Buffer
	parent := NewLogger(LoggerConfig{Output: &first})
	child := parent.WithComponent("session")

	parent.SetOutput(&second)
	child.Info("moved")

	if first.Len() != 0 {
		t.Errorf("expected nothing in the old output, got %q", first.String())
	}
	if !strings.Contains(second.String(), "moved") {
		t.Errorf("expected child to follow the new output, got %q", second.String())
	}
}

func TestNewSessionLogger(t *testing.T) {
	var buf bytes.Buffer
	a := NewSessionLogger(LoggerConfig{Output: &buf})
	b := NewSessionLogger(LoggerConfig{Output: &buf})

	idA, ok := a.Field("session")
	if !ok {
		t.Fatal("expected a session field")
	}
	idB, _ := b.Field("session")
	if idA == idB {
		t.Errorf("expected distinct session IDs, got %v twice", idA)
	}

	a.Info("hello")
	pattern := regexp.MustCompile(`\{session=[0-9a-f-]{36}\}\n$`)
	if !pattern.MatchString(buf.String()) {
		t.Errorf("expected a uuid session field, got %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic, with or without derived fields.
	NullLogger.Error("dropped %d", 1)
	NullLogger.WithComponent("x").Debug("dropped")
	NullLogger.SetOutput(&bytes.Buffer{})

	var nilLogger *Logger
	nilLogger.Info("dropped")
}

func TestDeferredWriter(t *testing.T) {
	var deferred DeferredWriter
	logger := NewLogger(LoggerConfig{Output: &deferred})

	logger.Info("one")
	logger.Error("two")

	if deferred.Len() == 0 {
		t.Fatal("expected buffered output")
	}

	var out bytes.Buffer
	if err := deferred.Flush(&out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out.String())
	}
	if !strings.HasSuffix(lines[0], "one") || !strings.HasSuffix(lines[1], "two") {
		t.Errorf("expected records in order, got %q", lines)
	}
	if deferred.Len() != 0 {
		t.Errorf("expected empty buffer after flush, got %d bytes", deferred.Len())
	}
}
