// Package app runs a nanoview session: it owns the terminal, the document
// and the viewport, and drives the render and input loop.
package app

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LogLevel is the severity of a log record.
type LogLevel int

// Log levels, lowest first.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{
	LogLevelDebug: "DEBUG",
	LogLevelInfo:  "INFO",
	LogLevelWarn:  "WARN",
	LogLevelError: "ERROR",
}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel parses a level name in any case. "warning" is accepted
// for warn; anything unrecognized is info.
func ParseLogLevel(s string) LogLevel {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		return LogLevelWarn
	}
	if i := slices.Index(levelNames[:], name); i >= 0 {
		return LogLevel(i)
	}
	return LogLevelInfo
}

// LoggerConfig configures NewLogger.
type LoggerConfig struct {
	Level LogLevel
	// Output defaults to os.Stderr.
	Output io.Writer
	// Prefix, when set, precedes every message.
	Prefix string
}

// DefaultLoggerConfig logs info and above to stderr.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{Level: LogLevelInfo, Output: os.Stderr, Prefix: "nanoview"}
}

// Logger writes one line per record:
//
//	2006-01-02T15:04:05.000 [LEVEL] prefix: message {key=value, ...}
//
// Loggers derived with WithField share the parent's output.
type Logger struct {
	sink     *logSink
	level    LogLevel
	prefix   string
	fields   map[string]any
	disabled bool
}

type logSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLogger(cfg LoggerConfig) *Logger {
	w := cfg.Output
	if w == nil {
		w = os.Stderr
	}
	return &Logger{sink: &logSink{w: w}, level: cfg.Level, prefix: cfg.Prefix}
}

// NewSessionLogger returns a logger whose records carry a fresh session id.
func NewSessionLogger(cfg LoggerConfig) *Logger {
	return NewLogger(cfg).WithField("session", uuid.NewString())
}

func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a child logger carrying fields in addition to the
// parent's. The parent is unchanged.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	child := *l
	child.fields = make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(child.fields, l.fields)
	maps.Copy(child.fields, fields)
	return &child
}

func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// Field returns a value set with WithField.
func (l *Logger) Field(key string) (any, bool) {
	v, ok := l.fields[key]
	return v, ok
}

func (l *Logger) Level() LogLevel {
	return l.level
}

// SetOutput redirects l and every logger derived from the same root.
func (l *Logger) SetOutput(w io.Writer) {
	if l.sink == nil {
		return
	}
	l.sink.mu.Lock()
	l.sink.w = w
	l.sink.mu.Unlock()
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LogLevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LogLevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LogLevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.log(LogLevelError, msg, args) }

func (l *Logger) log(level LogLevel, msg string, args []any) {
	if l == nil || l.disabled || l.sink == nil || level < l.level {
		return
	}
	// Without args the message is literal, so a stray % survives.
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "%s [%s] ", time.Now().Format("2006-01-02T15:04:05.000"), level)
	if l.prefix != "" {
		b.WriteString(l.prefix + ": ")
	}
	b.WriteString(msg)
	if len(l.fields) > 0 {
		pairs := make([]string, 0, len(l.fields))
		for _, k := range slices.Sorted(maps.Keys(l.fields)) {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, l.fields[k]))
		}
		b.WriteString(" {" + strings.Join(pairs, ", ") + "}")
	}
	b.WriteByte('\n')

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = b.WriteTo(l.sink.w)
}

// NullLogger discards everything.
var NullLogger = &Logger{disabled: true}

// DeferredWriter holds log output in memory until Flush. The terminal
// owns stderr while a session is active, so records are replayed once it
// has been restored.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Write(p)
}

// Len returns the number of buffered bytes.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len()
}

// Flush writes the buffered records to w and empties the buffer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.buf.WriteTo(w)
	return err
}
