package renderer

import (
	"errors"
	"fmt"
)

// ErrPanic marks a RenderError caused by a panic inside the backend.
var ErrPanic = errors.New("panic during render")

// RenderError reports a frame that could not be drawn or flushed.
type RenderError struct {
	Op  string // "draw" or "show"
	Err error
}

// NewRenderError creates a new RenderError.
func NewRenderError(op string, err error) *RenderError {
	return &RenderError{Op: op, Err: err}
}

func (e *RenderError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return "render " + e.Op
	}
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// panicError converts a recovered panic value to an error wrapping ErrPanic.
func panicError(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanic, err)
	}
	return fmt.Errorf("%w: %v", ErrPanic, v)
}
