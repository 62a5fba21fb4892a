package app

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuit ends the event loop normally.
	ErrQuit = errors.New("quit requested")
	// ErrInterrupted wraps the signal that ended a session.
	ErrInterrupted = errors.New("interrupted")
	// ErrNotTerminal means stdin or stdout is redirected.
	ErrNotTerminal = errors.New("not a terminal")
	// ErrInvalidState means a session method was called out of order.
	ErrInvalidState = errors.New("invalid session state")
)

// TerminalError is a failure to take over or set up the terminal. Op is
// the step that failed: "check", "open", "init", "acquire" or "setup".
type TerminalError struct {
	Op  string
	Err error
}

func (e *TerminalError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err == nil:
		return "terminal " + e.Op
	default:
		return "terminal " + e.Op + ": " + e.Err.Error()
	}
}

func (e *TerminalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// OperationError is a failure of one step of the running session, such
// as drawing a frame or reading input. It prints as
// "op target (context): err", leaving out empty parts.
type OperationError struct {
	Op      string
	Target  string
	Context string
	Err     error
}

func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// WithContext sets Context and returns e. A nil e stays nil.
func (e *OperationError) WithContext(ctx string) *OperationError {
	if e != nil {
		e.Context = ctx
	}
	return e
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Target != "" {
		b.WriteString(" " + e.Target)
	}
	if e.Context != "" {
		b.WriteString(" (" + e.Context + ")")
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RecoveredPanicError is a panic caught by the session loop. Error
// includes the stack and belongs in the log; Summary is for users.
type RecoveredPanicError struct {
	Value any
	Stack string
}

func NewRecoveredPanicError(value any, stack string) *RecoveredPanicError {
	return &RecoveredPanicError{Value: value, Stack: stack}
}

func (e *RecoveredPanicError) Error() string {
	if e == nil || e.Stack == "" {
		return e.Summary()
	}
	return e.Summary() + "\n" + e.Stack
}

// Summary returns the panic value without the stack.
func (e *RecoveredPanicError) Summary() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("panic: %v", e.Value)
}
