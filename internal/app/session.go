package app

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/dshills/nanoview/internal/document"
	"github.com/dshills/nanoview/internal/renderer"
	"github.com/dshills/nanoview/internal/renderer/backend"
	"github.com/dshills/nanoview/internal/renderer/highlight"
	"github.com/dshills/nanoview/internal/renderer/viewport"
)

// State is the lifecycle state of a session.
type State int32

const (
	// StateUninitialized is the state before the terminal is acquired.
	StateUninitialized State = iota
	// StateActive is the render and input loop.
	StateActive
	// StateTerminating is entered on quit or error, before release.
	StateTerminating
	// StateTerminated means the terminal has been restored.
	StateTerminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateTerminating:
		return "terminating"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Options configures a session.
type Options struct {
	// Renderer options, including theme and line numbers.
	Renderer renderer.Options

	// Highlighter colors lines. Nil means plain text.
	Highlighter highlight.Highlighter

	// Logger defaults to NullLogger.
	Logger *Logger
}

// Session owns the terminal, the document and the viewport for one run
// of the viewer.
//
// The zero value is not usable; create sessions with NewSession. A
// session runs once: after Run returns it is Terminated.
type Session struct {
	backend  backend.Backend
	doc      *document.Document
	viewport *viewport.Viewport
	renderer *renderer.Renderer
	logger   *Logger
	metrics  *Metrics

	guard *terminalGuard
	state atomic.Int32
}

// NewSession creates a session that will show doc on b.
func NewSession(b backend.Backend, doc *document.Document, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}

	r := renderer.New(b, opts.Highlighter, opts.Renderer)
	r.SetLogger(logger.WithComponent("renderer"))

	return &Session{
		backend:  b,
		doc:      doc,
		viewport: viewport.New(0, 0),
		renderer: r,
		logger:   logger.WithComponent("session"),
		metrics:  NewMetrics(),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) setState(st State) {
	prev := State(s.state.Swap(int32(st)))
	if prev != st {
		s.logger.Debug("state %s -> %s", prev, st)
	}
}

// Viewport returns the session viewport.
func (s *Session) Viewport() *viewport.Viewport {
	return s.viewport
}

// Renderer returns the session renderer.
func (s *Session) Renderer() *renderer.Renderer {
	return s.renderer
}

// Metrics returns the session metrics.
func (s *Session) Metrics() *Metrics {
	return s.metrics
}

// Acquire takes over the terminal: alternate screen and raw mode, window
// title, blinking bar cursor and mouse capture. The viewport is sized from
// the terminal. Failure returns a *TerminalError and leaves the session
// Uninitialized with the terminal restored.
func (s *Session) Acquire() (err error) {
	if st := s.State(); st != StateUninitialized {
		return &TerminalError{Op: "acquire", Err: fmt.Errorf("%w: %s", ErrInvalidState, st)}
	}

	if err := s.backend.Init(); err != nil {
		return &TerminalError{Op: "init", Err: err}
	}
	s.guard = newTerminalGuard(s.backend, s.logger)

	defer func() {
		if p := recover(); p != nil {
			s.guard.release()
			err = &TerminalError{Op: "setup", Err: NewRecoveredPanicError(p, "")}
		}
	}()

	s.backend.SetTitle(s.renderer.Title(s.doc))
	s.backend.SetCursorStyle(backend.CursorBlinkingBar)
	s.backend.EnableMouse()

	width, height := s.backend.Size()
	s.viewport.Resize(width, height)

	s.setState(StateActive)
	s.logger.Info("terminal acquired (%dx%d), viewing %q", width, height, s.doc.Name())
	return nil
}

// Release restores the terminal. It is safe to call more than once and
// on any state; only the first call after Acquire has an effect.
func (s *Session) Release() {
	if s.guard == nil {
		return
	}
	if s.State() == StateActive {
		s.setState(StateTerminating)
	}
	s.guard.release()
	s.setState(StateTerminated)
}

// Run acquires the terminal if needed, runs the render and input loop
// until the user quits or an error occurs, and restores the terminal on
// every exit path, including panics.
//
// A normal quit returns nil. A signal returns ErrInterrupted. A failed
// frame or input read returns an *OperationError, and a panic returns a
// *RecoveredPanicError.
func (s *Session) Run() (err error) {
	if s.State() == StateUninitialized {
		if err := s.Acquire(); err != nil {
			return err
		}
	}
	if st := s.State(); st != StateActive {
		return fmt.Errorf("run: %w: %s", ErrInvalidState, st)
	}

	defer func() {
		if p := recover(); p != nil {
			perr := NewRecoveredPanicError(p, string(debug.Stack()))
			s.logger.Error("%s", perr.Summary())
			err = perr
		}
		s.Release()
		s.logger.Debug("session stats: %s", s.metrics.Snapshot())
	}()

	for {
		if err := s.renderFrame(); err != nil {
			s.logger.Error("render failed: %v", err)
			s.setState(StateTerminating)
			return NewOperationError("render", s.doc.Name(), err)
		}

		ev, err := s.backend.PollEvent()
		if err != nil {
			s.logger.Error("reading input failed: %v", err)
			s.setState(StateTerminating)
			return NewOperationError("poll", s.doc.Name(), err)
		}

		if err := s.handleEvent(ev); err != nil {
			s.setState(StateTerminating)
			if errors.Is(err, ErrQuit) {
				s.logger.Info("quit")
				return nil
			}
			s.logger.Warn("stopping: %v", err)
			return err
		}
	}
}

func (s *Session) renderFrame() error {
	start := time.Now()
	if err := s.renderer.Render(s.doc, s.viewport); err != nil {
		s.metrics.RecordFailedFrame()
		return err
	}
	s.metrics.RecordFrame(time.Since(start))
	return nil
}

// handleEvent applies one input event. It returns ErrQuit or
// ErrInterrupted when the loop should end.
func (s *Session) handleEvent(ev backend.Event) error {
	action := ActionFor(ev)
	s.metrics.RecordEvent(action == ActionNone)

	switch action {
	case ActionQuit:
		return ErrQuit
	case ActionInterrupt:
		if ev.Data != nil {
			return fmt.Errorf("%w: %v", ErrInterrupted, ev.Data)
		}
		return ErrInterrupted
	case ActionResize:
		s.viewport.Resize(ev.Width, ev.Height)
		s.logger.Debug("resized to %dx%d", ev.Width, ev.Height)
	default:
		if dir, ok := action.Direction(); ok {
			s.viewport.MoveCursor(dir, s.doc)
		}
	}
	return nil
}
