// Package backend is the drawing surface and input source used by the
// renderer: a tcell terminal in production and an in-memory recorder in
// tests.
package backend

import (
	"errors"

	"github.com/dshills/nanoview/internal/renderer/core"
)

var (
	// ErrNotInitialized is returned when a frame is shown before Init or
	// after Shutdown.
	ErrNotInitialized = errors.New("backend not initialized")
	// ErrClosed is returned by PollEvent once input can no longer arrive.
	ErrClosed = errors.New("event source closed")
	// ErrQueueFull is returned by PostEvent when the event was not queued.
	ErrQueueFull = errors.New("event queue full")
)

// Backend is a cell grid plus an event queue.
//
// Init must succeed before anything is drawn, and Shutdown must undo it.
// Cells written outside Size are dropped. PollEvent blocks; PostEvent
// may be called from any goroutine, including while PollEvent waits.
type Backend interface {
	Init() error
	Shutdown()

	Size() (width, height int)
	SetCell(x, y int, cell core.Cell)
	Fill(rect core.ScreenRect, cell core.Cell)
	Clear()
	// Show makes everything drawn since the last Show visible.
	Show() error

	ShowCursor(x, y int)
	HideCursor()
	SetCursorStyle(style CursorStyle)
	SetTitle(title string)

	PollEvent() (Event, error)
	PostEvent(event Event) error

	EnableMouse()
	DisableMouse()
}

// CursorStyle is the shape of the terminal cursor.
type CursorStyle int

const (
	CursorDefault CursorStyle = iota
	CursorBlock
	CursorUnderline
	CursorBar
	CursorBlinkingBar
	CursorHidden
)

var cursorNames = [...]string{
	CursorDefault:     "default",
	CursorBlock:       "block",
	CursorUnderline:   "underline",
	CursorBar:         "bar",
	CursorBlinkingBar: "blinking-bar",
	CursorHidden:      "hidden",
}

func (c CursorStyle) String() string {
	if c < 0 || int(c) >= len(cursorNames) {
		return "unknown"
	}
	return cursorNames[c]
}

// EventType tells which fields of an Event are meaningful.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	// EventInterrupt is posted from outside the loop, usually when the
	// process receives a signal. Data carries the cause.
	EventInterrupt
)

// Event is one input event. Only the fields for its Type are set.
type Event struct {
	Type EventType

	Key  Key
	Rune rune
	Mod  ModMask

	MouseX, MouseY int
	MouseButton    MouseButton

	Width, Height int

	Data any
}

// KeyEvent returns an event for a non-printing key.
func KeyEvent(key Key, mod ModMask) Event {
	return Event{Type: EventKey, Key: key, Mod: mod}
}

// RuneEvent returns an event for a typed character.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

func ResizeEvent(width, height int) Event {
	return Event{Type: EventResize, Width: width, Height: height}
}

func InterruptEvent(data any) Event {
	return Event{Type: EventInterrupt, Data: data}
}

// Key identifies a key. KeyRune means the character is in Event.Rune.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlL
	KeyCtrlQ
)

// ModMask is a set of held modifier keys.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether any modifier in mod is held.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton is the button or wheel direction of a mouse event.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)
