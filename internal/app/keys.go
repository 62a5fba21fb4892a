package app

import (
	"github.com/dshills/nanoview/internal/renderer/backend"
	"github.com/dshills/nanoview/internal/renderer/viewport"
)

// Action is what the session does in response to an input event.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionResize
	ActionInterrupt
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionQuit:
		return "quit"
	case ActionMoveUp:
		return "move-up"
	case ActionMoveDown:
		return "move-down"
	case ActionMoveLeft:
		return "move-left"
	case ActionMoveRight:
		return "move-right"
	case ActionResize:
		return "resize"
	case ActionInterrupt:
		return "interrupt"
	default:
		return "unknown"
	}
}

// Direction returns the cursor direction of a move action.
func (a Action) Direction() (viewport.Direction, bool) {
	switch a {
	case ActionMoveUp:
		return viewport.Up, true
	case ActionMoveDown:
		return viewport.Down, true
	case ActionMoveLeft:
		return viewport.Left, true
	case ActionMoveRight:
		return viewport.Right, true
	default:
		return 0, false
	}
}

// ActionFor maps a backend event to an action.
// q, Q, Ctrl-C and Ctrl-Q quit; arrows and the mouse wheel move the cursor.
func ActionFor(ev backend.Event) Action {
	switch ev.Type {
	case backend.EventKey:
		return keyAction(ev)
	case backend.EventMouse:
		switch ev.MouseButton {
		case backend.MouseWheelUp:
			return ActionMoveUp
		case backend.MouseWheelDown:
			return ActionMoveDown
		}
	case backend.EventResize:
		return ActionResize
	case backend.EventInterrupt:
		return ActionInterrupt
	}
	return ActionNone
}

func keyAction(ev backend.Event) Action {
	switch ev.Key {
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModCtrl) || ev.Mod.Has(backend.ModAlt) {
			return ActionNone
		}
		if ev.Rune == 'q' || ev.Rune == 'Q' {
			return ActionQuit
		}
	case backend.KeyCtrlC, backend.KeyCtrlQ:
		return ActionQuit
	case backend.KeyUp:
		return ActionMoveUp
	case backend.KeyDown:
		return ActionMoveDown
	case backend.KeyLeft:
		return ActionMoveLeft
	case backend.KeyRight:
		return ActionMoveRight
	}
	return ActionNone
}
