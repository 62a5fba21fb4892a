package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/nanoview/internal/renderer/core"
)

// Terminal implements Backend on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
	active bool
}

// NewTerminal creates a terminal backend for the controlling terminal.
// The terminal is not touched until Init.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// newTerminalWithScreen wraps an existing screen, used with tcell's
// simulation screen in tests.
func newTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init enters the alternate screen with raw input.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.active = true
	return nil
}

// Shutdown restores the terminal. Calls after the first are ignored.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return
	}
	t.active = false
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, cell.Combining, tcellStyle(cell.Style))
}

func (t *Terminal) Fill(rect core.ScreenRect, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, height := t.screen.Size()
	top, left := max(rect.Top, 0), max(rect.Left, 0)
	bottom, right := min(rect.Bottom, height), min(rect.Right, width)
	style := tcellStyle(cell.Style)

	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			t.screen.SetContent(x, y, cell.Rune, cell.Combining, style)
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

// Show flushes the frame. It fails once the terminal has been shut down.
func (t *Terminal) Show() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return ErrNotInitialized
	}
	t.screen.Show()
	return nil
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

var cursorStyles = map[CursorStyle]tcell.CursorStyle{
	CursorDefault:     tcell.CursorStyleDefault,
	CursorBlock:       tcell.CursorStyleSteadyBlock,
	CursorUnderline:   tcell.CursorStyleSteadyUnderline,
	CursorBar:         tcell.CursorStyleSteadyBar,
	CursorBlinkingBar: tcell.CursorStyleBlinkingBar,
}

func (t *Terminal) SetCursorStyle(style CursorStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if style == CursorHidden {
		t.screen.HideCursor()
		return
	}
	t.screen.SetCursorStyle(cursorStyles[style])
}

func (t *Terminal) SetTitle(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetTitle(title)
}

// PollEvent blocks for the next event. The screen lock is not held while
// waiting so PostEvent from another goroutine is never blocked.
func (t *Terminal) PollEvent() (Event, error) {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{}, ErrClosed
	}
	return convertEvent(ev), nil
}

// PostEvent queues a key, resize or interrupt event. Other event types
// are dropped.
func (t *Terminal) PostEvent(event Event) error {
	var ev tcell.Event
	switch event.Type {
	case EventKey:
		ev = tcell.NewEventKey(toTcellKey(event.Key), event.Rune, toTcellMod(event.Mod))
	case EventInterrupt:
		ev = tcell.NewEventInterrupt(event.Data)
	case EventResize:
		ev = tcell.NewEventResize(event.Width, event.Height)
	default:
		return nil
	}
	if err := t.screen.PostEvent(ev); err != nil {
		return ErrQueueFull
	}
	return nil
}

func (t *Terminal) EnableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.EnableMouse()
}

func (t *Terminal) DisableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.DisableMouse()
}

// tcellStyle converts a core style. Default colors are left unset so the
// terminal's own colors show through.
func tcellStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault
	if !s.Foreground.IsDefault() {
		style = style.Foreground(tcellColor(s.Foreground))
	}
	if !s.Background.IsDefault() {
		style = style.Background(tcellColor(s.Background))
	}

	a := s.Attributes
	return style.
		Bold(a.Has(core.AttrBold)).
		Dim(a.Has(core.AttrDim)).
		Italic(a.Has(core.AttrItalic)).
		Underline(a.Has(core.AttrUnderline)).
		Reverse(a.Has(core.AttrReverse)).
		StrikeThrough(a.Has(core.AttrStrikethrough))
}

func tcellColor(c core.Color) tcell.Color {
	if c.Indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertEvent converts a tcell event. Unknown events become EventNone.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: convertKey(e.Key()), Rune: e.Rune(), Mod: convertMod(e.Modifiers())}
	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{Type: EventMouse, MouseX: x, MouseY: y, MouseButton: convertMouseButton(e.Buttons()), Mod: convertMod(e.Modifiers())}
	case *tcell.EventResize:
		w, h := e.Size()
		return ResizeEvent(w, h)
	case *tcell.EventInterrupt:
		return InterruptEvent(e.Data())
	default:
		return Event{Type: EventNone}
	}
}

// keyPairs maps backend keys to tcell keys. A backend key may appear more
// than once; the first pair is the one used when posting events.
var keyPairs = []struct {
	key   Key
	tcell tcell.Key
}{
	{KeyRune, tcell.KeyRune},
	{KeyEscape, tcell.KeyEscape},
	{KeyEnter, tcell.KeyEnter},
	{KeyTab, tcell.KeyTab},
	{KeyBackspace, tcell.KeyBackspace2},
	{KeyBackspace, tcell.KeyBackspace},
	{KeyHome, tcell.KeyHome},
	{KeyEnd, tcell.KeyEnd},
	{KeyPageUp, tcell.KeyPgUp},
	{KeyPageDown, tcell.KeyPgDn},
	{KeyUp, tcell.KeyUp},
	{KeyDown, tcell.KeyDown},
	{KeyLeft, tcell.KeyLeft},
	{KeyRight, tcell.KeyRight},
	{KeyCtrlC, tcell.KeyCtrlC},
	{KeyCtrlL, tcell.KeyCtrlL},
	{KeyCtrlQ, tcell.KeyCtrlQ},
}

var (
	fromTcellKey = make(map[tcell.Key]Key, len(keyPairs))
	toTcellKeys  = make(map[Key]tcell.Key, len(keyPairs))
)

func init() {
	for _, p := range keyPairs {
		fromTcellKey[p.tcell] = p.key
		if _, ok := toTcellKeys[p.key]; !ok {
			toTcellKeys[p.key] = p.tcell
		}
	}
}

// convertKey converts a tcell key; keys nanoview does not use become KeyNone.
func convertKey(k tcell.Key) Key {
	if key, ok := fromTcellKey[k]; ok {
		return key
	}
	return KeyNone
}

func toTcellKey(k Key) tcell.Key {
	if tk, ok := toTcellKeys[k]; ok {
		return tk
	}
	return tcell.KeyRune
}

var modPairs = []struct {
	mod   ModMask
	tcell tcell.ModMask
}{
	{ModShift, tcell.ModShift},
	{ModCtrl, tcell.ModCtrl},
	{ModAlt, tcell.ModAlt},
	{ModMeta, tcell.ModMeta},
}

func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	for _, p := range modPairs {
		if m&p.tcell != 0 {
			result |= p.mod
		}
	}
	return result
}

func toTcellMod(m ModMask) tcell.ModMask {
	var result tcell.ModMask
	for _, p := range modPairs {
		if m&p.mod != 0 {
			result |= p.tcell
		}
	}
	return result
}

// convertMouseButton reports the first pressed button, wheel included.
func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseMiddle
	case b&tcell.Button3 != 0:
		return MouseRight
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	default:
		return MouseNone
	}
}
