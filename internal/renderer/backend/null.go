package backend

import (
	"slices"
	"strings"
	"sync"

	"github.com/dshills/nanoview/internal/renderer/core"
)

// NullBackend keeps the screen in memory. It logs lifecycle calls in
// order ("init", "cursor-style:bar", "mouse:off", "clear", "shutdown")
// and can be told to fail, so session tests can check acquire and
// release without a terminal.
type NullBackend struct {
	// InitErr is returned by Init.
	InitErr error
	// ShowErr is returned by Show.
	ShowErr error
	// PanicOnSetCell, when non-nil, is the value SetCell panics with.
	PanicOnSetCell any

	mu sync.Mutex

	width, height int
	grid          []core.Cell

	cursorX, cursorY int
	cursorVisible    bool
	cursorStyle      CursorStyle
	mouse            bool
	title            string
	initialized      bool

	calls                   []string
	inits, shutdowns, shows int

	events chan Event
}

const nullQueueSize = 100

// NewNullBackend returns a blank width x height screen.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{events: make(chan Event, nullQueueSize)}
	b.reset(width, height)
	return b
}

func (b *NullBackend) reset(width, height int) {
	b.width, b.height = width, height
	b.grid = make([]core.Cell, width*height)
	b.blank()
}

func (b *NullBackend) blank() {
	for i := range b.grid {
		b.grid[i] = core.EmptyCell()
	}
}

// index returns the grid offset of (x, y), or -1 when off screen.
func (b *NullBackend) index(x, y int) int {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return -1
	}
	return y*b.width + x
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, "init")
	b.inits++
	if b.InitErr != nil {
		return b.InitErr
	}
	b.initialized = true
	b.blank()
	return nil
}

func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, "shutdown")
	b.shutdowns++
	b.initialized = false
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.PanicOnSetCell != nil {
		panic(b.PanicOnSetCell)
	}
	if i := b.index(x, y); i >= 0 {
		b.grid[i] = cell
	}
}

func (b *NullBackend) Fill(rect core.ScreenRect, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for y := rect.Top; y < rect.Bottom; y++ {
		for x := rect.Left; x < rect.Right; x++ {
			if i := b.index(x, y); i >= 0 {
				b.grid[i] = cell
			}
		}
	}
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, "clear")
	b.blank()
}

func (b *NullBackend) Show() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.shows++
	return b.ShowErr
}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX, b.cursorY, b.cursorVisible = x, y, true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

func (b *NullBackend) SetCursorStyle(style CursorStyle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, "cursor-style:"+style.String())
	b.cursorStyle = style
}

func (b *NullBackend) SetTitle(title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.title = title
}

// PollEvent returns the next queued event, or ErrClosed when none is
// queued, so a scripted session always ends.
func (b *NullBackend) PollEvent() (Event, error) {
	select {
	case ev := <-b.events:
		return ev, nil
	default:
		return Event{}, ErrClosed
	}
}

func (b *NullBackend) PostEvent(event Event) error {
	select {
	case b.events <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

func (b *NullBackend) EnableMouse()  { b.setMouse(true) }
func (b *NullBackend) DisableMouse() { b.setMouse(false) }

func (b *NullBackend) setMouse(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if on {
		b.calls = append(b.calls, "mouse:on")
	} else {
		b.calls = append(b.calls, "mouse:off")
	}
	b.mouse = on
}

// Resize changes the screen size and queues the resize event a terminal
// would deliver. The screen is blanked.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.reset(width, height)
	b.mu.Unlock()

	_ = b.PostEvent(ResizeEvent(width, height))
}

// GetCell returns the cell at (x, y); off-screen positions read as blank.
func (b *NullBackend) GetCell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.index(x, y); i >= 0 {
		return b.grid[i]
	}
	return core.EmptyCell()
}

// RowText returns row y as text without trailing blanks. A wide cluster
// is written once and its continuation cells are skipped.
func (b *NullBackend) RowText(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if y < 0 || y >= b.height {
		return ""
	}
	row := b.grid[y*b.width : (y+1)*b.width]
	var sb strings.Builder
	for x := 0; x < len(row); x++ {
		if row[x].Rune == 0 {
			continue
		}
		sb.WriteString(row[x].Text())
		x += max(row[x].Width-1, 0)
	}
	return strings.TrimRight(sb.String(), " ")
}

func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY, b.cursorVisible
}

func (b *NullBackend) CursorStyleValue() CursorStyle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorStyle
}

func (b *NullBackend) Title() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.title
}

func (b *NullBackend) MouseEnabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mouse
}

// Initialized reports whether Init succeeded and Shutdown has not run.
func (b *NullBackend) Initialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

func (b *NullBackend) InitCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inits
}

func (b *NullBackend) ShutdownCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdowns
}

func (b *NullBackend) ShowCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// Calls returns the lifecycle calls made so far, oldest first.
func (b *NullBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.calls)
}
