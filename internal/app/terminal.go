package app

import (
	"sync"

	"golang.org/x/term"

	"github.com/dshills/nanoview/internal/renderer/backend"
)

// CheckTerminal returns a *TerminalError wrapping ErrNotTerminal unless
// every file descriptor refers to a terminal.
func CheckTerminal(fds ...uintptr) error {
	for _, fd := range fds {
		if !term.IsTerminal(int(fd)) {
			return &TerminalError{Op: "check", Err: ErrNotTerminal}
		}
	}
	return nil
}

// terminalGuard restores the terminal exactly once, whichever path
// leaves the session.
type terminalGuard struct {
	once    sync.Once
	backend backend.Backend
	logger  *Logger
}

func newTerminalGuard(b backend.Backend, logger *Logger) *terminalGuard {
	return &terminalGuard{backend: b, logger: logger}
}

// release puts the cursor and mouse back, clears the screen and leaves
// the alternate screen. Shutdown runs even if an earlier step panics.
func (g *terminalGuard) release() {
	g.once.Do(func() {
		b := g.backend
		defer b.Shutdown()

		b.SetCursorStyle(backend.CursorDefault)
		b.DisableMouse()
		b.Clear()
		if err := b.Show(); err != nil {
			g.logger.Warn("flush on release: %v", err)
		}
	})
}
