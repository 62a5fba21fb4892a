package backend

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/nanoview/internal/renderer/core"
)

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	term := newTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	sim.SetSize(20, 5)
	t.Cleanup(term.Shutdown)
	return term, sim
}

func TestTerminalSetCell(t *testing.T) {
	term, sim := newSimTerminal(t)

	style := core.NewStyle(core.ColorFromRGB(255, 0, 0)).Bold()
	term.SetCell(1, 2, core.ClusterCell("e\u0301", style))
	if err := term.Show(); err != nil {
		t.Fatalf("Show failed: %v", err)
	}

	mainc, combc, ts, _ := sim.GetContent(1, 2) //nolint:staticcheck // GetContent is the correct API
	if mainc != 'e' {
		t.Errorf("expected 'e', got %q", mainc)
	}
	if len(combc) != 1 || combc[0] != '\u0301' {
		t.Errorf("expected combining acute, got %v", combc)
	}
	fg, _, attrs := ts.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("expected red foreground, got %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("expected bold attribute")
	}
}

func TestTerminalShowAfterShutdown(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	term := newTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	term.Shutdown()

	if err := term.Show(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}

	// A second shutdown is a no-op.
	term.Shutdown()
}

func TestTerminalPostInterrupt(t *testing.T) {
	term, _ := newSimTerminal(t)

	if err := term.PostEvent(InterruptEvent("sigterm")); err != nil {
		t.Fatalf("PostEvent failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		ev, err := term.PollEvent()
		if err != nil {
			t.Fatalf("PollEvent failed: %v", err)
		}
		if ev.Type != EventInterrupt {
			continue
		}
		if ev.Data != "sigterm" {
			t.Errorf("expected sigterm payload, got %v", ev.Data)
		}
		return
	}
	t.Error("interrupt event was not delivered")
}

func TestTerminalPostKey(t *testing.T) {
	term, _ := newSimTerminal(t)

	if err := term.PostEvent(KeyEvent(KeyDown, ModNone)); err != nil {
		t.Fatalf("PostEvent failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		ev, err := term.PollEvent()
		if err != nil {
			t.Fatalf("PollEvent failed: %v", err)
		}
		if ev.Type != EventKey {
			continue
		}
		if ev.Key != KeyDown {
			t.Errorf("expected KeyDown, got %d", ev.Key)
		}
		return
	}
	t.Error("key event was not delivered")
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   tcell.Key
		want Key
	}{
		{tcell.KeyUp, KeyUp},
		{tcell.KeyDown, KeyDown},
		{tcell.KeyLeft, KeyLeft},
		{tcell.KeyRight, KeyRight},
		{tcell.KeyCtrlC, KeyCtrlC},
		{tcell.KeyCtrlQ, KeyCtrlQ},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyF1, KeyNone},
	}

	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestConvertStyle(t *testing.T) {
	s := core.DefaultStyle().Reverse().Italic()
	ts := tcellStyle(s)
	fg, bg, attrs := ts.Decompose()

	if fg != tcell.ColorDefault || bg != tcell.ColorDefault {
		t.Errorf("expected default colors, got %v/%v", fg, bg)
	}
	if attrs&tcell.AttrReverse == 0 {
		t.Error("expected reverse")
	}
	if attrs&tcell.AttrItalic == 0 {
		t.Error("expected italic")
	}

	indexed := tcellStyle(core.NewStyle(core.ColorFromIndex(3)))
	fg, _, _ = indexed.Decompose()
	if fg != tcell.PaletteColor(3) {
		t.Errorf("expected palette color 3, got %v", fg)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	keys := []Key{KeyEscape, KeyEnter, KeyTab, KeyBackspace, KeyHome, KeyEnd, KeyPageUp, KeyPageDown, KeyUp, KeyDown, KeyLeft, KeyRight, KeyCtrlC, KeyCtrlL, KeyCtrlQ}

	for _, k := range keys {
		if got := convertKey(toTcellKey(k)); got != k {
			t.Errorf("key %d: expected round trip, got %d", k, got)
		}
	}
	if toTcellKey(KeyNone) != tcell.KeyRune {
		t.Error("expected unknown keys to post as runes")
	}
}

func TestModRoundTrip(t *testing.T) {
	mods := []ModMask{ModNone, ModShift, ModCtrl, ModAlt, ModMeta, ModCtrl | ModShift, ModAlt | ModMeta}

	for _, m := range mods {
		if got := convertMod(toTcellMod(m)); got != m {
			t.Errorf("mod %d: expected round trip, got %d", m, got)
		}
	}
}
