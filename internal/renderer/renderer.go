package renderer

import (
	"errors"
	"sync"

	"github.com/dshills/nanoview/internal/document"
	"github.com/dshills/nanoview/internal/renderer/backend"
	"github.com/dshills/nanoview/internal/renderer/core"
	"github.com/dshills/nanoview/internal/renderer/gutter"
	"github.com/dshills/nanoview/internal/renderer/highlight"
	"github.com/dshills/nanoview/internal/renderer/layout"
	"github.com/dshills/nanoview/internal/renderer/statusline"
	"github.com/dshills/nanoview/internal/renderer/viewport"
)

// EmptyRowMarker is drawn in place of rows past the end of the document.
const EmptyRowMarker = "~"

// Content provides read access to the document being displayed.
type Content interface {
	// Name returns the display name ("" when unnamed).
	Name() string

	// RowCount returns the number of rows.
	RowCount() int

	// Row returns row i and whether it exists.
	Row(i int) (document.Line, bool)

	// Language returns the language tag passed to the highlighter.
	Language() string

	// LanguageName returns a human readable language name.
	LanguageName() string
}

// Logger receives diagnostics from the renderer.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Options configures the renderer.
type Options struct {
	// Title bar
	ProgramName string
	Version     string

	// Highlighting
	Theme string

	// Display
	ShowLineNumbers bool
	LineNumberMode  gutter.LineNumberMode
	TabWidth        int

	// Title bar colors; default colors mean reverse video
	StatusForeground core.Color
	StatusBackground core.Color
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		ProgramName:      "nanoview",
		Version:          "dev",
		Theme:            "monokai",
		ShowLineNumbers:  false,
		LineNumberMode:   gutter.LineNumberAbsolute,
		TabWidth:         layout.DefaultTabWidth,
		StatusForeground: core.ColorDefault,
		StatusBackground: core.ColorDefault,
	}
}

// Renderer is the main rendering facade.
// It draws complete frames to a backend.
type Renderer struct {
	mu sync.Mutex

	opts        Options
	backend     backend.Backend
	highlighter highlight.Highlighter
	logger      Logger

	// Components
	layout *layout.Engine
	gutter *gutter.Gutter
	status *statusline.StatusLine

	// Highlight failures already logged, by message
	reported map[string]struct{}

	frameCount uint64
}

// New creates a renderer drawing to b. A nil highlighter draws plain text.
func New(b backend.Backend, hl highlight.Highlighter, opts Options) *Renderer {
	if hl == nil {
		hl = highlight.Func(func(text, _, _ string) ([]highlight.Span, error) {
			return highlight.Plain(text), nil
		})
	}

	status := statusline.New(opts.ProgramName, opts.Version)
	status.SetBarStyle(opts.StatusForeground, opts.StatusBackground)

	return &Renderer{
		opts:        opts,
		backend:     b,
		highlighter: hl,
		layout:      layout.NewEngine(opts.TabWidth),
		gutter: gutter.New(gutter.Config{
			ShowLineNumbers:    opts.ShowLineNumbers,
			Mode:               opts.LineNumberMode,
			MinLineNumberWidth: gutter.DefaultConfig().MinLineNumberWidth,
		}),
		status:   status,
		reported: make(map[string]struct{}),
	}
}

// SetLogger sets the logger for highlight diagnostics.
func (r *Renderer) SetLogger(l Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = l
}

// Title returns the window title for doc.
func (r *Renderer) Title(doc Content) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.SetFilename(doc.Name())
	return r.status.Title()
}

// FrameCount returns the number of frames flushed.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// Render draws one frame of doc through vp and flushes it.
//
// The viewport's reserved columns are set to the gutter width and its
// offset is corrected to reveal the cursor before drawing. A failed flush
// or a panic raised by the backend ends the frame early with a
// *RenderError.
func (r *Renderer) Render(doc Content, vp *viewport.Viewport) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = NewRenderError("draw", panicError(p))
		}
	}()

	r.gutter.SetLineCount(doc.RowCount())
	vp.SetReservedColumns(r.gutter.Width())
	vp.ScrollToReveal()
	r.revealCursorCells(doc, vp)

	termWidth, termHeight := vp.TerminalSize()
	textLeft := min(r.gutter.Width(), termWidth)
	textWidth := vp.Width()
	height := vp.Height()
	offset := vp.Offset()
	cursor := vp.Cursor()
	_, cursorRow := vp.CursorScreenPos()

	b := r.backend
	b.HideCursor()

	// Title bar
	r.status.Resize(termWidth)
	r.status.SetFilename(doc.Name())
	if termHeight > 0 {
		r.status.RenderTitle(b, 0)
	}

	// Text rows
	r.gutter.SetCurrentLine(cursor.Y)
	var cursorLayout *layout.LineLayout
	for row := 0; row < height; row++ {
		y := row + 1
		docRow := offset.Y + row
		backend.FillRow(b, 0, y, termWidth, core.DefaultStyle())

		line, ok := doc.Row(docRow)
		if !ok {
			backend.DrawText(b, textLeft, y, termWidth, EmptyRowMarker, core.DefaultStyle())
			r.gutter.Render(b, y, docRow, false)
			continue
		}

		text := line.DisplayRange(offset.X, offset.X+textWidth)
		l := r.layout.Layout(r.highlight(text, doc.Language()))
		r.drawCells(l, textLeft, y, textWidth)
		if row == cursorRow {
			cursorLayout = l
		}

		r.gutter.Render(b, y, docRow, true)
	}

	// Position line
	if termHeight >= viewport.ReservedRows {
		r.status.SetPosition(cursor.Y+1, cursor.X+1)
		r.status.SetTotalLines(doc.RowCount())
		r.status.SetScrollPercent(vp.ScrollPercent(doc.RowCount()))
		r.status.SetLanguage(doc.LanguageName())
		r.status.RenderPosition(b, termHeight-1)
	}

	// Cursor
	if textWidth > 0 && height > 0 {
		col := max(cursor.X-offset.X, 0)
		if cursorLayout != nil {
			col = cursorLayout.VisualColumn(col)
		}
		col = min(col, textWidth-1)
		b.ShowCursor(textLeft+col, cursorRow+1)
	}

	if err := b.Show(); err != nil {
		return NewRenderError("show", err)
	}
	r.frameCount++
	return nil
}

// revealCursorCells scrolls right until the cursor's cells fit in the
// text area. Tabs and wide clusters make a row wider than its grapheme
// count, which ScrollToReveal alone cannot see.
func (r *Renderer) revealCursorCells(doc Content, vp *viewport.Viewport) {
	cursor := vp.Cursor()
	line, ok := doc.Row(cursor.Y)
	if !ok {
		return
	}
	width := vp.Width()
	vp.RevealColumn(func(first int) bool {
		l := r.layout.LayoutText(line.DisplayRange(first, cursor.X+1))
		g := cursor.X - first
		col := l.VisualColumn(g)
		return col+max(l.VisualColumn(g+1)-col, 1) <= width
	})
}

// drawCells copies cells for one row into [left, left+width). A wide
// cell that would cross the right edge is left out.
func (r *Renderer) drawCells(l *layout.LineLayout, left, y, width int) {
	for x, cell := range l.Cells {
		if x >= width {
			return
		}
		if cell.Width == 0 {
			continue
		}
		if x+cell.Width > width {
			return
		}
		r.backend.SetCell(left+x, y, cell)
	}
}

// highlight returns spans for text, falling back to plain text when the
// highlighter fails or returns spans that do not cover text exactly.
func (r *Renderer) highlight(text, language string) []highlight.Span {
	if text == "" {
		return nil
	}

	spans, err := r.highlighter.Highlight(text, language, r.opts.Theme)
	if err != nil {
		r.reportOnce(err.Error(), !errors.Is(err, highlight.ErrUnsupportedLanguage))
		return highlight.Plain(text)
	}
	if highlight.Join(spans) != text {
		r.reportOnce("highlighter output does not match input", true)
		return highlight.Plain(text)
	}
	return spans
}

// reportOnce logs a highlight failure the first time cause is seen. A
// language without a lexer is expected and only logged; other failures
// also put a warning on the position line.
func (r *Renderer) reportOnce(cause string, warn bool) {
	if _, seen := r.reported[cause]; seen {
		return
	}
	r.reported[cause] = struct{}{}
	if r.logger != nil {
		if warn {
			r.logger.Warn("highlighting disabled: %s", cause)
		} else {
			r.logger.Debug("highlighting disabled: %s", cause)
		}
	}
	if warn {
		r.status.SetMessage("highlighting off: "+cause, statusline.MessageWarning)
	}
}
