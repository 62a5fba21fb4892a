// Package renderer composes one terminal frame from a document and a
// viewport.
//
// A frame is laid out top to bottom:
//
//	row 0            title bar, centered, reverse video
//	rows 1..height   document rows (or ~ past the end), with an optional
//	                 line-number gutter on the left
//	last row         cursor position, language and key hint
//
// Each visible row is cut to the viewport's column window, passed through
// the Highlighter and laid out into cells. Rows whose highlighting fails
// are drawn plain.
//
// Usage:
//
//	b, _ := backend.NewTerminal()
//	r := renderer.New(b, highlight.NewChroma(), renderer.DefaultOptions())
//	if err := r.Render(doc, vp); err != nil {
//		// *RenderError
//	}
package renderer
