// Package document loads a text file into an immutable, grapheme-indexed
// sequence of lines.
//
// A Document is built once and is read-only afterwards:
//
//	doc, err := document.Load("main.go")
//	if err != nil {
//		return err // *LoadError
//	}
//	line, ok := doc.Row(0)
//	if ok {
//		fmt.Println(line.DisplayRange(0, 10))
//	}
package document

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Document is an ordered set of lines plus the language tag derived from
// the source name. Row 0 is the first line of the source.
type Document struct {
	name         string
	lines        []Line
	language     string
	languageName string
}

// Load reads and decodes the file at path.
// Any failure is returned as *LoadError.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse builds a document from in-memory content. name may be empty.
func Parse(name string, data []byte) (*Document, error) {
	text, err := decode(data)
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}

	rows := splitRows(text)
	lines := make([]Line, len(rows))
	for i, r := range rows {
		lines[i] = NewLine(r)
	}

	return &Document{
		name:         name,
		lines:        lines,
		language:     languageTag(name),
		languageName: detectLanguage(name),
	}, nil
}

// Name returns the source name the document was loaded from.
func (d *Document) Name() string {
	return d.name
}

// Row returns line i. ok is false when i is out of range.
func (d *Document) Row(i int) (Line, bool) {
	if i < 0 || i >= len(d.lines) {
		return Line{}, false
	}
	return d.lines[i], true
}

// RowLen returns the grapheme count of line i, or 0 when i is out of range.
func (d *Document) RowLen(i int) int {
	if i < 0 || i >= len(d.lines) {
		return 0
	}
	return d.lines[i].Len()
}

// RowCount returns the number of lines.
func (d *Document) RowCount() int {
	return len(d.lines)
}

// Language returns the file extension without the dot, or "" when the
// source name has none.
func (d *Document) Language() string {
	return d.language
}

// LanguageName returns the human readable language name, e.g. "Go",
// or "" when it cannot be determined from the name.
func (d *Document) LanguageName() string {
	return d.languageName
}

func languageTag(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}

func detectLanguage(name string) string {
	if name == "" {
		return ""
	}
	base := filepath.Base(name)
	if lang, _ := enry.GetLanguageByExtension(base); lang != "" {
		return lang
	}
	lang, _ := enry.GetLanguageByFilename(base)
	return lang
}
