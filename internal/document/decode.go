package document

import (
	"strings"
	"unicode/utf8"

	"github.com/go-enry/go-enry/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decode converts raw file bytes into UTF-8 text.
// A UTF-8 or UTF-16 byte order mark selects the encoding and is stripped.
// Without a BOM the bytes must already be valid UTF-8.
func decode(data []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", err
	}
	if enry.IsBinary(out) {
		return "", ErrBinary
	}
	if !utf8.Valid(out) {
		return "", ErrInvalidEncoding
	}
	return string(out), nil
}

// splitRows splits text on '\n' and drops one trailing '\r' per row.
// A final '\n' terminates the last row rather than starting a new one,
// so "" has no rows and "a\n" has one.
func splitRows(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	rows := strings.Split(text, "\n")
	for i, r := range rows {
		rows[i] = strings.TrimSuffix(r, "\r")
	}
	return rows
}
