package document

import (
	"errors"
	"fmt"
)

// Errors returned while decoding document content.
var (
	// ErrBinary indicates the content looks like binary data.
	ErrBinary = errors.New("binary content")

	// ErrInvalidEncoding indicates the content is not valid UTF-8 after
	// byte order mark handling.
	ErrInvalidEncoding = errors.New("invalid text encoding")
)

// LoadError reports a document that could not be opened or decoded.
type LoadError struct {
	Path string // Source path or name
	Err  error  // Underlying error
}

func (e *LoadError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return fmt.Sprintf("load document: %v", e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
