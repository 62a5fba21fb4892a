package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates an explicitly requested settings file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates the value is out of range or not allowed.
	ErrValidationFailed = errors.New("validation failed")
)

// ConfigError reports a settings file or value that cannot be used.
type ConfigError struct {
	// Path is the settings file, or "" for environment and flags.
	Path string
	// Key is the dotted setting key, when one value is at fault.
	Key string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}

	msg := "config"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Key != "" {
		msg += ": " + e.Key
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
