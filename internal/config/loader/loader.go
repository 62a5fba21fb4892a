// Package loader reads nanoview settings sources into nested maps.
//
// Files are decoded by extension (TOML, YAML or JSON) and environment
// variables are folded into the same shape, so callers look values up
// by dotted key regardless of where they came from.
package loader

import (
	"io/fs"
	"os"
	"strings"
)

// Loader produces one settings layer. A source that does not exist
// yields a nil map and no error.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem is the subset of file operations the loaders need.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error)  { return os.ReadFile(path) }
func (osFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// DefaultFS returns the operating system's file system.
func DefaultFS() FileSystem {
	return osFS{}
}

// GetPath looks up a dotted key such as "editor.tab_width". It fails
// when any segment is missing or an intermediate value is not a table.
func GetPath(data map[string]any, path string) (any, bool) {
	table := data
	parent, leaf, nested := strings.Cut(path, ".")
	for nested {
		next, ok := table[parent].(map[string]any)
		if !ok {
			return nil, false
		}
		table = next
		parent, leaf, nested = strings.Cut(leaf, ".")
	}
	val, ok := table[parent]
	return val, ok
}

// SetPath stores value under a dotted key, creating tables as needed
// and replacing scalars that sit in the way.
func SetPath(data map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	table := data
	for _, seg := range segments[:len(segments)-1] {
		next, ok := table[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			table[seg] = next
		}
		table = next
	}
	table[segments[len(segments)-1]] = value
}
