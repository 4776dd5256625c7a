// Package fs defines the filesystem abstraction used by files2gz.
// The compress pipeline goes through the FS interface so tests can inject
// failures without touching the real filesystem.
package fs

import (
	"io"
)

// File is a writable destination that can be flushed to stable storage
// before closing.
type File interface {
	io.WriteCloser
	Sync() error
}

type FS interface {
	// EnsureDir creates path and any missing ancestors. It reports whether
	// anything was actually created; an already existing directory is not
	// an error, even under concurrent callers.
	EnsureDir(path string) (created bool, err error)
	Open(path string) (io.ReadCloser, error)
	Create(path string) (File, error)
}
