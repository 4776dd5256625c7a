package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotDirectory reports a path collision between a directory that should
// be materialized and an existing non-directory entry.
var ErrNotDirectory = errors.New("not a directory")

// OSFS is the concrete implementation of FS backed by the local OS filesystem.
type OSFS struct{}

func New() *OSFS {
	return &OSFS{}
}

func (o *OSFS) EnsureDir(path string) (bool, error) {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%w: %s", ErrNotDirectory, path)
		}
		return false, nil
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return false, err
	}
	return true, nil
}

func (o *OSFS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (o *OSFS) Create(path string) (File, error) {
	return os.Create(path)
}
