// Package mirror maps paths in the watched tree to their compressed
// counterparts in the target tree.
package mirror

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideWatchedTree is returned when a path does not lie under the
// source root. It should not happen with correct watch subscriptions, but
// canonicalization differences (symlinks, case folding) can produce it.
var ErrOutsideWatchedTree = errors.New("path outside watched tree")

// Mapped holds the derived paths for one source file.
type Mapped struct {
	Rel        string // path relative to the source root
	TargetFile string // target root joined with Rel, ".gz" appended
	TargetDir  string // parent directory of TargetFile
}

// Mapper derives target paths from absolute source paths. It is pure and
// safe for concurrent use.
type Mapper struct {
	sourceRoot string
	targetRoot string
}

// New creates a mapper for canonicalized source and target roots.
func New(sourceRoot, targetRoot string) *Mapper {
	return &Mapper{sourceRoot: sourceRoot, targetRoot: targetRoot}
}

// Map computes the relative path of abs under the source root and the
// corresponding ".gz" path in the target tree.
func (m *Mapper) Map(abs string) (Mapped, error) {
	rel, err := filepath.Rel(m.sourceRoot, abs)
	if err != nil || rel == "." || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return Mapped{}, fmt.Errorf("%w: %s", ErrOutsideWatchedTree, abs)
	}

	target := filepath.Join(m.targetRoot, rel) + ".gz"
	return Mapped{
		Rel:        rel,
		TargetFile: target,
		TargetDir:  filepath.Dir(target),
	}, nil
}
