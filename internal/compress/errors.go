package compress

import (
	"errors"
	"fmt"
	iofs "io/fs"
)

var (
	// ErrSourceUnreadable marks failures on the read side: the source
	// vanished, is unreadable, or turned out to be a directory.
	ErrSourceUnreadable = errors.New("source unreadable")
	// ErrDestinationWrite marks failures on the write side, such as a full
	// disk or denied permissions under the target tree.
	ErrDestinationWrite = errors.New("destination write failed")
)

// classify wraps err with the pipeline sentinel matching the failing side.
// Errors carrying the source path are read failures; everything else is
// attributed to the destination.
func classify(src string, err error) error {
	var pe *iofs.PathError
	if errors.As(err, &pe) && pe.Path == src {
		return fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	return fmt.Errorf("%w: %w", ErrDestinationWrite, err)
}
