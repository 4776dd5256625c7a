// Package watcher monitors the source tree and emits file-creation events.
package watcher

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/raoulx24/files2gz/internal/config"
	"github.com/raoulx24/files2gz/internal/fsprobe"
)

// Dispatch receives the absolute path of each newly created file. Richer
// notification payloads from the OS-level watcher are reduced to this one
// field at the watcher boundary.
type Dispatch func(path string)

// Watcher observes the source root recursively and dispatches file
// creations. Directory creations are never dispatched; they only extend the
// subscription.
type Watcher struct {
	root     string
	mode     string
	interval time.Duration

	dispatch Dispatch
	log      *slog.Logger

	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// New creates a watcher for the canonicalized source root.
func New(root string, cfg config.WatchConfig, dispatch Dispatch, log *slog.Logger) *Watcher {
	return &Watcher{
		root:     root,
		mode:     cfg.Mode,
		interval: cfg.PollInterval,
		dispatch: dispatch,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Start chooses the watching strategy based on config and begins observing.
// It returns once the subscription is in place; events flow from a
// background loop until Stop.
func (w *Watcher) Start() error {
	switch w.mode {
	case "fsnotify":
		return w.startFsNotify()

	case "poll":
		return w.startPolling()

	case "auto":
		res := fsprobe.Probe(w.root)
		if res.FsnotifySupported {
			return w.startFsNotify()
		}
		w.log.Warn("fsnotify disabled, falling back to polling", "reason", res.Reason)
		return w.startPolling()

	default:
		return fmt.Errorf("unknown mode %q", w.mode)
	}
}

// Stop ends the subscription and waits for the event loop to exit. No new
// events are dispatched afterwards; events already dispatched are not
// affected.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.done)
		if w.fsw != nil {
			w.fsw.Close()
		}
	})
	w.wg.Wait()
}
