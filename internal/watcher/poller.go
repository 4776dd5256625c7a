package watcher

import (
	iofs "io/fs"
	"path/filepath"
	"time"
)

// startPolling seeds the seen set with files already present, so only files
// created after startup are dispatched, then scans on a fixed interval.
func (w *Watcher) startPolling() error {
	seen := make(map[string]struct{})
	if err := w.scan(seen, false); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.runPoll(seen)
	return nil
}

func (w *Watcher) runPoll(seen map[string]struct{}) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			if err := w.scan(seen, true); err != nil {
				w.log.Error("scanning source tree", "error", err)
			}
		}
	}
}

// scan walks the tree recording unseen files and, when dispatchNew is set,
// dispatching them.
func (w *Watcher) scan(seen map[string]struct{}, dispatchNew bool) error {
	return filepath.WalkDir(w.root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := seen[path]; ok {
			return nil
		}
		seen[path] = struct{}{}
		if dispatchNew {
			w.dispatch(path)
		}
		return nil
	})
}
