package watcher

import (
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// startFsNotify subscribes every directory under the root and launches the
// event loop.
func (w *Watcher) startFsNotify() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsw = fsw

	if err := w.addTree(w.root, false); err != nil {
		fsw.Close()
		return err
	}

	w.wg.Add(1)
	go w.runFsNotify()
	return nil
}

// addTree walks root adding every directory to the subscription. When
// dispatchFiles is set, files found during the walk are dispatched too;
// this closes the gap where files land in a fresh directory before its
// watch is in place.
func (w *Watcher) addTree(root string, dispatchFiles bool) error {
	return filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		if dispatchFiles {
			w.dispatch(path)
		}
		return nil
	})
}

func (w *Watcher) runFsNotify() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) {
				continue
			}

			info, err := os.Stat(ev.Name)
			if err != nil {
				// Gone already; nothing to mirror.
				w.log.Debug("stat after create", "path", ev.Name, "error", err)
				continue
			}

			if info.IsDir() {
				if err := w.addTree(ev.Name, true); err != nil {
					w.log.Error("watching new directory", "dir", ev.Name, "error", err)
				}
				continue
			}

			w.dispatch(ev.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("watch error", "error", err)
		}
	}
}
