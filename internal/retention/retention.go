// Package retention prunes aged artifacts from the target tree on a
// schedule. It is optional; without a schedule the target tree grows
// unbounded, which suits pipelines that drain it themselves.
package retention

import (
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/files2gz/internal/config"
)

// Engine deletes compressed artifacts older than the configured age and
// removes directories left empty.
type Engine struct {
	root   string
	maxAge time.Duration
	spec   string
	log    *slog.Logger

	cron *cron.Cron
}

// New creates an engine pruning the target tree rooted at root.
func New(root string, cfg config.RetentionConfig, log *slog.Logger) *Engine {
	return &Engine{
		root:   root,
		maxAge: cfg.MaxAge,
		spec:   cfg.Cron,
		log:    log,
		cron:   cron.New(),
	}
}

// Start registers the cron schedule and begins running prune jobs.
func (e *Engine) Start() error {
	if _, err := e.cron.AddFunc(e.spec, func() {
		if err := e.Prune(time.Now()); err != nil {
			e.log.Error("retention: prune failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("%w: retention cron %q: %w", config.ErrUsage, e.spec, err)
	}

	e.cron.Start()
	e.log.Info("retention scheduled", "cron", e.spec, "maxAge", e.maxAge.String())
	return nil
}

// Stop halts the scheduler and waits for a running prune job to finish.
func (e *Engine) Stop() {
	<-e.cron.Stop().Done()
}

// Prune removes every ".gz" artifact whose modification time is older than
// now minus the configured age, then removes directories the deletions left
// empty. The target root itself is always kept.
func (e *Engine) Prune(now time.Time) error {
	cutoff := now.Add(-e.maxAge)
	removed := 0
	var dirs []string

	err := filepath.WalkDir(e.root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != e.root {
				dirs = append(dirs, path)
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".gz") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}

		if err := os.Remove(path); err != nil {
			e.log.Error("retention: removing artifact", "path", path, "error", err)
			return nil
		}
		removed++
		return nil
	})
	if err != nil {
		return err
	}

	// Deepest directories first, so freshly emptied parents go too.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	for _, dir := range dirs {
		// Fails on non-empty directories, which is exactly the filter
		// we want.
		if err := os.Remove(dir); err == nil {
			e.log.Info("retention: removed empty directory", "dir", dir)
		}
	}

	if removed > 0 {
		e.log.Info("retention: pruned artifacts", "count", removed)
	}
	return nil
}
