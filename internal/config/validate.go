package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validation failures split into usage errors (the operator passed bad or
// missing values) and I/O errors (paths could not be resolved, accessed or
// created). The process exit code depends on the class.
var (
	ErrUsage = errors.New("invalid configuration")
	ErrIO    = errors.New("inaccessible path")
)

// Validate checks the configuration and canonicalizes all paths in place.
// The source directory must exist; the target directory is created if
// missing. Neither the target nor the log directory may live inside the
// watched tree, otherwise the daemon would observe and recompress its own
// output forever.
func (c *Config) Validate() error {
	if c.Source.Path == "" || c.Target.Path == "" {
		return fmt.Errorf("%w: source and target directories are required", ErrUsage)
	}

	src, err := resolveDir(c.Source.Path, true)
	if err != nil {
		return fmt.Errorf("%w: resolving source directory %q: %w", ErrIO, c.Source.Path, err)
	}

	tgt, err := resolveDir(c.Target.Path, false)
	if err != nil {
		return fmt.Errorf("%w: resolving target directory %q: %w", ErrIO, c.Target.Path, err)
	}

	if isWithin(src, tgt) {
		return fmt.Errorf("%w: target directory can not be the watched directory or a subdirectory of it", ErrUsage)
	}

	logDir := ""
	if c.Logging.Dir != "" {
		logDir, err = resolveDir(c.Logging.Dir, false)
		if err != nil {
			return fmt.Errorf("%w: resolving log directory %q: %w", ErrIO, c.Logging.Dir, err)
		}
		if isWithin(src, logDir) {
			return fmt.Errorf("%w: log directory can not be the watched directory or a subdirectory of it", ErrUsage)
		}
	}

	if err := os.MkdirAll(tgt, 0o755); err != nil {
		return fmt.Errorf("%w: creating target directory %q: %w", ErrIO, tgt, err)
	}

	if c.Workers.Count < 1 {
		return fmt.Errorf("%w: worker count must be at least 1", ErrUsage)
	}
	if c.Source.Watch.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", ErrUsage)
	}
	switch c.Source.Watch.Mode {
	case "auto", "poll", "fsnotify":
	default:
		return fmt.Errorf("%w: unknown watch mode %q", ErrUsage, c.Source.Watch.Mode)
	}
	if c.Retention.Enabled {
		if c.Retention.MaxAge <= 0 {
			return fmt.Errorf("%w: retention max age must be positive", ErrUsage)
		}
		// Parse here so a bad schedule is rejected before any watch starts.
		if _, err := cron.ParseStandard(c.Retention.Cron); err != nil {
			return fmt.Errorf("%w: retention cron %q: %w", ErrUsage, c.Retention.Cron, err)
		}
	}

	c.Source.Path = src
	c.Target.Path = tgt
	c.Logging.Dir = logDir

	return nil
}

// resolveDir turns a path into its absolute, symlink-free form. When
// mustExist is set the path has to name an existing directory; otherwise a
// missing leaf is tolerated and resolved against its nearest existing
// ancestor.
func resolveDir(path string, mustExist bool) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		info, err := os.Stat(resolved)
		if err != nil {
			return "", err
		}
		if !info.IsDir() {
			return "", fmt.Errorf("%s is not a directory", resolved)
		}
		return resolved, nil
	}

	if mustExist || !os.IsNotExist(err) {
		return "", err
	}

	parent, err := resolveDir(filepath.Dir(abs), false)
	if err != nil {
		return "", err
	}
	return filepath.Join(parent, filepath.Base(abs)), nil
}

// isWithin reports whether p equals root or lies below it.
func isWithin(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
