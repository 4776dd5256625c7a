// Package logging builds the structured logger shared by all components.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the file sink.
const (
	maxSizeMB  = 50
	maxBackups = 5
	maxAgeDays = 28
)

// Setup returns a logger writing to stderr and, when dir is non-empty, to a
// rotating log file inside dir. An unusable log directory degrades to
// console-only logging with an error line rather than failing the daemon.
// The returned closer flushes the file sink and must be called once the
// daemon stops.
func Setup(level, dir string) (*slog.Logger, io.Closer) {
	lvl := ParseLevel(level)

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log := newLogger(os.Stderr, lvl)
			log.Error("unable to open log directory, logging to console only", "dir", dir, "error", err)
			return log, nopCloser{}
		}
		file := &lumberjack.Logger{
			Filename:   filepath.Join(dir, "files2gz.log"),
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		return newLogger(io.MultiWriter(os.Stderr, file), lvl), file
	}

	return newLogger(os.Stderr, lvl), nopCloser{}
}

func newLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// ParseLevel maps a level name to its slog level. Unknown names fall back
// to info, matching the daemon's historical behavior.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical", "fatal":
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
