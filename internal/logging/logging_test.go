package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "critical", want: slog.LevelError + 4},
		{in: "fatal", want: slog.LevelError + 4},
		{in: "ERROR", want: slog.LevelError},
		{in: "bogus", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestSetup_FileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, closer := Setup("info", dir)
	defer closer.Close()

	log.Info("hello", "key", "value")

	data, err := os.ReadFile(filepath.Join(dir, "files2gz.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "key=value")
}

func TestSetup_NoDir(t *testing.T) {
	log, closer := Setup("debug", "")
	defer closer.Close()
	require.NotNil(t, log)
}

func TestSetup_UnusableDirDegradesToConsole(t *testing.T) {
	occupied := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(occupied, []byte("x"), 0o644))

	// A file where the log directory should be: no sink, but still a logger.
	log, closer := Setup("info", occupied)
	defer closer.Close()
	require.NotNil(t, log)
}
