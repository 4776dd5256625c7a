package main

import (
	"bytes"
	"compress/gzip"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/files2gz/internal/compress"
	"github.com/raoulx24/files2gz/internal/config"
	"github.com/raoulx24/files2gz/internal/mirror"
	"github.com/raoulx24/files2gz/internal/watcher"
	"github.com/raoulx24/files2gz/internal/worker"
)

// TestWatchCompressDrain wires the components exactly like runDaemon does,
// minus the signal wait, and runs the create-observe-compress-drain cycle
// against the real filesystem.
func TestWatchCompressDrain(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	pipeline := compress.New(mirror.New(src, dst), nil, log)
	pool := worker.NewPool(2, 16, pipeline.Handle, log)
	pool.Start()

	watch := watcher.New(src, config.WatchConfig{
		Mode:         "auto",
		PollInterval: 50 * time.Millisecond,
	}, pool.Enqueue, log)
	require.NoError(t, watch.Start())

	reports := filepath.Join(src, "reports")
	require.NoError(t, os.Mkdir(reports, 0o755))
	time.Sleep(100 * time.Millisecond)

	const content = "a,b\n1,2\n"
	require.NoError(t, os.WriteFile(filepath.Join(reports, "q1.csv"), []byte(content), 0o644))

	artifact := filepath.Join(dst, "reports", "q1.csv.gz")
	require.Eventually(t, func() bool {
		_, err := os.Stat(artifact)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	watch.Stop()
	pool.Drain()

	f, err := os.Open(artifact)
	require.NoError(t, err)
	defer f.Close()
	r, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	assert.Contains(t, buf.String(), "compressed file")
	assert.Contains(t, buf.String(), filepath.Join("reports", "q1.csv"))

	// Nothing is dispatched after the drain.
	mark := buf.Len()
	require.NoError(t, os.WriteFile(filepath.Join(src, "late.txt"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.NoFileExists(t, filepath.Join(dst, "late.txt.gz"))
	assert.Equal(t, mark, buf.Len())
}

func TestWaitForTermination(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	done := make(chan struct{})
	go func() {
		waitForTermination(log)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("termination signal was not observed")
	}
	assert.Contains(t, buf.String(), "received signal")
	assert.Contains(t, buf.String(), "terminated")
}

func TestApplyFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Set("source", "/flag/in"))
	require.NoError(t, cmd.Flags().Set("log-level", "debug"))
	require.NoError(t, cmd.Flags().Set("workers", "8"))
	require.NoError(t, cmd.Flags().Set("poll-interval", "2s"))

	cfg := config.Default()
	cfg.Target.Path = "/file/out"
	applyFlags(cmd, cfg)

	assert.Equal(t, "/flag/in", cfg.Source.Path)
	assert.Equal(t, "/file/out", cfg.Target.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 8, cfg.Workers.Count)
	assert.Equal(t, 2*time.Second, cfg.Source.Watch.PollInterval)
}
