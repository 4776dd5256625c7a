package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/raoulx24/files2gz/internal/compress"
	"github.com/raoulx24/files2gz/internal/config"
	"github.com/raoulx24/files2gz/internal/logging"
	"github.com/raoulx24/files2gz/internal/mirror"
	"github.com/raoulx24/files2gz/internal/retention"
	"github.com/raoulx24/files2gz/internal/watcher"
	"github.com/raoulx24/files2gz/internal/worker"
)

// terminationPollInterval is how often the wait loop checks the signal flag.
const terminationPollInterval = time.Second

// runDaemon wires the components together and runs until a termination
// signal arrives, then drains in order: watcher first, then the worker
// pool, so no event is enqueued after intake closes.
func runDaemon(cfg *config.Config) error {
	log, logCloser := logging.Setup(cfg.Logging.Level, cfg.Logging.Dir)
	defer logCloser.Close()

	mapper := mirror.New(cfg.Source.Path, cfg.Target.Path)
	pipeline := compress.New(mapper, nil, log)

	pool := worker.NewPool(cfg.Workers.Count, cfg.Workers.QueueSize, pipeline.Handle, log)
	pool.Start()

	watch := watcher.New(cfg.Source.Path, cfg.Source.Watch, pool.Enqueue, log)
	if err := watch.Start(); err != nil {
		pool.Drain()
		return fmt.Errorf("%w: starting watcher: %w", config.ErrIO, err)
	}
	log.Info("file watching started", "dir", cfg.Source.Path)

	var ret *retention.Engine
	if cfg.Retention.Enabled {
		ret = retention.New(cfg.Target.Path, cfg.Retention, log)
		if err := ret.Start(); err != nil {
			watch.Stop()
			pool.Drain()
			return err
		}
	}

	waitForTermination(log)

	// Draining: stop the subscription, let in-flight transfers finish.
	watch.Stop()
	pool.Drain()
	if ret != nil {
		ret.Stop()
	}

	log.Info("shutting down")
	return nil
}

// waitForTermination blocks until SIGINT or SIGTERM is observed. The signal
// handler only records the signal and sets the flag; the wait loop polls it
// once per second.
func waitForTermination(log *slog.Logger) {
	var terminate atomic.Bool

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received signal", "signal", sig.String())
		terminate.Store(true)
	}()

	ticker := time.NewTicker(terminationPollInterval)
	defer ticker.Stop()
	for range ticker.C {
		if terminate.Load() {
			// Notify stays installed so a second signal during the drain
			// lands in the buffer instead of killing the process mid-copy.
			return
		}
	}
}
