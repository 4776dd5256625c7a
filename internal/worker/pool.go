// Package worker runs the bounded pool that drains file events into the
// compress pipeline. Multiple workers keep one slow or large file from
// starving notification of the others.
package worker

import (
	"log/slog"
	"sync"
)

// Handler processes one absolute source path.
type Handler func(path string)

// Pool dispatches queued paths to a fixed number of workers.
type Pool struct {
	queue   chan string
	handler Handler
	size    int
	log     *slog.Logger

	wg   sync.WaitGroup
	once sync.Once
}

// NewPool creates a pool of size workers behind a queue of queueDepth
// pending events.
func NewPool(size, queueDepth int, h Handler, log *slog.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	if queueDepth < 1 {
		queueDepth = 1
	}
	return &Pool{
		queue:   make(chan string, queueDepth),
		handler: h,
		size:    size,
		log:     log,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	p.log.Debug("starting workers", "count", p.size)
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for path := range p.queue {
		p.handler(path)
	}
}

// Enqueue submits a path for processing, blocking while the queue is full.
// It must not be called after Drain; the watcher is stopped first for that
// reason.
func (p *Pool) Enqueue(path string) {
	p.queue <- path
}

// Drain stops intake and blocks until every queued and in-flight event has
// been handled. No transfer is abandoned mid-copy.
func (p *Pool) Drain() {
	p.once.Do(func() {
		close(p.queue)
	})
	p.wg.Wait()
}
