// Package worker drains the interaction queue into a persistent sink.
package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/HRehwald/PoolChat/internal/adapters/mq/queue"
	"github.com/HRehwald/PoolChat/pkg/logger"
	"github.com/HRehwald/PoolChat/pkg/metrics"
)

// Record is what the worker reads off the queue.
type Record = queue.Record

// Sink persists interaction records.
type Sink interface {
	Append(ctx context.Context, rec Record) error
}

// Queue defines how the worker receives records.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Record
}

// Worker writes queued records to a Sink.
type Worker interface {
	// Run consumes records until the queue is closed and drained, or ctx
	// is canceled.
	Run(ctx context.Context)

	// Shutdown waits for Run to return. Close the queue first so Run can
	// finish draining.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker is the single writer behind the interaction log. One writer
// keeps records in enqueue order.
type InMemoryWorker struct {
	queue Queue
	sink  Sink
	name  string

	written atomic.Int64
	failed  atomic.Int64

	done chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, sink Sink, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue: queue,
		sink:  sink,
		name:  "interaction-writer",
		done:  make(chan struct{}),
	}

	// Apply all options
	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get()
	}
	w.logger = w.logger.Named(w.name)

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	records := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-records:
			if !ok {
				w.logger.Debug(ctx, "queue drained",
					logger.Int("written", int(w.written.Load())),
					logger.Int("failed", int(w.failed.Load())),
				)
				return
			}
			if err := w.write(ctx, rec); err != nil {
				w.logger.Error(ctx, "error writing interaction", logger.Error(err))
			}
		}
	}
}

// Shutdown waits for the worker to finish or ctx to expire.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed once Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} {
	return w.done
}

// Written returns the number of records persisted so far.
func (w *InMemoryWorker) Written() int64 {
	return w.written.Load()
}

// Failed returns the number of records the sink rejected.
func (w *InMemoryWorker) Failed() int64 {
	return w.failed.Load()
}

// write persists one record. A failed write is counted and dropped; it
// never stops the loop.
func (w *InMemoryWorker) write(ctx context.Context, rec Record) error { //nolint:gocritic // hugeParam: Record is passed by value for channel semantics
	start := time.Now()
	defer func() {
		metrics.RecordLogWriteLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if err := w.sink.Append(ctx, rec); err != nil {
		w.failed.Add(1)
		metrics.RecordLogWriteError()
		metrics.RecordErrorByComponent("worker", "append_error")
		return fmt.Errorf("append interaction %s: %w", rec.ID, err)
	}

	w.written.Add(1)
	metrics.RecordLogWritten()
	return nil
}
