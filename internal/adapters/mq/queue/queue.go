// Package queue buffers interaction records between the answering path and
// the log writer.
//
// Enqueue never blocks: a full or closed queue drops the record so logging
// can never slow down or fail a question.
package queue

import (
	"context"
	"sync"

	"github.com/HRehwald/PoolChat/internal/domain/model"
	"github.com/HRehwald/PoolChat/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 1024
)

// Record is the payload type flowing through the queue.
type Record = model.Interaction

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a record to the queue.
	// Returns false if the queue is full or closed and the record was dropped.
	Enqueue(ctx context.Context, r Record) bool

	// Dequeue returns a channel that receives records in enqueue order.
	// The channel is closed once the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Record

	// Len returns the current number of queued records.
	Len(ctx context.Context) int

	// Close stops accepting records. Records already queued stay readable.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	records  chan Record
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}

	// Apply all options
	for _, opt := range opts {
		opt(q)
	}

	q.records = make(chan Record, q.capacity)

	metrics.UpdateLogQueueCapacity(q.capacity)
	metrics.UpdateLogQueueSize(0)

	return q
}

// Enqueue adds a record to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, r Record) bool { //nolint:gocritic // hugeParam: Record is passed by value for channel semantics
	// Hold the read lock across the send so Close cannot close the channel
	// underneath us.
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordLogDropped()
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}

	select {
	case q.records <- r:
		metrics.RecordLogEnqueued()
		metrics.UpdateLogQueueSize(len(q.records))
		return true
	case <-ctx.Done():
		metrics.RecordLogDropped()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return false
	default:
		metrics.RecordLogDropped()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return false
	}
}

// Dequeue returns the receive side of the queue. There is a single
// underlying channel, so concurrent consumers split the records between
// them.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Record {
	return q.records
}

// Len returns the current number of queued records.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.records)
	metrics.UpdateLogQueueSize(size)
	return size
}

// Capacity returns the configured queue capacity.
func (q *InMemoryQueue) Capacity() int {
	return q.capacity
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil // already closed
	}

	// Close the channel so consumers drain and stop
	close(q.records)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
