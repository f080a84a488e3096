package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/HRehwald/PoolChat/internal/domain/model"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
	if c := q.Capacity(); c != 2 {
		t.Errorf("expected capacity 2, got %d", c)
	}

	rec := model.Interaction{ID: "r1", Question: "When is lap swim?", Decision: model.DecisionAnswered}
	if !q.Enqueue(ctx, rec) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue(ctx)
	if got.ID != "r1" || got.Question != "When is lap swim?" {
		t.Errorf("unexpected record %+v", got)
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_DropsWhenFull(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, model.Interaction{ID: "r1"}) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, model.Interaction{ID: "r2"}) {
		t.Error("expected enqueue to succeed")
	}
	if q.Enqueue(ctx, model.Interaction{ID: "r3"}) {
		t.Error("expected enqueue to fail when full")
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_PreservesOrder(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if !q.Enqueue(ctx, model.Interaction{ID: fmt.Sprintf("r%d", i)}) {
			t.Fatalf("enqueue %d failed", i)
		}
	}
	_ = q.Close()

	i := 0
	for rec := range q.Dequeue(ctx) {
		if want := fmt.Sprintf("r%d", i); rec.ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, rec.ID)
		}
		i++
	}
	if i != 5 {
		t.Errorf("expected 5 records after close, got %d", i)
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(100))
	ctx := context.Background()
	numProducers := 10
	numRecords := 100

	var consumed sync.WaitGroup
	count := 0
	consumed.Add(1)
	go func() {
		defer consumed.Done()
		for range q.Dequeue(ctx) {
			count++
		}
	}()

	var producers sync.WaitGroup
	for i := 0; i < numProducers; i++ {
		producers.Add(1)
		go func(id int) {
			defer producers.Done()
			for j := 0; j < numRecords; j++ {
				rec := model.Interaction{ID: fmt.Sprintf("r%d_%d", id, j)}
				for !q.Enqueue(ctx, rec) {
					time.Sleep(time.Millisecond)
				}
			}
		}(i)
	}

	producers.Wait()
	_ = q.Close()
	consumed.Wait()

	if count != numProducers*numRecords {
		t.Errorf("expected %d records, got %d", numProducers*numRecords, count)
	}
}

func TestInMemoryQueue_CancelledContext(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// With room in the buffer the send may still win the select; with the
	// buffer full only the cancelled context can be chosen.
	_ = q.Enqueue(context.Background(), model.Interaction{ID: "fill"})
	if q.Enqueue(ctx, model.Interaction{ID: "late"}) {
		t.Error("expected enqueue to fail with a full queue and cancelled context")
	}
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	if !q.Enqueue(ctx, model.Interaction{ID: "r1"}) {
		t.Error("expected enqueue to succeed")
	}

	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}

	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}

	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}

	if q.Enqueue(ctx, model.Interaction{ID: "r2"}) {
		t.Error("expected enqueue to fail after closing")
	}

	ch := q.Dequeue(ctx)
	if rec, ok := <-ch; !ok || rec.ID != "r1" {
		t.Errorf("expected queued record r1 to survive close, got %+v ok=%v", rec, ok)
	}

	timeout := time.After(100 * time.Millisecond)
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected dequeue channel to be closed")
		}
	case <-timeout:
		t.Error("expected dequeue channel to be closed within timeout")
	}

	if err := q.Close(); err != nil {
		t.Errorf("expected second close to succeed, got error: %v", err)
	}
}
