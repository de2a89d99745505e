// Package queue holds contact sync jobs between the HTTP layer and the sync
// workers.
package queue

import (
	"context"
	"sync"

	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/pkg/metrics"
)

const defaultCapacity = 1024

// Job is the payload flowing through the queue.
type Job = model.ContactSync

// Queue provides non-blocking enqueue and channel-based dequeue.
type Queue interface {
	// Enqueue adds a job without blocking. It returns ErrFull or ErrClosed
	// when the job was not accepted.
	Enqueue(ctx context.Context, j Job) error
	// Dequeue returns a channel of jobs, closed when the queue is closed and
	// drained or when ctx is done.
	Dequeue(ctx context.Context) <-chan Job
	Len() int
	Close() error
	IsClosed() bool
}

// InMemoryQueue implements Queue over a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a bounded in-memory queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan Job, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	q.publishSize()
	return q
}

// Enqueue adds a job to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordQueueEnqueueError()
		return err
	}

	select {
	case q.jobs <- j:
		metrics.RecordQueueEnqueue()
		q.publishSize()
		return nil
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByType("queue_full", "medium")
		return ErrFull
	}
}

// Dequeue returns a channel that receives jobs as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Job {
	out := make(chan Job)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case j, ok := <-q.jobs:
				if !ok {
					return
				}
				metrics.RecordQueueDequeue()
				q.publishSize()
				select {
				case out <- j:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Len returns the number of pending jobs.
func (q *InMemoryQueue) Len() int {
	return len(q.jobs)
}

// Close stops accepting jobs. Pending jobs are still delivered.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) publishSize() {
	n := len(q.jobs)
	metrics.UpdateQueueSize(n)
	metrics.UpdateQueueUtilization(float64(n) / float64(q.capacity))
}
