// Package worker runs contact sync jobs off the request path.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/pitchgate/internal/adapters/mq/queue"
	"github.com/okian/pitchgate/pkg/logger"
	"github.com/okian/pitchgate/pkg/metrics"
)

const (
	defaultWorkers      = 2
	poolShutdownTimeout = 30 * time.Second
)

// Handler processes one job. Errors are logged and counted; jobs are not
// requeued.
type Handler interface {
	Handle(ctx context.Context, j queue.Job) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, j queue.Job) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, j queue.Job) error { return f(ctx, j) }

// Source is where workers receive jobs from.
type Source interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker consumes jobs from a Source until it is drained or stopped.
type Worker struct {
	source  Source
	handler Handler
	name    string
	logger  logger.Logger

	processed atomic.Int64
	failed    atomic.Int64

	done chan struct{}
}

// New creates a worker.
func New(source Source, handler Handler, opts ...Option) *Worker {
	w := &Worker{
		source:  source,
		handler: handler,
		name:    "worker",
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run processes jobs until the source channel closes or ctx is done.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.source.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, j)
		}
	}
}

// Done is closed when Run returns.
func (w *Worker) Done() <-chan struct{} { return w.done }

// Processed returns the number of jobs handled successfully.
func (w *Worker) Processed() int64 { return w.processed.Load() }

// Failed returns the number of jobs whose handler returned an error.
func (w *Worker) Failed() int64 { return w.failed.Load() }

func (w *Worker) process(ctx context.Context, j queue.Job) {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	jobCtx := ctx
	if j.JobID != "" {
		jobCtx = logger.ContextWithRequestID(ctx, j.JobID)
	}
	if err := w.handler.Handle(jobCtx, j); err != nil {
		w.failed.Add(1)
		metrics.RecordWorkerError()
		w.logger.Error(jobCtx, "sync job failed",
			logger.String("email", j.Email),
			logger.Error(err))
		return
	}
	w.processed.Add(1)
}

// Pool runs a fixed number of workers over one queue.
type Pool struct {
	queue   queue.Queue
	workers []*Worker
	logger  logger.Logger
	cancel  context.CancelFunc
}

// NewPool creates count workers over q. Count below one uses the default.
func NewPool(count int, q queue.Queue, h Handler) *Pool {
	if count < 1 {
		count = defaultWorkers
	}
	p := &Pool{
		queue:   q,
		workers: make([]*Worker, count),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = New(q, h, WithName("sync-worker-"+strconv.Itoa(i)))
	}
	metrics.UpdateWorkerCount(count)
	return p
}

// Start launches the workers. They stop when ctx is done or on Shutdown.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Processed sums successfully handled jobs across workers.
func (p *Pool) Processed() int64 {
	var n int64
	for _, w := range p.workers {
		n += w.Processed()
	}
	return n
}

// Failed sums failed jobs across workers.
func (p *Pool) Failed() int64 {
	var n int64
	for _, w := range p.workers {
		n += w.Failed()
	}
	return n
}

// Shutdown closes the queue and waits for workers to drain it. When ctx
// expires first the workers are cancelled.
func (p *Pool) Shutdown(ctx context.Context) error {
	if err := p.queue.Close(); err != nil {
		p.logger.Error(ctx, "error closing queue", logger.Error(err))
	}

	waitCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.Done():
		case <-waitCtx.Done():
			if p.cancel != nil {
				p.cancel()
			}
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return fmt.Errorf("shutdown timed out: %w", waitCtx.Err())
		}
	}
	if p.cancel != nil {
		p.cancel()
	}
	metrics.UpdateWorkerCount(0)
	return nil
}
