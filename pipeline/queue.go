package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/locket"
)

// DefaultWorkers is the number of concurrent queue workers.
const DefaultWorkers = 2

// Queue is an in-memory task queue backed by a fixed worker pool. The
// backlog is unbounded so a running task can always enqueue downstream
// work without blocking the worker that must eventually drain it. Wait
// blocks until every task enqueued so far, and every task those tasks
// enqueue, has finished.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	backlog []func(context.Context)
	closed  bool

	pending sync.WaitGroup
	workers int
	logger  *slog.Logger

	g      *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
}

// NewQueue creates a queue with the given number of workers. Call Start
// before enqueueing.
func NewQueue(workers int, logger *slog.Logger) *Queue {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		workers: workers,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Start launches the worker goroutines.
func (q *Queue) Start() {
	q.g, _ = errgroup.WithContext(q.ctx)
	for i := 0; i < q.workers; i++ {
		q.g.Go(q.work)
	}
}

// Enqueue submits a task. Returns EUNAVAILABLE after Close.
func (q *Queue) Enqueue(task func(context.Context)) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return locket.Errorf(locket.EUNAVAILABLE, "task queue is shut down")
	}

	q.pending.Add(1)
	q.backlog = append(q.backlog, task)
	q.cond.Signal()
	return nil
}

// Wait blocks until all enqueued tasks have finished, including tasks
// enqueued by other tasks.
func (q *Queue) Wait() {
	q.pending.Wait()
}

// Close stops the workers. Queued but unstarted tasks are dropped and
// released, so a concurrent Wait still returns. Close is safe to call
// multiple times.
func (q *Queue) Close() error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.cancel()
		for range q.backlog {
			q.pending.Done()
		}
		q.backlog = nil
		q.cond.Broadcast()
	}
	q.mu.Unlock()

	if q.g != nil {
		return q.g.Wait()
	}
	return nil
}

func (q *Queue) work() error {
	for {
		q.mu.Lock()
		for len(q.backlog) == 0 && !q.closed {
			q.cond.Wait()
		}
		if q.closed {
			q.mu.Unlock()
			return nil
		}
		task := q.backlog[0]
		q.backlog = q.backlog[1:]
		q.mu.Unlock()

		q.run(task)
	}
}

func (q *Queue) run(task func(context.Context)) {
	defer q.pending.Done()
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("task panicked", "panic", r)
		}
	}()
	task(q.ctx)
}
