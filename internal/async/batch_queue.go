package async

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/payrollkit/slipsort/internal/batch"
)

// BatchQueue feeds submitted jobs to a single worker goroutine.
type BatchQueue struct {
	runner  Runner
	logger  *slog.Logger
	timeout time.Duration

	ch   chan job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*BatchQueue)

func WithQueueSize(n int) Option {
	return func(q *BatchQueue) {
		if n > 0 {
			q.ch = make(chan job, n)
		}
	}
}

func WithJobTimeout(d time.Duration) Option {
	return func(q *BatchQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewBatchQueue(runner Runner, logger *slog.Logger, opts ...Option) *BatchQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &BatchQueue{
		runner:  runner,
		logger:  logger,
		timeout: 30 * time.Minute,
		ch:      make(chan job, 16),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *BatchQueue) start() {
	q.once.Do(func() {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			q.logger.Info("queue.worker.started")

			for j := range q.ch {
				ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
				res, err := q.runner.Run(ctx, j.req)
				cancel()

				if err != nil {
					q.logger.Error("queue.job.failed", "job_id", j.ticket.ID, "error", err)
				} else {
					q.logger.Info("queue.job.done", "job_id", j.ticket.ID, "status", res.Status)
				}
				j.ticket.done <- Outcome{Result: res, Err: err}
			}

			q.logger.Info("queue.worker.stopped")
		}()
	})
}

// Submit enqueues a run. The job's cancel poll is the ticket's cancel
// flag combined with whatever poll the request already carries.
func (q *BatchQueue) Submit(_ context.Context, req batch.Request) (*Ticket, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil, fmt.Errorf("queue is shutting down")
	}

	t := &Ticket{
		ID:          uuid.New(),
		SubmittedAt: time.Now(),
		done:        make(chan Outcome, 1),
	}
	callerPoll := req.CancelRequested
	req.CancelRequested = func() bool {
		if t.cancelled.Load() {
			return true
		}
		return callerPoll != nil && callerPoll()
	}

	q.ch <- job{ticket: t, req: req}
	q.logger.Info("queue.job.submitted", "job_id", t.ID, "source", req.SourcePath)
	return t, nil
}

// Shutdown stops accepting jobs and waits for the worker to drain, up
// to ctx's deadline.
func (q *BatchQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()
	select {
	case <-done:
		q.logger.Info("queue.shutdown.complete")
	case <-ctx.Done():
		q.logger.Warn("queue.shutdown.timeout")
	}
}
