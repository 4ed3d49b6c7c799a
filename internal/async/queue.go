// Package async runs batch jobs on a dedicated worker so the caller's
// control thread stays responsive for progress and cancellation. One
// worker only: page order and timestamp-based output names assume
// serial execution.
package async

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/payrollkit/slipsort/internal/batch"
)

// Runner is what the worker executes. *batch.Processor satisfies it.
type Runner interface {
	Run(ctx context.Context, req batch.Request) (*batch.Result, error)
}

// Outcome is the terminal state of a submitted job.
type Outcome struct {
	Result *batch.Result
	Err    error
}

// Ticket tracks one submitted job. Cancel is cooperative: the worker
// observes it at the next page boundary.
type Ticket struct {
	ID          uuid.UUID
	SubmittedAt time.Time

	cancelled atomic.Bool
	done      chan Outcome
}

// Cancel requests cancellation. Safe to call at any time, from any
// goroutine, more than once.
func (t *Ticket) Cancel() { t.cancelled.Store(true) }

// Done delivers the job's outcome exactly once.
func (t *Ticket) Done() <-chan Outcome { return t.done }

type job struct {
	ticket *Ticket
	req    batch.Request
}
