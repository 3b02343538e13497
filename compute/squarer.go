// Package compute hosts the delayed square computation: the result
// of a valid input becomes observable only after a fixed delay,
// while an invalid input fails right away.
package compute

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/typelab/typelab/async"
	"github.com/typelab/typelab/lib/infra"
	"github.com/typelab/typelab/sched"
	"github.com/typelab/typelab/xlog"
)

// ErrNegativeInput is the only failure kind of the squarer.
var ErrNegativeInput = errors.New("value must be non-negative")

const DefaultDelay = 1000 * time.Millisecond

// Squarer schedules squares with a fixed delay on a shared
// scheduler. Each call arms an independent task; there is no
// memoization and no shared outcome state across calls.
type Squarer struct {
	scheduler *sched.Scheduler
	logger    xlog.XLogger
	delay     time.Duration
}

type SquarerOption func(*Squarer)

// WithDelay overrides the policy delay constant. The exact duration
// is not correctness-critical, only "no earlier than" is.
func WithDelay(delay time.Duration) SquarerOption {
	return func(sq *Squarer) {
		if delay <= 0 {
			panic("squarer delay must be positive")
		}
		sq.delay = delay
	}
}

func WithSquarerLogger(logger xlog.XLogger) SquarerOption {
	return func(sq *Squarer) {
		sq.logger = logger
	}
}

func NewSquarer(scheduler *sched.Scheduler, opts ...SquarerOption) *Squarer {
	if scheduler == nil {
		panic("squarer built with nil scheduler")
	}
	sq := &Squarer{
		scheduler: scheduler,
		delay:     DefaultDelay,
	}
	for _, o := range opts {
		if o != nil {
			o(sq)
		}
	}
	if sq.logger == nil {
		sq.logger = xlog.New(xlog.WithName("Squarer"))
	}
	return sq
}

func (sq *Squarer) Delay() time.Duration {
	return sq.delay
}

// Square returns a future of n*n that resolves only after the
// configured delay. A negative n rejects immediately, before any
// timer is armed; the timing of the two outcomes is deliberately
// asymmetric.
func (sq *Squarer) Square(n float64) *async.Future[float64] {
	if n < 0 {
		err := infra.WrapErrorStackWithMessage(ErrNegativeInput, fmt.Sprintf("square of %v", n))
		sq.logger.Warn("rejected negative input", zap.Float64("n", n))
		return async.Rejected[float64](err)
	}

	fut := async.NewFuture[float64]()
	task, err := sq.scheduler.AfterFunc(sq.delay, func(ctx context.Context, id sched.TaskID) {
		fut.Resolve(n * n)
	})
	if err != nil {
		sq.logger.ErrorStack(err, "failed to arm square task", zap.Float64("n", n))
		fut.Reject(err)
		return fut
	}
	sq.logger.Debug("square task armed",
		zap.Float64("n", n),
		zap.String("taskID", string(task.ID())),
		zap.Int64("expiredMs", task.ExpiredMs()),
	)
	return fut
}

// SquareAwait is the blocking convenience form of Square.
func (sq *Squarer) SquareAwait(ctx context.Context, n float64) (float64, error) {
	return sq.Square(n).Await(ctx)
}
