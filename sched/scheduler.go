package sched

import (
	"context"
	"errors"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/typelab/typelab/lib/hrtime"
	"github.com/typelab/typelab/lib/id"
	"github.com/typelab/typelab/lib/infra"
	"github.com/typelab/typelab/lib/ipc"
	"github.com/typelab/typelab/lib/queue"
	"github.com/typelab/typelab/xlog"
)

var (
	ErrSchedulerStopped       = errors.New("scheduler stopped")
	ErrSchedulerEmptyJob      = errors.New("empty job")
	ErrSchedulerNegativeDelay = errors.New("negative delay")
)

// Scheduler arms one-shot delayed jobs. A single poller goroutine
// sleeps on the delay queue until the earliest task expires, then
// hands the task to a worker pool which runs the job. There is no
// ordering guarantee between tasks with equal expirations.
type Scheduler struct {
	ctx         context.Context
	dq          *queue.DelayQueue[*Task]
	expiredC    ipc.ClosableChannel[*Task]
	stopC       chan struct{}
	gPool       *ants.Pool
	clock       hrtime.Clock
	idGenerator id.StrGen
	logger      xlog.XLogger
	stats       *schedulerStats
	isRunning   *atomic.Bool
	name        string
}

// New builds and starts a Scheduler. It runs until Shutdown is
// called or ctx is done.
func New(ctx context.Context, opts ...SchedulerOption) (*Scheduler, error) {
	if ctx == nil {
		return nil, infra.NewErrorStack("scheduler built with nil context")
	}
	opt := &schedulerOption{}
	for _, o := range opts {
		if o != nil {
			o(opt)
		}
	}

	logger := opt.getLogger()
	gPool, err := ants.NewPool(
		opt.getWorkerPoolSize(),
		ants.WithLogger(xlog.NewAntsXLogger(logger)),
		ants.WithNonblocking(true),
	)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "scheduler worker pool init failed")
	}

	s := &Scheduler{
		ctx:         ctx,
		dq:          queue.NewDelayQueue[*Task](ctx, opt.getQueueCapacity()),
		expiredC:    ipc.NewSafeChannel[*Task](opt.getQueueCapacity()),
		stopC:       make(chan struct{}),
		gPool:       gPool,
		clock:       opt.getClock(),
		idGenerator: opt.getIDGenerator(),
		logger:      logger,
		isRunning:   &atomic.Bool{},
		name:        opt.getName(),
	}
	if opt.enableStats {
		s.stats = newSchedulerStats(s.name)
	}
	s.isRunning.Store(true)
	s.run()
	return s, nil
}

func (s *Scheduler) Name() string {
	return s.name
}

// Len reports how many tasks are armed and not yet expired.
func (s *Scheduler) Len() int64 {
	return s.dq.Len()
}

// AfterFunc arms job to fire once delay has elapsed. The returned
// task cannot be cancelled; an armed timer always fires.
func (s *Scheduler) AfterFunc(delay time.Duration, job Job) (*Task, error) {
	if job == nil {
		return nil, infra.WrapErrorStack(ErrSchedulerEmptyJob)
	}
	if delay < 0 {
		return nil, infra.WrapErrorStack(ErrSchedulerNegativeDelay)
	}
	if !s.isRunning.Load() {
		return nil, infra.WrapErrorStack(ErrSchedulerStopped)
	}

	now := s.clock.Now()
	task := &Task{
		id:        TaskID(s.idGenerator()),
		job:       job,
		armedMs:   now.UnixMilli(),
		expiredMs: now.Add(delay).UnixMilli(),
	}
	s.dq.Offer(task, task.expiredMs)
	s.stats.IncreaseTaskArmedCount()
	s.stats.RecordTasksAlive(1)
	return task, nil
}

// Shutdown stops the scheduler. Armed tasks that have not expired
// yet are dropped. Idempotent.
func (s *Scheduler) Shutdown() {
	if s == nil {
		return
	}
	if old := s.isRunning.Swap(false); !old {
		s.logger.Warn("scheduler is already shutdown", zap.String("name", s.name))
		return
	}
	close(s.stopC)
	_ = s.expiredC.Close()
	s.gPool.Release()
}

func (s *Scheduler) run() {
	// Poller: moves expired tasks from the delay queue to expiredC.
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error(nil, "delay queue poll panic recover",
					zap.String("name", s.name),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
			}
		}()
		s.dq.PollToChan(func() int64 {
			return s.clock.Now().UnixMilli()
		}, s.expiredC)
	}()

	// Dispatcher: hands expired tasks to the worker pool.
	go func() {
		expiredTaskC := s.expiredC.Wait()
		for {
			select {
			case <-s.ctx.Done():
				s.Shutdown()
				return
			case <-s.stopC:
				return
			case task, ok := <-expiredTaskC:
				if !ok {
					return
				}
				s.handleTask(task)
			}
		}
	}()
}

func (s *Scheduler) handleTask(task *Task) {
	if task == nil || !s.isRunning.Load() {
		return
	}
	s.stats.RecordFiringLatency(s.clock.Now().UnixMilli() - task.expiredMs)
	err := s.gPool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error(nil, "task job panic recover",
					zap.String("name", s.name),
					zap.String("taskID", string(task.id)),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
			}
		}()
		task.job(s.ctx, task.id)
	})
	if err != nil {
		// Non-blocking pool is saturated; run inline rather than
		// dropping a fired task.
		s.logger.Warn("worker pool saturated, task runs on dispatcher",
			zap.String("name", s.name),
			zap.String("taskID", string(task.id)),
			zap.String("error", err.Error()),
		)
		task.job(s.ctx, task.id)
	}
	s.stats.IncreaseTaskFiredCount()
	s.stats.RecordTasksAlive(-1)
}
