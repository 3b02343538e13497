package sched

import (
	"fmt"
	"runtime"

	"github.com/typelab/typelab/lib/hrtime"
	"github.com/typelab/typelab/lib/id"
	"github.com/typelab/typelab/xlog"
)

const (
	defaultMinWorkerPoolSize = 16
	defaultQueueCapacity     = 128
)

type schedulerOption struct {
	name          string
	workerPool    int
	queueCapacity int
	clock         hrtime.Clock
	idGenerator   id.StrGen
	logger        xlog.XLogger
	enableStats   bool
}

func (opt *schedulerOption) getName() string {
	if len(opt.name) <= 0 {
		return fmt.Sprintf("sched-%s", runtime.GOOS)
	}
	return opt.name
}

func (opt *schedulerOption) getWorkerPoolSize() int {
	if opt.workerPool < defaultMinWorkerPoolSize {
		return defaultMinWorkerPoolSize
	}
	return opt.workerPool
}

func (opt *schedulerOption) getQueueCapacity() int {
	if opt.queueCapacity <= 0 {
		return defaultQueueCapacity
	}
	return opt.queueCapacity
}

func (opt *schedulerOption) getClock() hrtime.Clock {
	if opt.clock == nil {
		return hrtime.SdkClock
	}
	return opt.clock
}

func (opt *schedulerOption) getIDGenerator() id.StrGen {
	if opt.idGenerator == nil {
		_, strGen := id.MonotonicNonZeroID()
		opt.idGenerator = strGen
	}
	return opt.idGenerator
}

func (opt *schedulerOption) getLogger() xlog.XLogger {
	if opt.logger == nil {
		opt.logger = xlog.New(xlog.WithName("Sched"))
	}
	return opt.logger
}

type SchedulerOption func(*schedulerOption)

func WithSchedulerName(name string) SchedulerOption {
	return func(opt *schedulerOption) {
		opt.name = name
	}
}

func WithSchedulerWorkerPoolSize(size int) SchedulerOption {
	return func(opt *schedulerOption) {
		if size < defaultMinWorkerPoolSize {
			panic(fmt.Sprintf("scheduler worker pool size must be greater than or equals to %d", defaultMinWorkerPoolSize))
		}
		opt.workerPool = size
	}
}

func WithSchedulerQueueCapacity(capacity int) SchedulerOption {
	return func(opt *schedulerOption) {
		if capacity <= 0 {
			panic("scheduler queue capacity must be positive")
		}
		opt.queueCapacity = capacity
	}
}

func WithSchedulerClock(clock hrtime.Clock) SchedulerOption {
	return func(opt *schedulerOption) {
		if clock == nil {
			panic("scheduler clock must be not nil")
		}
		opt.clock = clock
	}
}

func WithSchedulerLogger(logger xlog.XLogger) SchedulerOption {
	return func(opt *schedulerOption) {
		opt.logger = logger
	}
}

func WithSchedulerStats() SchedulerOption {
	return func(opt *schedulerOption) {
		opt.enableStats = true
	}
}
