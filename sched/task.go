package sched

import (
	"context"
)

type TaskID string

// Job is the closure fired once the task's delay elapses. It runs on
// the scheduler's worker pool, not on the poller goroutine.
type Job func(ctx context.Context, id TaskID)

// Task is a one-shot armed job. There is no cancellation: once a
// task is armed its timer always fires.
type Task struct {
	id        TaskID
	job       Job
	expiredMs int64
	armedMs   int64
}

func (t *Task) ID() TaskID {
	return t.id
}

// ExpiredMs is the unix-milli timestamp the task fires at.
func (t *Task) ExpiredMs() int64 {
	return t.expiredMs
}

// ArmedMs is the unix-milli timestamp the task was armed at.
func (t *Task) ArmedMs() int64 {
	return t.armedMs
}
