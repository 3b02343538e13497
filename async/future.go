// Package async provides a one-shot future: an outcome slot that is
// pending until it is resolved with a value or rejected with an
// error, exactly once.
package async

import (
	"context"
	"sync/atomic"

	"github.com/typelab/typelab/lib/infra"
)

type futureState = int32

const (
	statePending futureState = iota
	stateSettling
	stateResolved
	stateRejected
)

// Future is a single-assignment asynchronous result of T.
//
// Resolve and Reject are first-write-wins; every later transition
// attempt is ignored. Await never blocks the producer side: the
// timer (or goroutine) that settles the future and the consumers
// waiting on it are fully decoupled.
type Future[T any] struct {
	value T
	err   error
	doneC chan struct{}
	state atomic.Int32
}

func NewFuture[T any]() *Future[T] {
	return &Future[T]{
		doneC: make(chan struct{}),
	}
}

// Resolve moves the future to its terminal success state and
// reports whether this call won the transition.
func (f *Future[T]) Resolve(val T) bool {
	if !f.state.CompareAndSwap(statePending, stateSettling) {
		return false
	}
	f.value = val
	f.state.Store(stateResolved)
	close(f.doneC)
	return true
}

// Reject moves the future to its terminal failure state and reports
// whether this call won the transition.
func (f *Future[T]) Reject(err error) bool {
	if !f.state.CompareAndSwap(statePending, stateSettling) {
		return false
	}
	if err == nil {
		err = infra.NewErrorStack("future rejected with nil error")
	}
	f.err = err
	f.state.Store(stateRejected)
	close(f.doneC)
	return true
}

// Done is closed once the future reached a terminal state.
func (f *Future[T]) Done() <-chan struct{} {
	return f.doneC
}

// Settled reports whether the future reached a terminal state.
func (f *Future[T]) Settled() bool {
	state := f.state.Load()
	return state == stateResolved || state == stateRejected
}

// Await blocks the calling goroutine until the future settles or
// ctx is done. Abandoning an Await does not unsettle anything; the
// armed outcome still arrives for other waiters.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, context.Cause(ctx)
	case <-f.doneC:
		return f.value, f.err
	}
}

// Resolved returns a future already settled with val.
func Resolved[T any](val T) *Future[T] {
	f := NewFuture[T]()
	f.Resolve(val)
	return f
}

// Rejected returns a future already settled with err.
func Rejected[T any](err error) *Future[T] {
	f := NewFuture[T]()
	f.Reject(err)
	return f
}

// Run executes fn on its own goroutine and settles the returned
// future with its outcome.
func Run[T any](fn func() (T, error)) *Future[T] {
	f := NewFuture[T]()
	go func() {
		val, err := fn()
		if err != nil {
			f.Reject(err)
			return
		}
		f.Resolve(val)
	}()
	return f
}
