package queue

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/typelab/typelab/lib/ipc"
)

type sleepEnum = int32

const (
	wokeUp sleepEnum = iota
	fallAsleep
)

// DelayQueue delivers each offered element to the consumer channel
// once its expiration timestamp (in milliseconds) has been reached.
// It is the engine under the scheduler: one poller goroutine sleeps
// until the head of the priority queue expires, new head elements
// wake it up early.
type DelayQueue[E any] struct {
	pq                  *PriorityQueue[E]
	workCtx             context.Context
	wakeUpC             chan struct{}
	waitForNextExpItemC chan struct{}
	itemCounter         atomic.Int64
	sleeping            int32
}

func NewDelayQueue[E any](ctx context.Context, capacity int) *DelayQueue[E] {
	return &DelayQueue[E]{
		pq:                  NewPriorityQueue[E](capacity),
		workCtx:             ctx,
		wakeUpC:             make(chan struct{}),
		waitForNextExpItemC: make(chan struct{}),
	}
}

func (dq *DelayQueue[E]) Len() int64 {
	if dq == nil {
		return 0
	}
	return dq.itemCounter.Load()
}

// Offer enqueues val to expire at expirationMs. If val becomes the
// new earliest element, a sleeping poller is woken up.
func (dq *DelayQueue[E]) Offer(val E, expirationMs int64) {
	newHead := dq.pq.Push(val, expirationMs)
	if newHead {
		if atomic.CompareAndSwapInt32(&dq.sleeping, fallAsleep, wokeUp) {
			dq.wakeUpC <- struct{}{}
		}
	}
	dq.itemCounter.Add(1)
}

func (dq *DelayQueue[E]) popIfExpired(expiredBoundary int64) (val E, deltaMs int64, ok bool) {
	item := dq.pq.Peek()
	if item == nil {
		return val, 0, false
	}
	// Priority is the expiration timestamp.
	if exp := item.Priority(); exp > expiredBoundary {
		return val, exp - expiredBoundary, false
	}
	return dq.pq.Pop().Value(), 0, true
}

// PollToChan runs until the work context is done or the sender is
// closed. Expired elements are pushed to the sender in expiration
// order.
func (dq *DelayQueue[E]) PollToChan(nowFn func() int64, sender ipc.SendOnlyChannel[E]) {
	var timer *time.Timer
	defer func() {
		atomic.StoreInt32(&dq.sleeping, wokeUp)
		if timer != nil {
			timer.Stop()
			timer = nil
		}
	}()
	for {
		now := nowFn()
		val, deltaMs, expired := dq.popIfExpired(now)
		if !expired {
			// 1. without any item in the queue
			// 2. all items in the queue are not expired
			atomic.StoreInt32(&dq.sleeping, fallAsleep)

			// An Offer racing with the store above still observes
			// wokeUp and sends no wake signal. Re-check the head once
			// so that offer is not lost until the next one.
			if item := dq.pq.Peek(); item != nil && (deltaMs == 0 || item.Priority() < now+deltaMs) {
				if atomic.CompareAndSwapInt32(&dq.sleeping, fallAsleep, wokeUp) {
					continue
				}
				// CAS lost: a waker already swapped the state and its
				// signal is in flight; fall through and receive it.
			}

			if deltaMs == 0 {
				select {
				case <-dq.workCtx.Done():
					return
				case <-dq.wakeUpC:
					continue
				}
			}

			if timer != nil {
				timer.Stop()
			}
			// Avoid time.After here, it arms a new timer on every
			// loop round and the unexpired ones pile up until GC.
			timer = time.AfterFunc(time.Duration(deltaMs)*time.Millisecond, func() {
				if atomic.SwapInt32(&dq.sleeping, wokeUp) == fallAsleep {
					dq.waitForNextExpItemC <- struct{}{}
				}
			})
			select {
			case <-dq.workCtx.Done():
				return
			case <-dq.wakeUpC:
				continue
			case <-dq.waitForNextExpItemC:
				if timer != nil {
					timer.Stop()
					timer = nil
				}
				continue
			}
		}

		if timer != nil {
			timer.Stop()
			timer = nil
		}

		select {
		case <-dq.workCtx.Done():
			return
		default:
			if sender.IsClosed() {
				return
			}
			if err := sender.Send(val); err != nil {
				return
			}
			dq.itemCounter.Add(-1)
		}
	}
}
