package ipc

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/typelab/typelab/lib/infra"
)

var ErrChannelClosed = infra.NewErrorStack("channel has been closed")

type ReadOnlyChannel[T any] interface {
	Wait() <-chan T
}

type SendOnlyChannel[T any] interface {
	Send(v T, nonBlocking ...bool) error
	IsClosed() bool
}

// ClosableChannel is a channel wrapper which makes sure the close
// happens only once and that senders observe the closed state
// instead of panicking on a send to a closed channel.
type ClosableChannel[T any] interface {
	io.Closer
	ReadOnlyChannel[T]
	SendOnlyChannel[T]
}

type safeChannel[T any] struct {
	queueC   chan T
	once     *sync.Once
	isClosed atomic.Bool
}

var _ ClosableChannel[struct{}] = (*safeChannel[struct{}])(nil)

func (c *safeChannel[T]) IsClosed() bool {
	return c.isClosed.Load()
}

func (c *safeChannel[T]) Close() error {
	c.once.Do(func() {
		c.isClosed.Store(true)
	})
	return nil
}

func (c *safeChannel[T]) Wait() <-chan T {
	return c.queueC
}

func (c *safeChannel[T]) Send(v T, nonBlocking ...bool) error {
	if c.isClosed.Load() {
		return ErrChannelClosed
	}
	if len(nonBlocking) > 0 && nonBlocking[0] {
		select {
		case c.queueC <- v:
		default:
		}
		return nil
	}
	c.queueC <- v
	return nil
}

func NewSafeChannel[T any](chSize ...int) ClosableChannel[T] {
	size := 0
	if len(chSize) > 0 && chSize[0] > 0 {
		size = chSize[0]
	}
	return &safeChannel[T]{
		queueC: make(chan T, size),
		once:   &sync.Once{},
	}
}
