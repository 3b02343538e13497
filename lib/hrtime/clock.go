package hrtime

import (
	"sync"
	"time"
)

// Clock is the time source seam of the scheduler. It exists so the
// delay tests are able to steer time deterministically instead of
// sleeping for real wall-clock durations.
type Clock interface {
	Now() time.Time
	Since(time.Time) time.Duration
	MonotonicElapsed() time.Duration
}

var (
	_ Clock = (*sdkClock)(nil)
	_ Clock = (*ManualClock)(nil)

	// SdkClock is the default, Go SDK backed wall clock.
	SdkClock Clock = &sdkClock{startedAt: time.Now()}
)

type sdkClock struct {
	startedAt time.Time
}

func (c *sdkClock) Now() time.Time {
	return time.Now()
}

func (c *sdkClock) Since(ts time.Time) time.Duration {
	return time.Since(ts)
}

func (c *sdkClock) MonotonicElapsed() time.Duration {
	return time.Since(c.startedAt)
}

// ManualClock only moves when Advance is called.
type ManualClock struct {
	mu        sync.RWMutex
	now       time.Time
	startedAt time.Time
}

func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{
		now:       now,
		startedAt: now,
	}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *ManualClock) Since(ts time.Time) time.Duration {
	return c.Now().Sub(ts)
}

func (c *ManualClock) MonotonicElapsed() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now.Sub(c.startedAt)
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
