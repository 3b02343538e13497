package compute

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typelab/typelab/sched"
)

func newTestSquarer(t *testing.T, delay time.Duration) (*Squarer, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	s, err := sched.New(ctx, sched.WithSchedulerName("squarer-test"))
	require.NoError(t, err)
	sq := NewSquarer(s, WithDelay(delay))
	return sq, func() {
		s.Shutdown()
		cancel()
	}
}

func TestSquarer_ResolvesSquareAfterDelay(t *testing.T) {
	const delay = 80 * time.Millisecond
	sq, stop := newTestSquarer(t, delay)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	armedAt := time.Now()
	val, err := sq.SquareAwait(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, float64(25), val)
	assert.GreaterOrEqual(t, time.Since(armedAt), delay,
		"the result must not be observable before the configured delay")
}

func TestSquarer_ZeroResolvesZero(t *testing.T) {
	sq, stop := newTestSquarer(t, 20*time.Millisecond)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	val, err := sq.SquareAwait(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, float64(0), val)
}

func TestSquarer_NegativeRejectsImmediately(t *testing.T) {
	sq, stop := newTestSquarer(t, 500*time.Millisecond)
	defer stop()

	fut := sq.Square(-3)
	// Rejection is synchronous, it does not wait for the delay.
	assert.True(t, fut.Settled())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := fut.Await(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativeInput)
	assert.Contains(t, err.Error(), "value must be non-negative")
	assert.Equal(t, int64(0), sq.scheduler.Len(), "no timer is armed for a rejected input")
}

func TestSquarer_ConcurrentCallsIndependent(t *testing.T) {
	sq, stop := newTestSquarer(t, 50*time.Millisecond)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	futTwo := sq.Square(2)
	futThree := sq.Square(3)

	three, err := futThree.Await(ctx)
	require.NoError(t, err)
	two, err := futTwo.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(4), two)
	assert.Equal(t, float64(9), three)
}

func TestSquarer_RepeatedCallsSameOutcome(t *testing.T) {
	sq, stop := newTestSquarer(t, 10*time.Millisecond)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < 5; i++ {
		val, err := sq.SquareAwait(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, float64(49), val)
	}
}

func TestSquarer_StoppedSchedulerRejects(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s, err := sched.New(ctx)
	require.NoError(t, err)
	sq := NewSquarer(s, WithDelay(10*time.Millisecond))
	s.Shutdown()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	_, err = sq.Square(2).Await(waitCtx)
	assert.ErrorIs(t, err, sched.ErrSchedulerStopped)
}
