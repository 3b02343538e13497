package async

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuture_ResolveOnce(t *testing.T) {
	f := NewFuture[int]()
	assert.False(t, f.Settled())
	assert.True(t, f.Resolve(42))
	assert.False(t, f.Resolve(43))
	assert.False(t, f.Reject(errors.New("late")))
	assert.True(t, f.Settled())

	val, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, val)
}

func TestFuture_RejectOnce(t *testing.T) {
	boom := errors.New("boom")
	f := NewFuture[int]()
	assert.True(t, f.Reject(boom))
	assert.False(t, f.Resolve(1))

	_, err := f.Await(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFuture_AwaitContextCancelled(t *testing.T) {
	f := NewFuture[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The abandoned Await does not affect the pending outcome.
	assert.True(t, f.Resolve(7))
	val, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, val)
}

func TestFuture_ManyWaitersOneOutcome(t *testing.T) {
	f := NewFuture[string]()
	const waiters = 16
	var wg sync.WaitGroup
	results := make([]string, waiters)
	wg.Add(waiters)
	for i := 0; i < waiters; i++ {
		go func(i int) {
			defer wg.Done()
			val, err := f.Await(context.Background())
			assert.NoError(t, err)
			results[i] = val
		}(i)
	}
	assert.True(t, f.Resolve("done"))
	wg.Wait()
	for _, v := range results {
		assert.Equal(t, "done", v)
	}
}

func TestFuture_ConcurrentSettleSingleWinner(t *testing.T) {
	f := NewFuture[int]()
	winners := make(chan bool, 32)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			winners <- f.Resolve(i)
		}(i)
		go func(i int) {
			defer wg.Done()
			winners <- f.Reject(errors.New("x"))
		}(i)
	}
	wg.Wait()
	close(winners)
	winCount := 0
	for won := range winners {
		if won {
			winCount++
		}
	}
	assert.Equal(t, 1, winCount)
}

func TestRun(t *testing.T) {
	f := Run(func() (int, error) {
		return 21 * 2, nil
	})
	val, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, val)

	boom := errors.New("boom")
	ff := Run(func() (int, error) {
		return 0, boom
	})
	_, err = ff.Await(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestResolvedAndRejected(t *testing.T) {
	val, err := Resolved(5).Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, val)

	boom := errors.New("boom")
	_, err = Rejected[int](boom).Await(context.Background())
	assert.ErrorIs(t, err, boom)
}
