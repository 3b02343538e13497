package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typelab/typelab/lib/ipc"
)

func TestDelayQueue_DeliversInExpirationOrder(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	dq := NewDelayQueue[string](ctx, 8)
	sender := ipc.NewSafeChannel[string](8)
	go dq.PollToChan(func() int64 {
		return time.Now().UnixMilli()
	}, sender)

	now := time.Now().UnixMilli()
	dq.Offer("second", now+60)
	dq.Offer("first", now+20)
	dq.Offer("third", now+100)
	assert.Equal(t, int64(3), dq.Len())

	var got []string
	for i := 0; i < 3; i++ {
		select {
		case v := <-sender.Wait():
			got = append(got, v)
		case <-ctx.Done():
			t.Fatal("timed out waiting for expired items")
		}
	}
	assert.Equal(t, []string{"first", "second", "third"}, got)
	assert.Equal(t, int64(0), dq.Len())
}

func TestDelayQueue_WakeUpOnEarlierHead(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	dq := NewDelayQueue[string](ctx, 8)
	sender := ipc.NewSafeChannel[string](8)
	go dq.PollToChan(func() int64 {
		return time.Now().UnixMilli()
	}, sender)

	now := time.Now().UnixMilli()
	dq.Offer("late", now+800)
	// The poller is now asleep waiting for "late"; an earlier item
	// must preempt that wait.
	dq.Offer("early", now+20)

	select {
	case v := <-sender.Wait():
		assert.Equal(t, "early", v)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("earlier item did not preempt the armed wait")
	}
}

func TestDelayQueue_OfferRacesWithFallingAsleep(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dq := NewDelayQueue[int](ctx, 8)
	sender := ipc.NewSafeChannel[int](8)
	go dq.PollToChan(func() int64 { return time.Now().UnixMilli() }, sender)

	// Each round drains the queue to empty first, so the offer lands
	// exactly while the poller is going to sleep. A lost wake-up
	// signal leaves the round's item undelivered until the next
	// offer, which this test never issues.
	for i := 0; i < 200; i++ {
		dq.Offer(i, time.Now().UnixMilli())
		select {
		case v := <-sender.Wait():
			require.Equal(t, i, v)
		case <-time.After(time.Second):
			t.Fatalf("item %d was not delivered, wake-up signal lost", i)
		}
	}
}

func TestDelayQueue_StopsOnContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	dq := NewDelayQueue[int](ctx, 4)
	sender := ipc.NewSafeChannel[int](4)

	doneC := make(chan struct{})
	go func() {
		defer close(doneC)
		dq.PollToChan(func() int64 { return time.Now().UnixMilli() }, sender)
	}()

	cancel()
	select {
	case <-doneC:
	case <-time.After(time.Second):
		t.Fatal("poller did not exit on context cancellation")
	}
	require.NoError(t, sender.Close())
}
