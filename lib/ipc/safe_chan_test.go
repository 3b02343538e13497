package ipc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeChannel_SendAndWait(t *testing.T) {
	ch := NewSafeChannel[int](2)
	require.NoError(t, ch.Send(1))
	require.NoError(t, ch.Send(2))
	assert.Equal(t, 1, <-ch.Wait())
	assert.Equal(t, 2, <-ch.Wait())
}

func TestSafeChannel_CloseIsIdempotent(t *testing.T) {
	ch := NewSafeChannel[int](1)
	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close())
	assert.True(t, ch.IsClosed())
	assert.ErrorIs(t, ch.Send(1), ErrChannelClosed)
}

func TestSafeChannel_NonBlockingSendDropsWhenFull(t *testing.T) {
	ch := NewSafeChannel[int](1)
	require.NoError(t, ch.Send(1, true))
	// Buffer full, the non-blocking send must not block the caller.
	require.NoError(t, ch.Send(2, true))
	assert.Equal(t, 1, <-ch.Wait())
	select {
	case v := <-ch.Wait():
		t.Fatalf("unexpected value %d", v)
	default:
	}
}
