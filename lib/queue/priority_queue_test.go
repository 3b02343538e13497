package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueue_PopInPriorityOrder(t *testing.T) {
	pq := NewPriorityQueue[string](8)
	assert.True(t, pq.Push("c", 30))
	assert.True(t, pq.Push("a", 10))
	assert.False(t, pq.Push("b", 20))
	assert.Equal(t, int64(3), pq.Len())

	head := pq.Peek()
	require.NotNil(t, head)
	assert.Equal(t, "a", head.Value())
	assert.Equal(t, int64(10), head.Priority())

	var popped []string
	for item := pq.Pop(); item != nil; item = pq.Pop() {
		popped = append(popped, item.Value())
	}
	assert.Equal(t, []string{"a", "b", "c"}, popped)
	assert.Equal(t, int64(0), pq.Len())
}

func TestPriorityQueue_EmptyPeekAndPop(t *testing.T) {
	pq := NewPriorityQueue[int](0)
	assert.Nil(t, pq.Peek())
	assert.Nil(t, pq.Pop())
}

func TestPriorityQueue_NewHeadReported(t *testing.T) {
	pq := NewPriorityQueue[int](4)
	assert.True(t, pq.Push(1, 100))
	assert.True(t, pq.Push(2, 50), "earlier priority must become the new head")
	assert.False(t, pq.Push(3, 75))
}
