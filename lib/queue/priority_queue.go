package queue

import (
	"container/heap"
	"sync"
)

// Item is a read-only view of a queued element.
type Item[E any] interface {
	Value() E
	Priority() int64
	Index() int64
}

type pqItem[E any] struct {
	value    E
	priority int64
	index    int64
}

func (item *pqItem[E]) Value() (val E) {
	if item == nil {
		return
	}
	return item.value
}

func (item *pqItem[E]) Priority() int64 {
	if item == nil {
		return -1
	}
	return item.priority
}

func (item *pqItem[E]) Index() int64 {
	if item == nil {
		return -1
	}
	return item.index
}

// arrayPQ adapts the item slice to container/heap. Lower priority
// value means closer to the head.
type arrayPQ[E any] []*pqItem[E]

func (pq arrayPQ[E]) Len() int           { return len(pq) }
func (pq arrayPQ[E]) Less(i, j int) bool { return pq[i].priority < pq[j].priority }
func (pq arrayPQ[E]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = int64(i)
	pq[j].index = int64(j)
}

func (pq *arrayPQ[E]) Push(i any) {
	item, ok := i.(*pqItem[E])
	if !ok {
		return
	}
	item.index = int64(len(*pq))
	*pq = append(*pq, item)
}

func (pq *arrayPQ[E]) Pop() any {
	prev := *pq
	n := len(prev)
	if n <= 0 {
		return nil
	}
	item := prev[n-1]
	item.index = -1
	prev[n-1] = nil
	*pq = prev[:n-1]
	return item
}

// PriorityQueue is a binary-heap priority queue. All operations are
// guarded by one mutex; the scheduler shares it between the producer
// goroutines and the single poller.
type PriorityQueue[E any] struct {
	arr  arrayPQ[E]
	lock sync.Mutex
}

func NewPriorityQueue[E any](capacity int) *PriorityQueue[E] {
	if capacity <= 0 {
		capacity = 64
	}
	return &PriorityQueue[E]{
		arr: make(arrayPQ[E], 0, capacity),
	}
}

func (pq *PriorityQueue[E]) Len() int64 {
	pq.lock.Lock()
	defer pq.lock.Unlock()
	return int64(len(pq.arr))
}

// Push enqueues val and reports whether it became the new head.
func (pq *PriorityQueue[E]) Push(val E, priority int64) bool {
	item := &pqItem[E]{value: val, priority: priority}
	pq.lock.Lock()
	defer pq.lock.Unlock()
	heap.Push(&pq.arr, item)
	return item.index == 0
}

func (pq *PriorityQueue[E]) Peek() Item[E] {
	pq.lock.Lock()
	defer pq.lock.Unlock()
	if len(pq.arr) == 0 {
		return nil
	}
	return pq.arr[0]
}

func (pq *PriorityQueue[E]) Pop() Item[E] {
	pq.lock.Lock()
	defer pq.lock.Unlock()
	if len(pq.arr) == 0 {
		return nil
	}
	return heap.Pop(&pq.arr).(*pqItem[E])
}
