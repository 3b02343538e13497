package id

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonotonicNonZeroID_Sequential(t *testing.T) {
	gen, strGen := MonotonicNonZeroID()
	assert.Equal(t, uint64(1), gen())
	assert.Equal(t, uint64(2), gen())
	assert.Equal(t, "3", strGen())
}

func TestMonotonicNonZeroID_ConcurrentUnique(t *testing.T) {
	gen, _ := MonotonicNonZeroID()
	const (
		workers = 8
		rounds  = 1000
	)
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[uint64]struct{}, workers*rounds)
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			local := make([]uint64, 0, rounds)
			for j := 0; j < rounds; j++ {
				local = append(local, gen())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, v := range local {
				ids[v] = struct{}{}
			}
		}()
	}
	wg.Wait()
	require.Len(t, ids, workers*rounds)
	_, zero := ids[0]
	assert.False(t, zero)
}
