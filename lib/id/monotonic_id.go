package id

import (
	"strconv"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Gen generates the next numeric ID.
type Gen func() uint64

// StrGen generates the next ID rendered as a decimal string.
type StrGen func() string

const cacheLinePadSize = unsafe.Sizeof(cpu.CacheLinePad{})

// monotonicNonZeroID only increases; on overflow it wraps back to 1.
// The counter occupies a whole cache line to avoid false sharing with
// neighboring allocations.
type monotonicNonZeroID struct {
	_   [cacheLinePadSize - unsafe.Sizeof(*new(uint64))]byte
	val uint64
	_   [cacheLinePadSize - unsafe.Sizeof(*new(uint64))]byte
}

func (id *monotonicNonZeroID) next() uint64 {
	var v uint64
	if v = atomic.AddUint64(&id.val, 1); v == 0 {
		v = atomic.AddUint64(&id.val, 1)
	}
	return v
}

// MonotonicNonZeroID returns a pair of generators sharing one counter.
func MonotonicNonZeroID() (Gen, StrGen) {
	src := &monotonicNonZeroID{}
	return src.next, func() string {
		return strconv.FormatUint(src.next(), 10)
	}
}
