package gemmbench

import (
	"errors"
	"fmt"
)

// ErrCountersUnsupported is returned where hardware counters cannot be read.
var ErrCountersUnsupported = errors.New("hardware counters not supported on this platform")

// PerfCounters holds hardware counter readings for one timed multiplication.
// Readings cover the calling OS thread only, so with Workers > 1 they miss
// the row tiles computed on other threads.
type PerfCounters struct {
	Cycles       uint64 `json:"cycles"`
	Instructions uint64 `json:"instructions"`
	CacheMisses  uint64 `json:"cache_misses"`
	L1DMisses    uint64 `json:"l1d_misses"`
	LLCMisses    uint64 `json:"llc_misses"`
}

// IPC returns instructions per cycle, or 0 when no cycles were counted.
func (c PerfCounters) IPC() float64 {
	if c.Cycles == 0 {
		return 0
	}
	return float64(c.Instructions) / float64(c.Cycles)
}

// String formats the counters for the text report.
func (c PerfCounters) String() string {
	return fmt.Sprintf("%d cycles, %.2f IPC, %d L1D misses, %d LLC misses",
		c.Cycles, c.IPC(), c.L1DMisses, c.LLCMisses)
}

// perfEvent names one counter and where its reading lands.
type perfEvent struct {
	name  string
	typ   uint32
	event uint64
	dst   func(*PerfCounters) *uint64
}
