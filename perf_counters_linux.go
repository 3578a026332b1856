//go:build linux

package gemmbench

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// cacheEvent encodes a PERF_TYPE_HW_CACHE config.
func cacheEvent(cache, op, result uint64) uint64 {
	return cache | op<<8 | result<<16
}

var perfEvents = []perfEvent{
	{"cycles", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CPU_CYCLES,
		func(c *PerfCounters) *uint64 { return &c.Cycles }},
	{"instructions", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_INSTRUCTIONS,
		func(c *PerfCounters) *uint64 { return &c.Instructions }},
	{"cache-misses", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CACHE_MISSES,
		func(c *PerfCounters) *uint64 { return &c.CacheMisses }},
	{"L1-dcache-load-misses", unix.PERF_TYPE_HW_CACHE,
		cacheEvent(unix.PERF_COUNT_HW_CACHE_L1D, unix.PERF_COUNT_HW_CACHE_OP_READ, unix.PERF_COUNT_HW_CACHE_RESULT_MISS),
		func(c *PerfCounters) *uint64 { return &c.L1DMisses }},
	{"LLC-load-misses", unix.PERF_TYPE_HW_CACHE,
		cacheEvent(unix.PERF_COUNT_HW_CACHE_LL, unix.PERF_COUNT_HW_CACHE_OP_READ, unix.PERF_COUNT_HW_CACHE_RESULT_MISS),
		func(c *PerfCounters) *uint64 { return &c.LLCMisses }},
}

// counterGroup is a set of open perf_event file descriptors for the
// calling thread.
type counterGroup struct {
	fds []int
}

// openCounters opens every event for the calling thread, disabled. The
// caller must hold runtime.LockOSThread until close.
func openCounters() (*counterGroup, error) {
	g := &counterGroup{fds: make([]int, 0, len(perfEvents))}
	for _, ev := range perfEvents {
		attr := unix.PerfEventAttr{
			Type:   ev.typ,
			Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
			Config: ev.event,
			Bits:   unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
		}
		fd, err := unix.PerfEventOpen(&attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
		if err != nil {
			g.close()
			return nil, fmt.Errorf("failed to open perf event %s: %w", ev.name, err)
		}
		g.fds = append(g.fds, fd)
	}
	return g, nil
}

func (g *counterGroup) start() error {
	for _, fd := range g.fds {
		if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_RESET, 0); err != nil {
			return err
		}
		if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_ENABLE, 0); err != nil {
			return err
		}
	}
	return nil
}

// stop disables the counters and reads them.
func (g *counterGroup) stop() (*PerfCounters, error) {
	for _, fd := range g.fds {
		if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_DISABLE, 0); err != nil {
			return nil, err
		}
	}

	counters := &PerfCounters{}
	var buf [8]byte
	for i, fd := range g.fds {
		n, err := unix.Read(fd, buf[:])
		if err != nil {
			return nil, fmt.Errorf("failed to read perf event %s: %w", perfEvents[i].name, err)
		}
		if n != len(buf) {
			return nil, fmt.Errorf("short read from perf event %s: %d bytes", perfEvents[i].name, n)
		}
		*perfEvents[i].dst(counters) = binary.NativeEndian.Uint64(buf[:])
	}
	return counters, nil
}

func (g *counterGroup) close() {
	for _, fd := range g.fds {
		unix.Close(fd)
	}
	g.fds = nil
}

// CountersAvailable reports whether hardware counters can be opened by this
// process. A restrictive kernel.perf_event_paranoid or a container without
// CAP_PERFMON makes it fail.
func CountersAvailable() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	g, err := openCounters()
	if err != nil {
		return err
	}
	g.close()
	return nil
}

// measureCounters runs fn with hardware counters enabled on the calling
// thread and returns the counts alongside fn's error.
func measureCounters(fn func() error) (*PerfCounters, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	g, err := openCounters()
	if err != nil {
		return nil, err
	}
	defer g.close()

	if err := g.start(); err != nil {
		return nil, err
	}
	if err := fn(); err != nil {
		return nil, err
	}
	return g.stop()
}
