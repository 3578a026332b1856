//go:build !linux

package gemmbench

// CountersAvailable always fails outside Linux.
func CountersAvailable() error {
	return ErrCountersUnsupported
}

func measureCounters(fn func() error) (*PerfCounters, error) {
	return nil, ErrCountersUnsupported
}
