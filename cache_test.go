package gemmbench

import "testing"

func TestFlushCaches(t *testing.T) {
	// Must not panic on sizes that are not a multiple of a cache line
	FlushCaches(1)
	FlushCaches(cacheLine*3 + 5)
	if testing.Short() {
		return
	}
	FlushCaches(0)
}
