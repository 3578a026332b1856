package gemmbench

import (
	"runtime"
)

// cacheLine is the stride used to touch memory during a flush.
const cacheLine = 64

// flushSink keeps the flush loop observable so it is not optimized away.
var flushSink byte

// FlushCaches evicts the operands of the previous multiplication by
// allocating size bytes and touching every cache line twice with different
// patterns. size <= 0 uses CacheFlushSize.
func FlushCaches(size int) {
	if size <= 0 {
		size = CacheFlushSize
	}
	data := make([]byte, size)

	for i := 0; i < len(data); i += cacheLine {
		data[i] = byte(i % 256)
	}
	// Second pass with a different pattern to force replacement
	var acc byte
	for i := 0; i < len(data); i += cacheLine {
		data[i] = byte((i * 7) % 256)
		acc ^= data[i]
	}
	flushSink = acc

	runtime.GC()
}
