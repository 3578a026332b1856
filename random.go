package gemmbench

import (
	"math/rand"
	"time"
)

// ResolveSeed returns seed unchanged unless it is 0, in which case a seed is
// derived from the wall clock. The resolved value is what a report prints,
// so any run can be replayed with -seed.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	s := time.Now().UnixNano()
	if s == 0 {
		s = 1
	}
	return s
}

// NewRand returns a generator for the given seed after ResolveSeed.
// math/rand.Rand is not safe for concurrent use; give each goroutine its own.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(ResolveSeed(seed)))
}

// FillRandom sets every element of m to an integer-valued double in
// [0, FillRange). Small integers keep every partial sum exactly
// representable for the orders this benchmark uses.
func FillRandom(m *Matrix, rng *rand.Rand) {
	for i := range m.data {
		m.data[i] = float64(rng.Intn(FillRange))
	}
}
