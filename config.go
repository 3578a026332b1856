// Package gemmbench configuration constants
package gemmbench

import (
	"fmt"
)

// Cache sizes for different levels (in bytes)
const (
	// L1 cache size per core (typical for modern CPUs)
	L1CacheSize = 32 * 1024 // 32KB

	// L2 cache size per core (typical for modern CPUs)
	L2CacheSize = 256 * 1024 // 256KB

	// L3 cache size (shared, typical for modern CPUs)
	L3CacheSize = 8 * 1024 * 1024 // 8MB
)

// Performance tuning parameters
const (
	// Tile width for the blocked kernel. Three 64x64 float64 tiles take 96KB,
	// which fits in a typical L2.
	MatrixTileSize = 64

	// Default matrix order for a benchmark run
	DefaultMatrixSize = 2048

	// Exclusive upper bound of the random integer fill
	FillRange = 100

	// Size of the excerpt printed for each product
	CornerSize = 2

	// Bytes touched by a cold-cache flush
	CacheFlushSize = 8 * L3CacheSize
)

// Config describes one benchmark run.
type Config struct {
	// N is the order of every matrix in the run.
	N int

	// BlockSize is the tile width of the blocked kernel.
	BlockSize int

	// Workers is the number of goroutines the blocked kernel spreads row
	// tiles across. 1 keeps it single-threaded.
	Workers int

	// Seed for the input generator. 0 derives one from the wall clock.
	Seed int64

	// Tolerance used for the match verdict.
	Tolerance ToleranceConfig

	// ColdCache flushes CPU caches before every timed multiplication.
	ColdCache bool

	// Counters reads hardware performance counters around every timed
	// multiplication where the platform allows it.
	Counters bool
}

// DefaultConfig returns the configuration of the classic run: 2048x2048
// matrices, 64-wide tiles, one thread, clock-derived seed.
func DefaultConfig() Config {
	return Config{
		N:         DefaultMatrixSize,
		BlockSize: MatrixTileSize,
		Workers:   1,
		Tolerance: GEMMTolerance(),
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.N <= 0 {
		return NewInvalidArgError("Config", fmt.Sprintf("matrix size must be positive, got %d", c.N))
	}
	if c.BlockSize <= 0 {
		return NewInvalidArgError("Config", fmt.Sprintf("block size must be positive, got %d", c.BlockSize))
	}
	if c.Workers <= 0 {
		return NewInvalidArgError("Config", fmt.Sprintf("workers must be positive, got %d", c.Workers))
	}
	if c.Tolerance.AbsTol < 0 || c.Tolerance.RelTol < 0 {
		return NewInvalidArgError("Config", "tolerances must be non-negative")
	}
	return nil
}

// Flops returns the floating-point operation count of one n×n product,
// counting a multiply and an add per inner step.
func Flops(n int) int64 {
	nn := int64(n)
	return 2 * nn * nn * nn
}
