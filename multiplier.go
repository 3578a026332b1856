package gemmbench

// Multiplier computes C = A × B for square matrices of one order.
// Implementations overwrite C; prior contents never leak into the result.
// A and B are read-only, and C must not alias either of them.
type Multiplier interface {
	Name() string
	Multiply(a, b, c *Matrix) error
}

// Strategy names used in reports and session logs.
const (
	NameNaive     = "naive"
	NameReference = "reference"
	NameBlocked   = "blocked"
)
