package gemmbench

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mustMatrix builds an n×n matrix from row-major values and fails the test
// on error.
func mustMatrix(t testing.TB, n int, vals ...float64) *Matrix {
	t.Helper()
	var m *Matrix
	var err error
	if vals == nil {
		m, err = NewMatrix(n)
	} else {
		m, err = NewMatrixFrom(n, vals)
	}
	require.NoError(t, err)
	return m
}

// randomMatrix returns an n×n matrix filled from seed.
func randomMatrix(t testing.TB, n int, seed int64) *Matrix {
	t.Helper()
	m := mustMatrix(t, n)
	FillRandom(m, NewRand(seed))
	return m
}

// dirtyMatrix returns an n×n matrix full of a non-zero sentinel, to catch
// multipliers that accumulate onto prior contents.
func dirtyMatrix(t testing.TB, n int) *Matrix {
	t.Helper()
	m := mustMatrix(t, n)
	for i := range m.Data() {
		m.Data()[i] = -12345
	}
	return m
}

// allMultipliers returns one instance of each strategy, with the blocked
// kernel using block.
func allMultipliers(block int) []Multiplier {
	return []Multiplier{
		NaiveMultiplier{},
		ReferenceMultiplier{},
		NewBlockedMultiplier(block),
		&BlockedMultiplier{Block: block, Workers: 4},
	}
}

// multiplyOrFail runs m and fails the test on error.
func multiplyOrFail(t testing.TB, m Multiplier, a, b *Matrix) *Matrix {
	t.Helper()
	c := dirtyMatrix(t, a.N())
	require.NoError(t, m.Multiply(a, b, c), "%s.Multiply", m.Name())
	return c
}
