package gemmbench

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSeed(t *testing.T) {
	assert.Equal(t, int64(42), ResolveSeed(42))
	assert.Equal(t, int64(-3), ResolveSeed(-3))
	assert.NotZero(t, ResolveSeed(0))
}

func TestFillRandomRange(t *testing.T) {
	m := randomMatrix(t, 40, 9)
	for i, v := range m.Data() {
		assert.GreaterOrEqual(t, v, 0.0, "element %d", i)
		assert.Less(t, v, float64(FillRange), "element %d", i)
		assert.Equal(t, math.Trunc(v), v, "element %d is not integer-valued", i)
	}
}

func TestFillRandomDeterministic(t *testing.T) {
	a := randomMatrix(t, 16, 1234)
	b := randomMatrix(t, 16, 1234)
	c := randomMatrix(t, 16, 1235)

	assert.True(t, ExactEqual(a, b), "same seed must give the same matrix")
	assert.False(t, ExactEqual(a, c), "different seeds should differ")
}
