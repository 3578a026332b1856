// Package gemmbench reference multiplier backed by a BLAS library
package gemmbench

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// blasBackend names the implementation registered with blas64. Build-tagged
// files replace it when they register a native library.
var blasBackend = "gonum"

// BLASBackend reports which BLAS implementation the reference multiplier
// calls.
func BLASBackend() string {
	return blasBackend
}

// ReferenceMultiplier delegates to the registered BLAS dgemm with row-major
// operands, no transposition, alpha 1 and beta 0, so prior contents of C
// are discarded by the library itself.
type ReferenceMultiplier struct{}

// Name implements Multiplier.
func (ReferenceMultiplier) Name() string { return NameReference }

// Multiply implements Multiplier.
func (ReferenceMultiplier) Multiply(a, b, c *Matrix) error {
	n, err := checkOperands("Reference", a, b, c)
	if err != nil {
		return err
	}
	blas64.Gemm(blas.NoTrans, blas.NoTrans,
		1, general(n, a.data), general(n, b.data),
		0, general(n, c.data))
	return nil
}

func general(n int, data []float64) blas64.General {
	return blas64.General{Rows: n, Cols: n, Stride: n, Data: data}
}
