// Package gemmbench tolerance-based verification for floating-point comparisons
package gemmbench

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// ToleranceConfig defines tolerance parameters for floating-point comparison.
// Two values match if they are within AbsTol or RelTol of each other, or
// within ULPTol units in the last place.
type ToleranceConfig struct {
	// AbsTol is the absolute tolerance for values near zero
	AbsTol float64

	// RelTol is the relative tolerance as a fraction of the larger value
	RelTol float64

	// ULPTol is the maximum allowed difference in ULPs (Units in Last Place)
	ULPTol uint
}

// DefaultTolerance returns the match-verdict tolerance for architectures that
// round every multiply and add separately.
func DefaultTolerance() ToleranceConfig {
	return ToleranceConfig{
		AbsTol: 1e-9,
		RelTol: 1e-12,
		ULPTol: 4,
	}
}

// StrictTolerance only accepts values one ULP apart.
func StrictTolerance() ToleranceConfig {
	return ToleranceConfig{
		ULPTol: 1,
	}
}

// RelaxedTolerance returns relaxed tolerance for long reductions over
// non-integer data.
func RelaxedTolerance() ToleranceConfig {
	return ToleranceConfig{
		AbsTol: 1e-6,
		RelTol: 1e-9,
		ULPTol: 64,
	}
}

// NearEqual checks if two values are equal within tolerance. NaN never
// matches anything.
func NearEqual(a, b float64, tol ToleranceConfig) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if a == b {
		return true
	}
	if scalar.EqualWithinAbsOrRel(a, b, tol.AbsTol, tol.RelTol) {
		return true
	}
	return tol.ULPTol > 0 && scalar.EqualWithinULP(a, b, tol.ULPTol)
}

// VerificationResult summarizes an element-wise comparison.
type VerificationResult struct {
	MaxAbsError float64
	MaxRelError float64
	NumErrors   int
	TotalItems  int
	FirstError  int // Index of first error, -1 if none
}

// Verify compares actual against expected element-wise. Matrices of
// different orders fail every element.
func Verify(expected, actual *Matrix, tol ToleranceConfig) VerificationResult {
	result := VerificationResult{
		TotalItems: len(expected.data),
		FirstError: -1,
	}

	if expected.n != actual.n {
		result.NumErrors = len(expected.data)
		result.FirstError = 0
		return result
	}

	for i, want := range expected.data {
		got := actual.data[i]
		if NearEqual(want, got, tol) {
			continue
		}
		result.NumErrors++
		if result.FirstError == -1 {
			result.FirstError = i
		}

		absDiff := math.Abs(want - got)
		if absDiff > result.MaxAbsError || math.IsNaN(absDiff) {
			result.MaxAbsError = absDiff
		}
		if want != 0 {
			relDiff := absDiff / math.Abs(want)
			if relDiff > result.MaxRelError {
				result.MaxRelError = relDiff
			}
		}
	}

	return result
}

// OK reports whether every element matched.
func (r VerificationResult) OK() bool {
	return r.NumErrors == 0
}

// String formats the verification result for display
func (r VerificationResult) String() string {
	if r.NumErrors == 0 {
		return "PASS: All values match within tolerance"
	}

	errorRate := float64(r.NumErrors) / float64(r.TotalItems) * 100
	return fmt.Sprintf("FAIL: %d/%d values differ (%.2f%%)\n"+
		"  Max absolute error: %e\n"+
		"  Max relative error: %e\n"+
		"  First error at index: %d",
		r.NumErrors, r.TotalItems, errorRate,
		r.MaxAbsError, r.MaxRelError,
		r.FirstError)
}

// ExactEqual reports bit-for-bit equality of two matrices (with -0 == +0).
// Different summation orders may legitimately fail it; Verify is the
// verdict, this is informational.
func ExactEqual(a, b *Matrix) bool {
	if a.n != b.n {
		return false
	}
	for i, v := range a.data {
		if v != b.data[i] {
			return false
		}
	}
	return true
}
