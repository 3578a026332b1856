package gemmbench

import (
	"runtime"
)

// ArchToleranceConfig holds a base tolerance and per-architecture overrides.
type ArchToleranceConfig struct {
	Base ToleranceConfig

	// FMA applies where the Go compiler fuses x*y+z into a single rounding,
	// which changes the last bits of the naive and blocked sums.
	FMA *ToleranceConfig

	// Generic applies to every other architecture except amd64.
	Generic *ToleranceConfig
}

// fusesFMA reports whether the gc compiler contracts multiply-add on goarch.
func fusesFMA(goarch string) bool {
	switch goarch {
	case "arm64", "ppc64", "ppc64le", "s390x", "riscv64", "loong64":
		return true
	}
	return false
}

// For returns the tolerance that applies on goarch.
func (c ArchToleranceConfig) For(goarch string) ToleranceConfig {
	switch {
	case goarch == "amd64" || goarch == "386":
		return c.Base
	case fusesFMA(goarch):
		if c.FMA != nil {
			return mergeTolerances(c.Base, *c.FMA)
		}
	default:
		if c.Generic != nil {
			return mergeTolerances(c.Base, *c.Generic)
		}
	}
	return c.Base
}

// mergeTolerances applies the non-zero fields of override to base
func mergeTolerances(base, override ToleranceConfig) ToleranceConfig {
	result := base
	if override.AbsTol > 0 {
		result.AbsTol = override.AbsTol
	}
	if override.RelTol > 0 {
		result.RelTol = override.RelTol
	}
	if override.ULPTol > 0 {
		result.ULPTol = override.ULPTol
	}
	return result
}

// GEMMArchTolerance is the verdict tolerance for comparing products whose
// summation order differs.
var GEMMArchTolerance = ArchToleranceConfig{
	Base: DefaultTolerance(),
	FMA: &ToleranceConfig{
		RelTol: 1e-10,
		ULPTol: 16,
	},
	Generic: &ToleranceConfig{
		RelTol: 1e-9,
		ULPTol: 32,
	},
}

// GEMMTolerance returns GEMMArchTolerance for the running architecture.
func GEMMTolerance() ToleranceConfig {
	return GEMMArchTolerance.For(runtime.GOARCH)
}
