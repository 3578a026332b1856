//go:build netlib

package gemmbench

// This file is only included with -tags netlib. It registers the netlib BLAS
// implementation, which calls the system CBLAS (OpenBLAS on Linux,
// Accelerate on macOS) through cgo. Link flags come from CGO_LDFLAGS, e.g.
// CGO_LDFLAGS="-lopenblas".

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/netlib/blas/netlib"
)

func init() {
	blas64.Use(netlib.Implementation{})
	blasBackend = "netlib"
}
