// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gemmbench measures dense square matrix multiplication three ways:
// a textbook triple loop, a BLAS dgemm call, and a hand-written
// cache-blocked kernel.
//
// All matrices are N×N float64, row-major, in one flat slice. The blocked
// kernel tiles the index space and walks each tile triple in i→k→j order,
// so the innermost loop streams a row of B into a row of C while A[i][k] is
// held in a local. Comparing it against the naive i→j→k loop shows the cost
// of striding down columns; comparing it against BLAS shows what packing,
// register blocking and SIMD add on top.
//
// Example usage:
//
//	cfg := gemmbench.DefaultConfig()
//	cfg.N = 1024
//	report, err := gemmbench.NewHarness(cfg).Run(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	report.WriteText(os.Stdout)
//
// The reference multiplier uses gonum's pure-Go BLAS by default. Build with
// -tags netlib (and CGO_LDFLAGS pointing at a CBLAS such as OpenBLAS) to
// measure against a native library instead.
package gemmbench
