// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gemmbench

import (
	"fmt"
)

// BlockedMultiplier is a cache-blocked kernel. The index space is cut into
// Block-wide tiles walked row-tile, column-tile, reduction-tile; inside a
// tile triple the loops run i→k→j so that the rows of B and C are streamed
// contiguously while A[i][k] stays in a register.
//
// Tiles at the right and bottom edges are clamped to N, so Block need not
// divide N and may exceed it.
type BlockedMultiplier struct {
	// Block is the tile width.
	Block int

	// Workers > 1 distributes row tiles across goroutines. Row tiles write
	// disjoint rows of C, so the only synchronization is the final join.
	Workers int
}

// NewBlockedMultiplier creates a single-threaded blocked kernel.
func NewBlockedMultiplier(block int) *BlockedMultiplier {
	return &BlockedMultiplier{Block: block, Workers: 1}
}

// Name implements Multiplier.
func (bm *BlockedMultiplier) Name() string { return NameBlocked }

// Multiply implements Multiplier. C is zeroed first; the kernel then
// accumulates into it.
func (bm *BlockedMultiplier) Multiply(a, b, c *Matrix) error {
	n, err := checkOperands("Blocked", a, b, c)
	if err != nil {
		return err
	}
	if bm.Block <= 0 {
		return &Error{
			Type:    ErrTypeInvalidArg,
			Op:      "Blocked",
			Message: fmt.Sprintf("block size must be positive, got %d", bm.Block),
			Err:     ErrInvalidBlock,
		}
	}

	c.Zero()

	tiles := (n + bm.Block - 1) / bm.Block
	parallel(tiles, bm.Workers, func(start, end int) {
		for t := start; t < end; t++ {
			blockedRowTile(a.data, b.data, c.data, n, bm.Block, t*bm.Block)
		}
	})
	return nil
}

// blockedRowTile computes rows [ii, ii+bs) of C.
func blockedRowTile(a, b, c []float64, n, bs, ii int) {
	iEnd := min(ii+bs, n)
	for jj := 0; jj < n; jj += bs {
		jEnd := min(jj+bs, n)
		for kk := 0; kk < n; kk += bs {
			kEnd := min(kk+bs, n)
			for i := ii; i < iEnd; i++ {
				cRow := c[i*n+jj : i*n+jEnd]
				for k := kk; k < kEnd; k++ {
					buf := a[i*n+k]
					bRow := b[k*n+jj : k*n+jEnd]
					for j := range cRow {
						cRow[j] += buf * bRow[j]
					}
				}
			}
		}
	}
}

// parallel splits [0, n) into contiguous ranges and runs fn on each in its
// own goroutine, returning when all have finished.
func parallel(n int, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if workers <= 1 || n < 2 {
		fn(0, n)
		return
	}

	workers = min(workers, n)
	blockSize := (n + workers - 1) / workers
	done := make(chan struct{}, workers)

	launched := 0
	for i := 0; i < workers; i++ {
		start := i * blockSize
		end := min((i+1)*blockSize, n)
		if start >= end {
			break
		}
		launched++
		go func(s, e int) {
			fn(s, e)
			done <- struct{}{}
		}(start, end)
	}

	for i := 0; i < launched; i++ {
		<-done
	}
}
