// SPDX-License-Identifier: MIT
// Package matrix - distance helpers used to monitor and score factorizations.
//
// Contracts (pure, side-effect free):
//   - Frobenius(a, b)              = √Σ (a−b)²
//   - FrobeniusChunked(a, b, rows) = Σ (a−b)², reduced per row chunk in parallel
//   - RMSD(a, b)                   = √(Σ (a−b)² / (r·c))
//
// All sums run in float64.

package matrix

import (
	"math"

	"github.com/katalvlaran/admixnmf/partition"
)

// sqDiff returns Σ (a−b)² over the flat range [from, to).
func sqDiff(a, b []float32, from, to int) float64 {
	var sum, d float64
	for idx := from; idx < to; idx++ {
		d = float64(a[idx]) - float64(b[idx])
		sum += d * d
	}

	return sum
}

// Frobenius returns ‖a − b‖_F.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: Time O(r*c), Space O(1).
func Frobenius(a, b *Dense) (float64, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}

	return math.Sqrt(sqDiff(a.data, b.data, 0, len(a.data))), nil
}

// FrobeniusChunked returns the total squared error Σ (a−b)², computed by one
// worker per row chunk. Each worker owns the per-row slots of its chunk;
// partials are joined and summed in row order.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, partition.ErrOverlap.
// Complexity: Time O(r*c) split across len(chunks) goroutines, Space O(r).
func FrobeniusChunked(a, b *Dense, chunks []partition.Range) (float64, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return 0, matrixErrorf(opFrobChunk, err)
	}
	cols := a.c
	total, err := partition.Sum(chunks, a.r, func(ch partition.Chunk) {
		for k := range ch.Acc {
			row := ch.Range.Start + k
			ch.Acc[k] = sqDiff(a.data, b.data, row*cols, (row+1)*cols)
		}
	})
	if err != nil {
		return 0, matrixErrorf(opFrobChunk, err)
	}

	return total, nil
}

// RMSD returns the root-mean-square difference between a and b.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: Time O(r*c), Space O(1).
func RMSD(a, b *Dense) (float64, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return 0, matrixErrorf(opRMSD, err)
	}

	return math.Sqrt(sqDiff(a.data, b.data, 0, len(a.data)) / float64(len(a.data))), nil
}
