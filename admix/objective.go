// SPDX-License-Identifier: MIT
// Package admix - model scoring.
//
// LogLikelihood scores a reconstruction Pi (m×n) against genotype likelihoods
// L (3m×n), where rows 3i, 3i+1, 3i+2 hold P(data | 0, 1, 2 copies) for
// individual i:
//
//	ℓ = Σ_i Σ_s log( L[3i,s]·(1−p)² + L[3i+1,s]·2p(1−p) + L[3i+2,s]·p² ),  p = Pi[i,s]
//
// The per-individual partial sums are computed by one goroutine per
// individual chunk, each writing only its own slots; the sum follows the join.

package admix

import (
	"fmt"
	"math"

	"github.com/katalvlaran/admixnmf/matrix"
	"github.com/katalvlaran/admixnmf/partition"
)

// LogLikelihood returns the genotype-likelihood log-likelihood of pi.
// MAIN DESCRIPTION:
//   - threads individual chunks are reduced in parallel (threads above the
//     individual count degrade to one individual per chunk).
//
// Errors:
//   - ErrInvalidInput when likes is not 3·pi.Rows() × pi.Cols() or threads <= 0.
//   - ErrNumericCorruption when the result is not finite (a site whose
//     likelihood weights are all zero yields log 0 = −Inf).
//
// Complexity:
//   - Time O(m·n) split over the chunks, Space O(m).
func LogLikelihood(likes, pi *matrix.Dense, threads int) (float64, error) {
	if err := matrix.ValidateNotNil(likes, pi); err != nil {
		return 0, admixErrorf(opLogLike, invalidf("%v", err))
	}
	if threads <= 0 {
		return 0, admixErrorf(opLogLike, invalidf("threads=%d", threads))
	}
	chunks, err := partition.Split(pi.Rows(), threads)
	if err != nil {
		return 0, admixErrorf(opLogLike, err)
	}

	return logLikelihood(likes, pi, chunks)
}

// logLikelihood is LogLikelihood over precomputed chunks.
func logLikelihood(likes, pi *matrix.Dense, chunks []partition.Range) (float64, error) {
	m, n := pi.Shape()
	if likes.Rows() != 3*m || likes.Cols() != n {
		return 0, admixErrorf(opLogLike,
			invalidf("likelihoods %dx%d, want %dx%d", likes.Rows(), likes.Cols(), 3*m, n))
	}
	l, p := likes.Data(), pi.Data()

	total, err := partition.Sum(chunks, m, func(ch partition.Chunk) {
		var s, base int
		var ps, qs, sum float64
		for k := range ch.Acc {
			ind := ch.Range.Start + k
			base = 3 * ind * n
			sum = 0
			for s = 0; s < n; s++ {
				ps = float64(p[ind*n+s])
				qs = 1 - ps
				sum += math.Log(float64(l[base+s])*qs*qs +
					float64(l[base+n+s])*2*ps*qs +
					float64(l[base+2*n+s])*ps*ps)
			}
			ch.Acc[k] = sum
		}
	})
	if err != nil {
		return 0, admixErrorf(opLogLike, err)
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, admixErrorf(opLogLike, fmt.Errorf("%w: log-likelihood=%v", ErrNumericCorruption, total))
	}

	return total, nil
}
