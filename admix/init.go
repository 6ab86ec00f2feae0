// SPDX-License-Identifier: MIT

package admix

import (
	"math/rand/v2"

	"github.com/katalvlaran/admixnmf/matrix"
)

// seedStream is the fixed PCG stream selector; the user-facing seed picks the state.
const seedStream uint64 = 0x61646d69784e4d46

// newRNG returns the deterministic generator for one fit.
func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seedStream))
}

// initFactors seeds Q and solves the matching least-squares F.
// MAIN DESCRIPTION:
//   - Q (m×K): independent uniform draws, each row normalized to sum 1.
//   - F (n×K): argmin_F ‖X − Q·Fᵗ‖ via the normal equations,
//     F = Xᵗ·Q·(QᵗQ)⁻¹ (QᵗQ is symmetric, so no extra transpose).
//
// Behavior highlights:
//   - F is not clamped here; the first F-update pulls it into
//     [FactorFloor, FactorCeil].
//   - Consumes the RNG after the site shuffle, so the caller controls order.
//
// Errors:
//   - matrix.ErrSingular when QᵗQ cannot be inverted.
//
// Complexity:
//   - Time O(m·K² + m·n·K + K³), Space O(m·K + n·K).
func initFactors(X *matrix.Dense, k int, rng *rand.Rand) (Q, F *matrix.Dense, err error) {
	m := X.Rows()
	if Q, err = matrix.NewDense(m, k); err != nil {
		return nil, nil, admixErrorf(opInit, err)
	}
	q := Q.Data()
	for idx := range q {
		q[idx] = rng.Float32()
	}
	if _, err = matrix.NormalizeRowsL1InPlace(Q); err != nil {
		return nil, nil, admixErrorf(opInit, err)
	}

	gram, err := matrix.MulTA(Q, Q) // K×K
	if err != nil {
		return nil, nil, admixErrorf(opInit, err)
	}
	inv, err := matrix.Inverse(gram)
	if err != nil {
		return nil, nil, admixErrorf(opInit, err)
	}
	xtq, err := matrix.MulTA(X, Q) // n×K
	if err != nil {
		return nil, nil, admixErrorf(opInit, err)
	}
	if F, err = matrix.Mul(xtq, inv); err != nil {
		return nil, nil, admixErrorf(opInit, err)
	}

	return Q, F, nil
}
