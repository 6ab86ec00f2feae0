// SPDX-License-Identifier: MIT
// Package admix - multiplicative update kernels.
//
// Rules (Lee–Seung, Frobenius loss, additive damping on Q only):
//
//	F[s,k] ← clamp(F[s,k] · A[s,k] / FB[s,k])            A = Xbᵗ·Q,  FB = Fb·(QᵗQ)
//	Q[i,k] ← clamp(Q[i,k] · A[i,k] / (QB[i,k] + alpha))  A = Xb·Fb,  QB = Q·(FbᵗFb)
//	Q[i,:] ← Q[i,:] / Σ_k Q[i,k]
//
// Policy:
//   - clamp is [FactorFloor, FactorCeil]; a zero denominator yields ±Inf
//     which the clamp absorbs, while 0/0 yields NaN, which is reported as
//     ErrNumericCorruption with the offending coordinates.
//   - With alpha == 0 the Q rule is exactly the unregularized rule.
//   - Kernels only mutate their target; A, FB/QB are read-only.

package admix

import (
	"fmt"

	"github.com/katalvlaran/admixnmf/matrix"
)

// clampFactor pulls v into [FactorFloor, FactorCeil]; NaN passes through.
func clampFactor(v float32) float32 {
	if v < FactorFloor {
		return FactorFloor
	}
	if v > FactorCeil {
		return FactorCeil
	}

	return v
}

// corruptionAt reports NaN produced by a kernel at (row, col).
func corruptionAt(op string, row, col int) error {
	return admixErrorf(op, fmt.Errorf("%w: NaN at (%d,%d)", ErrNumericCorruption, row, col))
}

// sameShape3 checks that the kernel target and both operands agree.
func sameShape3(op string, target, a, b *matrix.Dense) error {
	if err := matrix.ValidateSameShape(target, a); err != nil {
		return admixErrorf(op, err)
	}
	if err := matrix.ValidateSameShape(target, b); err != nil {
		return admixErrorf(op, err)
	}

	return nil
}

// updateF applies the F rule in place (single precision, as stored).
// Complexity: O(nb·K).
func updateF(F, A, FB *matrix.Dense) error {
	if err := sameShape3(opUpdateF, F, A, FB); err != nil {
		return err
	}
	f, a, fb := F.Data(), A.Data(), FB.Data()
	k := F.Cols()
	var v float32
	for idx := range f {
		v = clampFactor(f[idx] * (a[idx] / fb[idx]))
		if v != v {
			return corruptionAt(opUpdateF, idx/k, idx%k)
		}
		f[idx] = v
	}

	return nil
}

// updateQ applies the damped Q rule in place, then renormalizes every row.
// The ratio is formed in float64 because alpha is a float64 scalar.
// Complexity: O(m·K).
func updateQ(Q, A, QB *matrix.Dense, alpha float64) error {
	if err := sameShape3(opUpdateQ, Q, A, QB); err != nil {
		return err
	}
	q, a, qb := Q.Data(), A.Data(), QB.Data()
	k := Q.Cols()
	var v float32
	for idx := range q {
		v = clampFactor(float32(float64(q[idx]) * float64(a[idx]) / (float64(qb[idx]) + alpha)))
		if v != v {
			return corruptionAt(opUpdateQ, idx/k, idx%k)
		}
		q[idx] = v
	}
	if _, err := matrix.NormalizeRowsL1InPlace(Q); err != nil {
		return admixErrorf(opUpdateQ, err)
	}

	return nil
}
