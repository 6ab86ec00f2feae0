// SPDX-License-Identifier: MIT

package admix

import "github.com/katalvlaran/admixnmf/matrix"

// accelerate repeats step up to budget times and returns the number of steps run.
// MAIN DESCRIPTION:
//   - step performs one kernel update and returns ‖after − before‖_F.
//   - The first step's change is the reference; any later step whose change
//     is ≤ ratio·reference ends the loop (that step's update is kept).
//
// Notes:
//   - Empirical heuristic: budget and ratio are tuned constants
//     (DefaultAccelBase, DefaultEarlyExitRatio), not derived from a proof.
func accelerate(budget int, ratio float64, step func() (float64, error)) (int, error) {
	var first float64
	for inner := 0; inner < budget; inner++ {
		delta, err := step()
		if err != nil {
			return inner + 1, err
		}
		if inner == 0 {
			first = delta
			continue
		}
		if delta <= ratio*first {
			return inner + 1, nil
		}
	}

	return budget, nil
}

// sweepBatch runs the accelerated F-update then the accelerated Q-update on
// one batch. Fb is a row view of F, so F-updates land in F directly.
func sweepBatch(b *batch, Q, F, qPrev *matrix.Dense, o Options) error {
	Fb, err := F.RowView(b.sites.Start, b.sites.End)
	if err != nil {
		return admixErrorf(opUpdateF, err)
	}

	// F-update: A = Xbᵗ·Q, B = QᵗQ stay fixed across inner steps.
	A, err := matrix.MulTA(b.x, Q)
	if err != nil {
		return admixErrorf(opUpdateF, err)
	}
	B, err := matrix.MulTA(Q, Q)
	if err != nil {
		return admixErrorf(opUpdateF, err)
	}
	_, err = accelerate(b.pF, o.earlyExitRatio, func() (float64, error) {
		if err := b.fPrev.CopyFrom(Fb); err != nil {
			return 0, admixErrorf(opUpdateF, err)
		}
		FB, err := matrix.Mul(Fb, B)
		if err != nil {
			return 0, admixErrorf(opUpdateF, err)
		}
		if err = updateF(Fb, A, FB); err != nil {
			return 0, err
		}
		return matrix.Frobenius(Fb, b.fPrev)
	})
	if err != nil {
		return err
	}

	// Q-update: A = Xb·Fb, B = FbᵗFb.
	if A, err = matrix.Mul(b.x, Fb); err != nil {
		return admixErrorf(opUpdateQ, err)
	}
	if B, err = matrix.MulTA(Fb, Fb); err != nil {
		return admixErrorf(opUpdateQ, err)
	}
	_, err = accelerate(b.pQ, o.earlyExitRatio, func() (float64, error) {
		if err := qPrev.CopyFrom(Q); err != nil {
			return 0, admixErrorf(opUpdateQ, err)
		}
		QB, err := matrix.Mul(Q, B)
		if err != nil {
			return 0, admixErrorf(opUpdateQ, err)
		}
		if err = updateQ(Q, A, QB, o.alpha); err != nil {
			return 0, err
		}
		return matrix.Frobenius(Q, qPrev)
	})

	return err
}
