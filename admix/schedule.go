// SPDX-License-Identifier: MIT

package admix

import (
	"github.com/katalvlaran/admixnmf/matrix"
	"github.com/katalvlaran/admixnmf/partition"
)

// batch is one contiguous block of (shuffled) sites and its precomputed state.
type batch struct {
	sites partition.Range
	x     *matrix.Dense // m×nb copy of X restricted to sites; read-only during the fit
	fPrev *matrix.Dense // nb×K scratch for the previous F block
	pF    int           // F acceleration budget
	pQ    int           // Q acceleration budget
}

// schedule holds the per-fit partitions. Built once, never mutated.
type schedule struct {
	batches []batch
	chunks  []partition.Range // individual chunks for the final reductions
}

// accelBudgetF is the F-update step budget for a batch of nb sites:
// base·(1 + ⌊(m·nb + m·K) / (nb·K + nb)⌋).
func accelBudgetF(base, m, nb, k int) int {
	return base * (1 + (m*nb+m*k)/(nb*k+nb))
}

// accelBudgetQ is the Q-update step budget for a batch of nb sites:
// base·(1 + ⌊(m·nb + nb·K) / (m·K + m)⌋).
func accelBudgetQ(base, m, nb, k int) int {
	return base * (1 + (m*nb+nb*k)/(m*k+m))
}

// newSchedule splits the sites of X into batches and the individuals into chunks.
// Requests above the respective dimension degrade to one item per block.
func newSchedule(X *matrix.Dense, k int, o Options) (*schedule, error) {
	m, n := X.Shape()
	siteRanges, err := partition.Split(n, o.batches)
	if err != nil {
		return nil, admixErrorf(opSchedule, err)
	}
	chunks, err := partition.Split(m, o.threads)
	if err != nil {
		return nil, admixErrorf(opSchedule, err)
	}

	s := &schedule{batches: make([]batch, len(siteRanges)), chunks: chunks}
	for i, r := range siteRanges {
		xb, err := X.ColRange(r.Start, r.End)
		if err != nil {
			return nil, admixErrorf(opSchedule, err)
		}
		fPrev, err := matrix.NewDense(r.Len(), k)
		if err != nil {
			return nil, admixErrorf(opSchedule, err)
		}
		s.batches[i] = batch{
			sites: r,
			x:     xb,
			fPrev: fPrev,
			pF:    accelBudgetF(o.accelBase, m, r.Len(), k),
			pQ:    accelBudgetQ(o.accelBase, m, r.Len(), k),
		}
	}

	return s, nil
}
