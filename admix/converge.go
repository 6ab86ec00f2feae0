// SPDX-License-Identifier: MIT

package admix

import "github.com/katalvlaran/admixnmf/matrix"

// monitor tracks Q across outer iterations.
type monitor struct {
	prev *matrix.Dense
	tol  float64
}

func newMonitor(Q *matrix.Dense, tol float64) *monitor {
	return &monitor{prev: Q.Clone(), tol: tol}
}

// check returns RMSD(Q, prev) and whether it fell below the tolerance.
// The snapshot only advances when the run continues.
func (c *monitor) check(Q *matrix.Dense) (float64, bool, error) {
	diff, err := matrix.RMSD(Q, c.prev)
	if err != nil {
		return 0, false, admixErrorf(opConverge, err)
	}
	if diff < c.tol {
		return diff, true, nil
	}
	if err = c.prev.CopyFrom(Q); err != nil {
		return 0, false, admixErrorf(opConverge, err)
	}

	return diff, false, nil
}
