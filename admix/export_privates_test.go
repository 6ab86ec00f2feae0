// SPDX-License-Identifier: MIT

package admix

import "github.com/katalvlaran/admixnmf/matrix"

// Test bridge (white-box) for private kernels and the acceleration controller.
//
// Purpose:
//   - Expose unexported kernels to admix_test only; the file is compiled
//     with the package's tests and never ships in a build.

var (
	ExportedUpdateF      = updateF
	ExportedUpdateQ      = updateQ
	ExportedAccelerate   = accelerate
	ExportedAccelBudgetF = accelBudgetF
	ExportedAccelBudgetQ = accelBudgetQ
	ExportedRecenter     = recenter
)

// MonitorCheck_TestOnly runs the convergence monitor over a sequence of Q
// snapshots and returns the diffs up to and including the first done.
func MonitorCheck_TestOnly(tol float64, q0 *matrix.Dense, qs ...*matrix.Dense) ([]float64, bool, error) {
	mon := newMonitor(q0, tol)
	diffs := make([]float64, 0, len(qs))
	for _, q := range qs {
		d, done, err := mon.check(q)
		if err != nil {
			return nil, false, err
		}
		diffs = append(diffs, d)
		if done {
			return diffs, true, nil
		}
	}

	return diffs, false, nil
}

// SearchSchedule_TestOnly drives the alpha bracket with a synthetic score in
// place of real fits, so the visited alphas can be checked exactly.
func SearchSchedule_TestOnly(aEnd float64, depth int, score func(alpha float64) float64) (*SearchResult, error) {
	s := &searcher{
		run: func(o Options) (*Result, error) {
			return &Result{Alpha: o.alpha, LogLikelihood: score(o.alpha)}, nil
		},
		k:   1,
		o:   gatherOptions(),
		out: &SearchResult{},
	}
	if err := s.search(aEnd, depth); err != nil {
		return nil, err
	}

	return s.out, nil
}
