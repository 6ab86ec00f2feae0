// SPDX-License-Identifier: MIT

package admix

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/admixnmf/matrix"
)

// Result is the outcome of one Fit.
//
// Bounds: every F entry lies in [FactorFloor, FactorCeil]. Q entries are
// clamped to that interval before each row is renormalized, so for K ≥ 3 an
// entry may end slightly below FactorFloor; only row sums of 1 and entries
// in (0,1) are guaranteed for Q.
type Result struct {
	Q *matrix.Dense // m×K admixture proportions, rows sum to 1
	F *matrix.Dense // n×K ancestral frequencies, original site order

	LogLikelihood float64 // genotype-likelihood score of Pi = clip(Q·Fᵗ)
	Frobenius     float64 // total squared error Σ (X − Pi)²
	Iterations    int     // outer iterations run
	Converged     bool    // Q-RMSD fell below the tolerance
	Alpha         float64 // regularization strength used
}

// Fit factorizes X ≈ Q·Fᵗ with K components and scores the result against likes.
// MAIN DESCRIPTION:
//   - X (m×n) holds individual allele frequencies in [0,1]; likes (3m×n)
//     holds non-negative genotype likelihoods, three rows per individual.
//   - Site columns are shuffled once (seeded) before batching and restored
//     before scoring; F is returned in the caller's site order.
//
// Implementation:
//   - Stage 1: validate the input contract (no work is done on failure).
//   - Stage 2: shuffle, seed Q, solve F, build batches and chunks.
//   - Stage 3: outer loop of batch sweeps, each followed by a Q-RMSD check.
//   - Stage 4: un-shuffle, Pi = clip(Q·Fᵗ), Frobenius error, log-likelihood.
//
// Errors:
//   - ErrInvalidInput: nil or mis-shaped inputs, K ∉ [1, min(m,n)], X ∉ [0,1],
//     likes negative or non-finite.
//   - matrix.ErrSingular: the initial QᵗQ cannot be inverted.
//   - ErrNumericCorruption: NaN in an update, or a non-finite objective.
//
// Complexity:
//   - Time O(iter · n · (pF + pQ) · m · K) dominated by the kernels' products;
//     Space O(m·n + (m + n)·K).
func Fit(X, likes *matrix.Dense, k int, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if err := validateFitInput(X, likes, k); err != nil {
		return nil, admixErrorf(opFit, err)
	}

	return fit(X, likes, k, o)
}

// validateFitInput checks the shape and domain contract of Fit.
func validateFitInput(X, likes *matrix.Dense, k int) error {
	if err := matrix.ValidateNotNil(X, likes); err != nil {
		return invalidf("%v", err)
	}
	m, n := X.Shape()
	if likes.Rows() != 3*m || likes.Cols() != n {
		return invalidf("likelihoods %dx%d, want %dx%d", likes.Rows(), likes.Cols(), 3*m, n)
	}
	if k < 1 || k > min(m, n) {
		return invalidf("K=%d outside [1,%d]", k, min(m, n))
	}
	if err := matrix.ValidateBounds(X, 0, 1); err != nil {
		return invalidf("frequencies: %v", err)
	}
	if err := matrix.ValidateBounds(likes, 0, math.MaxFloat32); err != nil {
		return invalidf("likelihoods: %v", err)
	}

	return nil
}

// fit runs one validated factorization.
func fit(X, likes *matrix.Dense, k int, o Options) (*Result, error) {
	start := time.Now()
	m, n := X.Shape()
	o.observer.Observe(Event{Kind: EventFitStart, K: k, Alpha: o.alpha, Batches: o.batches, Seed: o.seed})

	// Init
	rng := newRNG(o.seed)
	perm := rng.Perm(n)
	Xs, err := matrix.PermuteCols(X, perm)
	if err != nil {
		return nil, admixErrorf(opInit, err)
	}
	Q, F, err := initFactors(Xs, k, rng)
	if err != nil {
		return nil, err
	}
	sched, err := newSchedule(Xs, k, o)
	if err != nil {
		return nil, err
	}
	qPrev, err := matrix.NewDense(m, k)
	if err != nil {
		return nil, admixErrorf(opInit, err)
	}
	mon := newMonitor(Q, o.tolerance)

	// OuterLoop
	res := &Result{Alpha: o.alpha}
	var diff float64
	var done bool
	for it := 1; it <= o.maxIter; it++ {
		for bi := range sched.batches {
			if err = sweepBatch(&sched.batches[bi], Q, F, qPrev, o); err != nil {
				return nil, admixErrorf(opFit, err)
			}
		}
		if diff, done, err = mon.check(Q); err != nil {
			return nil, err
		}
		res.Iterations = it
		o.observer.Observe(Event{Kind: EventIteration, Iteration: it, Metric: MetricQRMSD, Value: diff, Alpha: o.alpha})
		if done {
			res.Converged = true
			o.observer.Observe(Event{Kind: EventConverged, Iteration: it, Metric: MetricQRMSD, Value: diff, Alpha: o.alpha})
			break
		}
	}

	// Finalize
	if err = finalize(res, X, likes, Q, F, perm, sched); err != nil {
		return nil, err
	}
	o.observer.Observe(Event{Kind: EventObjective, Metric: MetricFrobenius, Value: res.Frobenius, Alpha: o.alpha})
	o.observer.Observe(Event{
		Kind: EventLogLikelihood, Metric: MetricLogLikelihood, Value: res.LogLikelihood,
		Alpha: o.alpha, K: k, Elapsed: time.Since(start),
	})

	return res, nil
}

// finalize restores the site order of F and scores the reconstruction
// against the caller's (unshuffled) X and likes.
func finalize(res *Result, X, likes, Q, F *matrix.Dense, perm []int, sched *schedule) error {
	inv, err := matrix.InversePermutation(perm)
	if err != nil {
		return admixErrorf(opFinalize, err)
	}
	if res.F, err = matrix.PermuteRows(F, inv); err != nil {
		return admixErrorf(opFinalize, err)
	}
	res.Q = Q

	pi, err := matrix.MulBT(Q, res.F)
	if err != nil {
		return admixErrorf(opFinalize, err)
	}
	if err = matrix.ClipInPlace(pi, FactorFloor, FactorCeil); err != nil {
		return admixErrorf(opFinalize, err)
	}
	if res.Frobenius, err = matrix.FrobeniusChunked(X, pi, sched.chunks); err != nil {
		return admixErrorf(opFinalize, err)
	}
	if math.IsNaN(res.Frobenius) || math.IsInf(res.Frobenius, 0) {
		return admixErrorf(opFinalize, fmt.Errorf("%w: frobenius=%v", ErrNumericCorruption, res.Frobenius))
	}
	if res.LogLikelihood, err = logLikelihood(likes, pi, sched.chunks); err != nil {
		return admixErrorf(opFinalize, err)
	}

	return nil
}
