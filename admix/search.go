// SPDX-License-Identifier: MIT
// Package admix - adaptive search over the regularization strength.
//
// The search is a bounded three-point refinement, not a ternary search: the
// log-likelihood is not assumed unimodal in alpha.
//
//	round 1:  try 0, aEnd/2, aEnd; step = aEnd/4
//	recenter: best at 0      → [0, mid/2, mid]      (one-sided from here on)
//	          best elsewhere → [best−step, best, best+step]
//	round d:  lower bound 0 → try mid only, then halve [0, mid]
//	          otherwise     → try lower; if it loses, try upper;
//	                          step /= 2 and rebuild around the winner.
//
// Every run reuses the full option set; only alpha changes.

package admix

import (
	"math"

	"github.com/katalvlaran/admixnmf/matrix"
)

// Trial is one evaluated alpha.
type Trial struct {
	Alpha         float64
	LogLikelihood float64
	Depth         int // search round that evaluated it (1-based)
}

// SearchResult is the outcome of AlphaSearch.
type SearchResult struct {
	Best   *Result // fit with the highest log-likelihood
	Alpha  float64 // alpha of Best
	Trials []Trial // every evaluated alpha, in evaluation order
}

// searcher carries the running best across rounds.
type searcher struct {
	run   func(o Options) (*Result, error) // one fit at o.alpha
	k     int
	o     Options
	depth int
	out   *SearchResult
}

// try fits at alpha and reports whether it replaced the best.
// The first trial always becomes the best.
func (s *searcher) try(alpha float64) (bool, error) {
	o := s.o
	o.alpha = alpha
	res, err := s.run(o)
	if err != nil {
		return false, err
	}
	s.out.Trials = append(s.out.Trials, Trial{Alpha: alpha, LogLikelihood: res.LogLikelihood, Depth: s.depth})
	s.o.observer.Observe(Event{
		Kind: EventAlphaTrial, Metric: MetricLogLikelihood, Value: res.LogLikelihood,
		Alpha: alpha, K: s.k, Batches: o.batches, Seed: o.seed, Depth: s.depth,
	})
	if s.out.Best != nil && !(res.LogLikelihood > s.out.Best.LogLikelihood) {
		return false, nil
	}
	s.out.Best, s.out.Alpha = res, alpha

	return true, nil
}

// recenter moves the bracket. halve shrinks [0, mid] one-sidedly; otherwise
// the bracket is rebuilt around the point selected by arg (0 lo, 1 mid, 2 hi).
func recenter(lo, mid, hi, step float64, arg int, halve bool) (float64, float64, float64) {
	if halve {
		return lo, mid / 2, mid
	}
	c := [3]float64{lo, mid, hi}[arg]

	return c - step, c, c + step
}

// AlphaSearch fits X at a schedule of alpha values in [0, aEnd] and returns
// the fit with the highest log-likelihood.
// MAIN DESCRIPTION:
//   - depth rounds; round 1 costs three fits, later rounds one or two.
//   - Ties keep the earlier (smaller-index) trial.
//   - All other options (seed, iterations, batches, ...) apply to every fit;
//     WithAlpha is ignored.
//
// Errors:
//   - ErrInvalidInput: Fit's input contract, aEnd not finite and > 0, depth < 1.
//   - Any error of a constituent Fit aborts the search.
func AlphaSearch(X, likes *matrix.Dense, k int, aEnd float64, depth int, opts ...Option) (*SearchResult, error) {
	if err := validateFitInput(X, likes, k); err != nil {
		return nil, admixErrorf(opSearch, err)
	}
	if math.IsNaN(aEnd) || math.IsInf(aEnd, 0) || aEnd <= 0 {
		return nil, admixErrorf(opSearch, invalidf("aEnd=%v must be finite and > 0", aEnd))
	}
	if depth < 1 {
		return nil, admixErrorf(opSearch, invalidf("depth=%d must be >= 1", depth))
	}

	s := &searcher{
		run: func(o Options) (*Result, error) { return fit(X, likes, k, o) },
		k:   k,
		o:   gatherOptions(opts...),
		out: &SearchResult{},
	}
	if err := s.search(aEnd, depth); err != nil {
		return nil, admixErrorf(opSearch, err)
	}

	return s.out, nil
}

// search runs the bracket schedule over [0, aEnd] for depth rounds.
func (s *searcher) search(aEnd float64, depth int) error {
	s.depth = 1
	lo, hi := 0.0, aEnd
	mid, step := aEnd/2, aEnd/4

	arg := 0
	if _, err := s.try(lo); err != nil {
		return err
	}
	for i, a := range [2]float64{mid, hi} {
		better, err := s.try(a)
		if err != nil {
			return err
		}
		if better {
			arg = i + 1
		}
	}
	lo, mid, hi = recenter(lo, mid, hi, step, arg, arg == 0)

	for d := 2; d <= depth; d++ {
		s.depth = d
		s.o.observer.Observe(Event{Kind: EventSearchDepth, Depth: d, Alpha: s.out.Alpha, K: s.k})
		if lo == 0 {
			better, err := s.try(mid)
			if err != nil {
				return err
			}
			if better {
				arg = 1
			}
		} else {
			better, err := s.try(lo)
			if err != nil {
				return err
			}
			if better {
				arg = 0
			} else {
				if better, err = s.try(hi); err != nil {
					return err
				}
				arg = 1
				if better {
					arg = 2
				}
			}
		}
		step /= 2
		lo, mid, hi = recenter(lo, mid, hi, step, arg, lo == 0)
	}

	s.o.observer.Observe(Event{
		Kind: EventSearchBest, Metric: MetricLogLikelihood, Value: s.out.Best.LogLikelihood,
		Alpha: s.out.Alpha, K: s.k, Depth: depth,
	})

	return nil
}
