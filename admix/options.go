// SPDX-License-Identifier: MIT

// Package admix: functional configuration for Fit and AlphaSearch.
// This file defines:
//   - documented defaults (single source of truth),
//   - Option / Options (functional options with unexported state),
//   - WithX constructors with strict validation (panic on nonsensical values),
//   - gatherOptions, which resolves a list of Options into effective settings.
//
// Notes:
//   - The acceleration constants (AccelBase, EarlyExitRatio) are empirically
//     tuned. They are exposed for experimentation, not re-derived.
//   - Panics here are programmer errors; user-supplied values should go
//     through the config package, which validates before building Options.
package admix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultAlpha disables regularization.
	DefaultAlpha = 0.0

	// DefaultMaxIter bounds the number of outer iterations.
	DefaultMaxIter = 100

	// DefaultTolerance is the Q-RMSD below which a fit counts as converged.
	DefaultTolerance = 5e-5

	// DefaultSeed seeds the site shuffle and the Q initialization.
	DefaultSeed uint64 = 0

	// DefaultBatches is the requested number of site batches.
	DefaultBatches = 5

	// DefaultThreads is the number of individual chunks used by the final reductions.
	DefaultThreads = 1
)

// Acceleration heuristic.
const (
	// DefaultAccelBase multiplies the dimension-ratio step budget:
	// p = AccelBase·(1 + ⌊cost ratio⌋).
	DefaultAccelBase = 2

	// DefaultEarlyExitRatio stops repeated updates once ‖Δ‖ ≤ ratio·‖Δ first step‖.
	DefaultEarlyExitRatio = 0.1
)

// Factor domain. Every F entry and every pre-normalization Q entry is clamped
// into [FactorFloor, FactorCeil]; Pi is clipped to the same interval.
const (
	FactorFloor float32 = 1e-4
	FactorCeil  float32 = 1 - 1e-4
)

// ---------- Internal panic messages ----------

const (
	panicAlphaInvalid     = "admix: WithAlpha: alpha must be finite and >= 0"
	panicMaxIterInvalid   = "admix: WithMaxIter: iterations must be > 0"
	panicToleranceInvalid = "admix: WithTolerance: tolerance must be finite and >= 0"
	panicBatchesInvalid   = "admix: WithBatches: batches must be > 0"
	panicThreadsInvalid   = "admix: WithThreads: threads must be > 0"
	panicAccelInvalid     = "admix: WithAccelBase: base must be > 0"
	panicRatioInvalid     = "admix: WithEarlyExitRatio: ratio must be finite and >= 0"
)

// ---------- Public option type ----------

// Option mutates internal options. Safe to apply repeatedly; the last write wins.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; read them through the accessor methods.
type Options struct {
	alpha          float64
	maxIter        int
	tolerance      float64
	seed           uint64
	batches        int
	threads        int
	accelBase      int
	earlyExitRatio float64
	observer       Observer
}

// WithAlpha sets the regularization strength added to Q's update denominator.
// Panics when alpha is negative or non-finite.
func WithAlpha(alpha float64) Option {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha < 0 {
		panic(panicAlphaInvalid)
	}

	return func(o *Options) { o.alpha = alpha }
}

// WithMaxIter sets the outer iteration budget.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIter = n }
}

// WithTolerance sets the Q-RMSD convergence threshold.
// A tolerance of 0 disables early stopping.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tolerance = tol }
}

// WithSeed sets the RNG seed for the site shuffle and Q initialization.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithBatches sets the requested number of site batches.
// Values above the site count degrade to one site per batch.
func WithBatches(b int) Option {
	if b <= 0 {
		panic(panicBatchesInvalid)
	}

	return func(o *Options) { o.batches = b }
}

// WithThreads sets the number of individual chunks for the final reductions.
// Values above the individual count degrade to one individual per chunk.
func WithThreads(t int) Option {
	if t <= 0 {
		panic(panicThreadsInvalid)
	}

	return func(o *Options) { o.threads = t }
}

// WithAccelBase overrides the acceleration budget multiplier.
func WithAccelBase(base int) Option {
	if base <= 0 {
		panic(panicAccelInvalid)
	}

	return func(o *Options) { o.accelBase = base }
}

// WithEarlyExitRatio overrides the acceleration early-exit ratio.
// A ratio of 0 exits only when an update makes no change at all.
func WithEarlyExitRatio(ratio float64) Option {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio < 0 {
		panic(panicRatioInvalid)
	}

	return func(o *Options) { o.earlyExitRatio = ratio }
}

// WithObserver routes progress events to obs. A nil observer discards them.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs == nil {
			obs = Discard
		}
		o.observer = obs
	}
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		alpha:          DefaultAlpha,
		maxIter:        DefaultMaxIter,
		tolerance:      DefaultTolerance,
		seed:           DefaultSeed,
		batches:        DefaultBatches,
		threads:        DefaultThreads,
		accelBase:      DefaultAccelBase,
		earlyExitRatio: DefaultEarlyExitRatio,
		observer:       Discard,
	}
}

// gatherOptions applies opts over the defaults in order.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// NewOptions resolves opts into an Options value (handy for inspection and tests).
func NewOptions(opts ...Option) Options { return gatherOptions(opts...) }

// Alpha returns the regularization strength.
func (o Options) Alpha() float64 { return o.alpha }

// MaxIter returns the outer iteration budget.
func (o Options) MaxIter() int { return o.maxIter }

// Tolerance returns the convergence threshold.
func (o Options) Tolerance() float64 { return o.tolerance }

// Seed returns the RNG seed.
func (o Options) Seed() uint64 { return o.seed }

// Batches returns the requested batch count.
func (o Options) Batches() int { return o.batches }

// Threads returns the requested chunk count.
func (o Options) Threads() int { return o.threads }

// AccelBase returns the acceleration budget multiplier.
func (o Options) AccelBase() int { return o.accelBase }

// EarlyExitRatio returns the acceleration early-exit ratio.
func (o Options) EarlyExitRatio() float64 { return o.earlyExitRatio }
