// SPDX-License-Identifier: MIT
// Package admix: sentinel error set.
// "converged" and "iteration budget exhausted" are both normal completions;
// only input-contract violations and numeric corruption are errors.

package admix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a violated input contract: nil matrices,
	// likelihood rows != 3·individuals, site counts that differ, K outside
	// [1, min(m,n)], values outside their domain, or bad search bounds.
	// It is always returned before any fitting work starts.
	ErrInvalidInput = errors.New("admix: invalid input")

	// ErrNumericCorruption reports NaN produced inside an update kernel or a
	// non-finite objective. The fit is aborted; partial factors are discarded.
	ErrNumericCorruption = errors.New("admix: numeric corruption")
)

// Operation tags for uniform error wrapping.
const (
	opFit      = "Fit"
	opSearch   = "AlphaSearch"
	opInit     = "initFactors"
	opSchedule = "schedule"
	opUpdateF  = "updateF"
	opUpdateQ  = "updateQ"
	opConverge = "converge"
	opLogLike  = "LogLikelihood"
	opFinalize = "finalize"
)

// admixErrorf wraps err with an operation tag, preserving it for errors.Is.
func admixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// invalidf builds an ErrInvalidInput with a formatted reason.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
