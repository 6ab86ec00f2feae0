// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Single source of truth for nil/shape/finite checks.
//  - Return sentinels wrapped with the validator tag so call sites can add
//    their own op tag on top.
//
// Determinism & Performance:
//  - Shape checks are O(1) and allocate nothing; ValidateFinite is one O(r*c) pass.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures every argument is a non-nil *Dense.
// Complexity: O(len(ms)).
func ValidateNotNil(ms ...*Dense) error {
	for _, m := range ms {
		if m == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateSameShape ensures a and b are non-nil and have equal dimensions.
func ValidateSameShape(a, b *Dense) error {
	if err := ValidateNotNil(a, b); err != nil {
		return err
	}
	if a.r != b.r {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.c != b.c {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible ensures a·b is defined (a.Cols == b.Rows).
func ValidateMulCompatible(a, b *Dense) error {
	if err := ValidateNotNil(a, b); err != nil {
		return err
	}
	if a.c != b.r {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulTACompatible ensures aᵀ·b is defined (a.Rows == b.Rows).
func ValidateMulTACompatible(a, b *Dense) error {
	if err := ValidateNotNil(a, b); err != nil {
		return err
	}
	if a.r != b.r {
		return validatorErrorf("ValidateMulTACompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite scans m and reports the first NaN/±Inf with its coordinates.
// Complexity: O(r*c).
//
// AI-Hints: run at ingestion and after kernels that may divide by zero.
func ValidateFinite(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	for idx, v := range m.data {
		if isNonFinite32(v) {
			return validatorErrorf("ValidateFinite", denseErrorf("At", idx/m.c, idx%m.c, ErrNaNInf))
		}
	}

	return nil
}

// ValidateBounds ensures every entry of m lies in [lo, hi].
// NaN entries fail the check.
func ValidateBounds(m *Dense, lo, hi float32) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	for idx, v := range m.data {
		if !(v >= lo && v <= hi) {
			return validatorErrorf(fmt.Sprintf("ValidateBounds[%g,%g]", lo, hi), denseErrorf("At", idx/m.c, idx%m.c, ErrOutOfRange))
		}
	}

	return nil
}
