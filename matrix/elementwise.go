// SPDX-License-Identifier: MIT
// Package matrix - element-wise sanitization and row normalization.
//
// Determinism:
//   - Single flat pass over the row-major buffer; no allocation for in-place forms.

package matrix

import "math"

// ClipInPlace clamps every entry of m into [lo, hi].
// Policy:
//   - lo and hi must be finite; lo > hi is normalized by swapping.
//   - NaN entries are left untouched (comparisons fail); callers that must
//     reject NaN run ValidateFinite afterwards.
//
// Complexity: Time O(r*c), Space O(1).
func ClipInPlace(m *Dense, lo, hi float32) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opClip, err)
	}
	if isNonFinite32(lo) || isNonFinite32(hi) {
		return matrixErrorf(opClip, ErrNaNInf)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	for idx, v := range m.data {
		if v < lo {
			m.data[idx] = lo
		} else if v > hi {
			m.data[idx] = hi
		}
	}

	return nil
}

// Clip returns a clamped copy of m; see ClipInPlace for the policy.
func Clip(m *Dense, lo, hi float32) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opClip, err)
	}
	out := m.Clone()
	if err := ClipInPlace(out, lo, hi); err != nil {
		return nil, err
	}

	return out, nil
}

// RowSums returns r[i] = Σ_j m[i,j] accumulated in float64.
func RowSums(m *Dense) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opNormRows, err)
	}
	out := make([]float64, m.r)
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			out[i] += float64(m.data[base+j])
		}
	}

	return out, nil
}

// NormalizeRowsL1InPlace divides each row by its sum so rows sum to 1.
// Degenerate rows (sum == 0) remain unchanged. Returns the pre-normalization sums.
//
// AI-Hints: factor entries are non-negative here, so the plain sum is the L1 norm.
func NormalizeRowsL1InPlace(m *Dense) ([]float64, error) {
	sums, err := RowSums(m)
	if err != nil {
		return nil, err
	}
	var i, j, base int
	var s float32
	for i = 0; i < m.r; i++ {
		if sums[i] == 0 {
			continue
		}
		s = float32(sums[i])
		base = i * m.c
		for j = 0; j < m.c; j++ {
			m.data[base+j] /= s
		}
	}

	return sums, nil
}

// AllClose checks |a-b| ≤ atol + rtol*|b| element-wise for identical shapes.
// NaN never compares close. Negative tolerances are normalized to |tol|.
// Complexity: Time O(r*c), Space O(1).
func AllClose(a, b *Dense, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	var av, bv float64
	for idx := range a.data {
		av, bv = float64(a.data[idx]), float64(b.data[idx])
		if av == bv {
			continue // covers matching infinities
		}
		if math.IsNaN(av) || math.IsNaN(bv) || math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
			return false, nil
		}
	}

	return true, nil
}
