// SPDX-License-Identifier: MIT
// Package matrix - bridges to gonum/mat.
//
// Dense solves (inverse of small Gram matrices) are delegated to gonum's
// LAPACK-backed routines in float64; results are rounded back to float32.

package matrix

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ToGonum widens m into a freshly allocated *mat.Dense.
// Complexity: O(r*c).
func ToGonum(m *Dense) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	buf := make([]float64, len(m.data))
	for idx, v := range m.data {
		buf[idx] = float64(v)
	}

	return mat.NewDense(m.r, m.c, buf), nil
}

// FromGonum narrows any gonum matrix into a new *Dense.
// Errors: ErrInvalidDimensions for empty inputs, ErrNaNInf for non-finite cells.
func FromGonum(g mat.Matrix) (*Dense, error) {
	r, c := g.Dims()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v = g.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf("FromGonum", i, j, ErrNaNInf)
			}
			out.data[i*c+j] = float32(v)
		}
	}

	return out, nil
}

// Inverse returns m⁻¹ computed by gonum (LU with partial pivoting).
// Policy:
//   - Exactly singular input fails with ErrSingular.
//   - Ill-conditioned but invertible input is accepted; gonum's
//     mat.Condition warning is not treated as an error.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square), ErrSingular.
// Complexity: O(n³).
func Inverse(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if m.r != m.c {
		return nil, matrixErrorf(opSolve, validatorErrorf("ValidateSquare", ErrDimensionMismatch))
	}
	g, err := ToGonum(m)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	var inv mat.Dense
	if err = inv.Inverse(g); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, matrixErrorf(opSolve, ErrSingular)
		}
	}
	out, err := FromGonum(&inv)
	if err != nil {
		return nil, matrixErrorf(opSolve, ErrSingular)
	}

	return out, nil
}
