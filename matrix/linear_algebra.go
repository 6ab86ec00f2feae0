// SPDX-License-Identifier: MIT
// Package matrix - product and transpose kernels.
//
// Purpose:
//   - Mul   : a·b
//   - MulTA : aᵀ·b without materializing aᵀ
//   - MulBT : a·bᵀ without materializing bᵀ
//   - Transpose.
//
// Determinism & Policy:
//   - Products run through gonum's single-precision GEMM (blas32) directly on
//     the row-major buffers; transposed operands are passed as blas.Trans.
//   - Operands are never mutated; results are freshly allocated.

package matrix

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// general views m as a blas32 row-major matrix sharing its storage.
func general(m *Dense) blas32.General {
	return blas32.General{Rows: m.r, Cols: m.c, Stride: m.c, Data: m.data}
}

// gemm returns op(a)·op(b) into a fresh rows×cols matrix.
func gemm(tA, tB blas.Transpose, a, b *Dense, rows, cols int) (*Dense, error) {
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	blas32.Gemm(tA, tB, 1, general(a), general(b), 0, general(res))

	return res, nil
}

// Mul returns a·b.
// Implementation:
//   - Stage 1: ValidateMulCompatible.
//   - Stage 2: blas32.Gemm(NoTrans, NoTrans) into an r×c result.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := gemm(blas.NoTrans, blas.NoTrans, a, b, a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	return res, nil
}

// MulTA returns aᵀ·b for a (r×p) and b (r×q); the result is p×q.
// Implementation:
//   - blas32.Gemm(Trans, NoTrans); aᵀ is never materialized.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Rows != b.Rows).
//
// Complexity:
//   - Time O(r*p*q), Space O(p*q).
//
// AI-Hints: Xᵀ·Q and QᵀQ in the factor updates are both MulTA calls.
func MulTA(a, b *Dense) (*Dense, error) {
	if err := ValidateMulTACompatible(a, b); err != nil {
		return nil, matrixErrorf(opMulTA, err)
	}
	res, err := gemm(blas.Trans, blas.NoTrans, a, b, a.c, b.c)
	if err != nil {
		return nil, matrixErrorf(opMulTA, err)
	}

	return res, nil
}

// MulBT returns a·bᵀ for a (r×k) and b (c×k); the result is r×c.
// Complexity: Time O(r*c*k), Space O(r*c).
func MulBT(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a, b); err != nil {
		return nil, matrixErrorf(opMulBT, err)
	}
	if a.c != b.c {
		return nil, matrixErrorf(opMulBT, validatorErrorf("MulBT", ErrDimensionMismatch))
	}
	res, err := gemm(blas.NoTrans, blas.Trans, a, b, a.r, b.r)
	if err != nil {
		return nil, matrixErrorf(opMulBT, err)
	}

	return res, nil
}

// Transpose returns a new c×r matrix mᵀ.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(m.c, m.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			res.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return res, nil
}
