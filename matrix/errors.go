// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels (optionally wrapped with an op tag via
// matrixErrorf) and tests match them with errors.Is.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Mul where a.Cols != b.Rows, or a data slice of the wrong length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil *Dense (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrSingular is returned when a dense solve meets a singular system.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrBadPermutation indicates an index slice that is not a permutation of 0..n-1.
	ErrBadPermutation = errors.New("matrix: not a permutation")

	// ErrParse indicates malformed delimited text input.
	ErrParse = errors.New("matrix: malformed text input")
)

// Operation tags for uniform error wrapping.
const (
	opMul       = "Mul"
	opMulTA     = "MulTA"
	opMulBT     = "MulBT"
	opTranspose = "Transpose"
	opClip      = "Clip"
	opNormRows  = "NormalizeRowsL1"
	opAllClose  = "AllClose"
	opPermCols  = "PermuteCols"
	opPermRows  = "PermuteRows"
	opInvPerm   = "InversePermutation"
	opFrobenius = "Frobenius"
	opFrobChunk = "FrobeniusChunked"
	opRMSD      = "RMSD"
	opSolve     = "SolveNormal"
	opRead      = "ReadText"
	opWrite     = "WriteText"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
// Call only with a non-nil err.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
