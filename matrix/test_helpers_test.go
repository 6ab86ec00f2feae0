// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures and comparison utilities.
//   • Keep all data finite so the numeric policy never interferes by accident.

package matrix_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/admixnmf/matrix"
	"github.com/stretchr/testify/require"
)

// NewFilledDense allocates an r×c *Dense holding a copy of vals (row-major)
// or fails the test.
func NewFilledDense(t testing.TB, r, c int, vals []float32) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseData(r, c, vals)
	require.NoError(t, err)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, m *matrix.Dense, i, j int) float32 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// CompareClose fails unless a and b have equal shapes and every cell is
// within atol + rtol*|b|.
func CompareClose(t testing.TB, a, b *matrix.Dense, rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(a, b, rtol, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ:\n%v\nvs\n%v", a, b)
}

// randDense fills an r×c matrix with deterministic uniform values in [0,1).
func randDense(t testing.TB, r, c int, seed uint64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	vals := make([]float32, r*c)
	for i := range vals {
		vals[i] = rng.Float32()
	}

	return NewFilledDense(t, r, c, vals)
}

// naiveMul is the reference i→j→k product in float64.
func naiveMul(t testing.TB, a, b *matrix.Dense) *matrix.Dense {
	t.Helper()
	out, err := matrix.NewDense(a.Rows(), b.Cols())
	require.NoError(t, err)
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < b.Cols(); j++ {
			var s float64
			for k := 0; k < a.Cols(); k++ {
				s += float64(MustAt(t, a, i, k)) * float64(MustAt(t, b, k, j))
			}
			require.NoError(t, out.Set(i, j, float32(s)))
		}
	}

	return out
}

var nan32 = float32(math.NaN())
