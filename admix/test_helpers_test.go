// SPDX-License-Identifier: MIT
// Package admix_test contains shared fixtures.
//
// Purpose:
//   • Build small synthetic admixed populations with known low-rank structure.
//   • Derive strictly positive genotype likelihoods from the same frequencies.

package admix_test

import (
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/admixnmf/matrix"
	"github.com/stretchr/testify/require"
)

const (
	rowSumTol = 1e-5
	likeFloor = 1e-3
)

// population is one synthetic dataset.
type population struct {
	X     *matrix.Dense // m×n individual allele frequencies
	Likes *matrix.Dense // 3m×n genotype likelihoods
}

// synthPopulation draws Q (m×k, rows summing to 1) and F (n×k, in [0.05,0.95])
// and returns X = Q·Fᵗ with Hardy–Weinberg likelihoods derived from X.
func synthPopulation(t testing.TB, m, n, k int, seed uint64) population {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 0x5eed))

	q := make([]float32, m*k)
	for i := 0; i < m; i++ {
		var sum float32
		for c := 0; c < k; c++ {
			q[i*k+c] = 0.1 + rng.Float32()
			sum += q[i*k+c]
		}
		for c := 0; c < k; c++ {
			q[i*k+c] /= sum
		}
	}
	f := make([]float32, n*k)
	for i := range f {
		f[i] = 0.05 + 0.9*rng.Float32()
	}
	Q, err := matrix.NewDenseData(m, k, q)
	require.NoError(t, err)
	F, err := matrix.NewDenseData(n, k, f)
	require.NoError(t, err)
	X, err := matrix.MulBT(Q, F)
	require.NoError(t, err)
	require.NoError(t, matrix.ClipInPlace(X, 0, 1))

	x := X.Data()
	l := make([]float32, 3*m*n)
	for i := 0; i < m; i++ {
		for s := 0; s < n; s++ {
			p := x[i*n+s]
			l[(3*i)*n+s] = (1-p)*(1-p) + likeFloor
			l[(3*i+1)*n+s] = 2*p*(1-p) + likeFloor
			l[(3*i+2)*n+s] = p*p + likeFloor
		}
	}
	L, err := matrix.NewDenseData(3*m, n, l)
	require.NoError(t, err)

	return population{X: X, Likes: L}
}

// dense builds an r×c matrix from row-major values or fails the test.
func dense(t testing.TB, r, c int, vals ...float32) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseData(r, c, vals)
	require.NoError(t, err)

	return m
}

// requireRowsSumToOne checks every row of q sums to 1 and stays in (0,1).
func requireRowsSumToOne(t testing.TB, q *matrix.Dense) {
	t.Helper()
	sums, err := matrix.RowSums(q)
	require.NoError(t, err)
	for i, s := range sums {
		require.InDeltaf(t, 1.0, s, rowSumTol, "row %d", i)
	}
	require.NoError(t, matrix.ValidateBounds(q, 0, 1))
}
