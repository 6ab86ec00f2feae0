// SPDX-License-Identifier: MIT
// Package matrix - index permutations.
//
// Convention (gather form):
//   - PermuteCols(m, p)[:, j] = m[:, p[j]]
//   - PermuteRows(m, p)[i, :] = m[p[i], :]
//   - PermuteCols(PermuteCols(m, p), InversePermutation(p)) == m.

package matrix

import "fmt"

// ValidatePermutation ensures p is a permutation of 0..n-1.
func ValidatePermutation(p []int, n int) error {
	if len(p) != n {
		return validatorErrorf("ValidatePermutation", fmt.Errorf("len=%d want %d: %w", len(p), n, ErrBadPermutation))
	}
	seen := make([]bool, n)
	for pos, v := range p {
		if v < 0 || v >= n || seen[v] {
			return validatorErrorf("ValidatePermutation", fmt.Errorf("p[%d]=%d: %w", pos, v, ErrBadPermutation))
		}
		seen[v] = true
	}

	return nil
}

// InversePermutation returns q with q[p[i]] = i (the argsort of p).
// Complexity: O(n).
func InversePermutation(p []int) ([]int, error) {
	if err := ValidatePermutation(p, len(p)); err != nil {
		return nil, matrixErrorf(opInvPerm, err)
	}
	q := make([]int, len(p))
	for i, v := range p {
		q[v] = i
	}

	return q, nil
}

// PermuteCols returns a copy of m with columns gathered by p.
// Errors: ErrNilMatrix, ErrBadPermutation.
// Complexity: Time O(r*c), Space O(r*c).
func PermuteCols(m *Dense, p []int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opPermCols, err)
	}
	if err := ValidatePermutation(p, m.c); err != nil {
		return nil, matrixErrorf(opPermCols, err)
	}
	out := &Dense{r: m.r, c: m.c, data: make([]float32, len(m.data)), validateNaNInf: m.validateNaNInf}
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			out.data[base+j] = m.data[base+p[j]]
		}
	}

	return out, nil
}

// PermuteRows returns a copy of m with rows gathered by p.
// Errors: ErrNilMatrix, ErrBadPermutation.
// Complexity: Time O(r*c), Space O(r*c).
func PermuteRows(m *Dense, p []int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opPermRows, err)
	}
	if err := ValidatePermutation(p, m.r); err != nil {
		return nil, matrixErrorf(opPermRows, err)
	}
	out := &Dense{r: m.r, c: m.c, data: make([]float32, len(m.data)), validateNaNInf: m.validateNaNInf}
	for i, src := range p {
		copy(out.data[i*m.c:(i+1)*m.c], m.data[src*m.c:(src+1)*m.c])
	}

	return out, nil
}
