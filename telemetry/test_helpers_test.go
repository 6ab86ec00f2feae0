// SPDX-License-Identifier: MIT

package telemetry_test

import (
	"testing"

	"github.com/katalvlaran/admixnmf/matrix"
	"github.com/stretchr/testify/require"
)

func mustDense(t testing.TB, r, c int, vals []float32) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseData(r, c, vals)
	require.NoError(t, err)

	return m
}
