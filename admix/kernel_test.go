// SPDX-License-Identifier: MIT

package admix_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/admixnmf/admix"
	"github.com/katalvlaran/admixnmf/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateF_RuleAndClamp(t *testing.T) {
	t.Parallel()
	F := dense(t, 1, 3, 0.5, 0.5, 0.5)
	A := dense(t, 1, 3, 0.2, 0.8, 0.0)
	FB := dense(t, 1, 3, 0.4, 0.4, 0.4)

	require.NoError(t, admix.ExportedUpdateF(F, A, FB))
	got := F.Data()
	assert.InDelta(t, 0.25, got[0], 1e-6)
	assert.Equal(t, admix.FactorCeil, got[1])  // 1.0 clamped down
	assert.Equal(t, admix.FactorFloor, got[2]) // 0 clamped up
	// operands are read-only
	assert.Equal(t, []float32{0.2, 0.8, 0}, A.Data())
}

func TestUpdateF_ZeroDenominatorClampsInf(t *testing.T) {
	t.Parallel()
	F := dense(t, 1, 1, 0.5)
	require.NoError(t, admix.ExportedUpdateF(F, dense(t, 1, 1, 1), dense(t, 1, 1, 0)))
	assert.Equal(t, admix.FactorCeil, F.Data()[0])
}

func TestUpdateF_NaNIsCorruption(t *testing.T) {
	t.Parallel()
	F := dense(t, 2, 1, 0.5, 0.5)
	err := admix.ExportedUpdateF(F, dense(t, 2, 1, 0.3, 0), dense(t, 2, 1, 0.3, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, admix.ErrNumericCorruption))
	assert.Contains(t, err.Error(), "(1,0)")
}

func TestUpdateF_ShapeMismatch(t *testing.T) {
	t.Parallel()
	F := dense(t, 1, 2, 0.5, 0.5)
	err := admix.ExportedUpdateF(F, dense(t, 2, 1, 1, 1), dense(t, 1, 2, 1, 1))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestUpdateQ_AlphaZeroIsUnregularized(t *testing.T) {
	t.Parallel()
	Q := dense(t, 1, 2, 0.5, 0.5)
	A := dense(t, 1, 2, 0.3, 0.1)
	QB := dense(t, 1, 2, 0.5, 0.1)

	require.NoError(t, admix.ExportedUpdateQ(Q, A, QB, 0))
	// 0.5·0.3/0.5 = 0.3, 0.5·0.1/0.1 = 0.5, normalized
	assert.InDelta(t, 0.375, Q.Data()[0], 1e-6)
	assert.InDelta(t, 0.625, Q.Data()[1], 1e-6)
}

func TestUpdateQ_AlphaDampsSmallDenominators(t *testing.T) {
	t.Parallel()
	Q := dense(t, 1, 2, 0.5, 0.5)
	A := dense(t, 1, 2, 0.3, 0.1)
	QB := dense(t, 1, 2, 0.5, 0.1)

	require.NoError(t, admix.ExportedUpdateQ(Q, A, QB, 0.4))
	// 0.15/0.9 vs 0.05/0.5 → 0.1667 : 0.1
	assert.InDelta(t, 0.625, Q.Data()[0], 1e-6)
	assert.InDelta(t, 0.375, Q.Data()[1], 1e-6)
	requireRowsSumToOne(t, Q)
}

func TestUpdateQ_NaNIsCorruption(t *testing.T) {
	t.Parallel()
	Q := dense(t, 1, 2, 0.5, 0.5)
	err := admix.ExportedUpdateQ(Q, dense(t, 1, 2, 0, 1), dense(t, 1, 2, 0, 1), 0)
	assert.ErrorIs(t, err, admix.ErrNumericCorruption)
}

func TestAccelBudgets(t *testing.T) {
	t.Parallel()
	// m=4, nb=6, K=2: F → 2·(1 + 32/18) = 4; Q → 2·(1 + 36/12) = 8
	assert.Equal(t, 4, admix.ExportedAccelBudgetF(2, 4, 6, 2))
	assert.Equal(t, 8, admix.ExportedAccelBudgetQ(2, 4, 6, 2))
	// single-site batch
	assert.Equal(t, 2*(1+(4+8)/(2+1)), admix.ExportedAccelBudgetF(2, 4, 1, 2))
	assert.Equal(t, 2*(1+(4+2)/(8+4)), admix.ExportedAccelBudgetQ(2, 4, 1, 2))
}

// deltas returns a step func that yields vals in order.
func deltas(vals ...float64) (func() (float64, error), *int) {
	calls := 0
	return func() (float64, error) {
		v := vals[calls]
		calls++
		return v, nil
	}, &calls
}

func TestAccelerate(t *testing.T) {
	t.Parallel()
	t.Run("EarlyExit", func(t *testing.T) {
		step, calls := deltas(1, 0.5, 0.1, 0.01)
		n, err := admix.ExportedAccelerate(4, 0.1, step)
		require.NoError(t, err)
		assert.Equal(t, 3, n) // 0.1 <= 0.1·1
		assert.Equal(t, 3, *calls)
	})
	t.Run("BudgetExhausted", func(t *testing.T) {
		step, calls := deltas(1, 0.9, 0.8)
		n, err := admix.ExportedAccelerate(3, 0.1, step)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, 3, *calls)
	})
	t.Run("FirstStepOnlyRecords", func(t *testing.T) {
		step, calls := deltas(0, 0)
		n, err := admix.ExportedAccelerate(5, 0.1, step)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 2, *calls)
	})
	t.Run("ErrorStops", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		_, err := admix.ExportedAccelerate(5, 0.1, func() (float64, error) {
			calls++
			if calls == 2 {
				return 0, boom
			}
			return 1, nil
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 2, calls)
	})
}

func TestRecenter(t *testing.T) {
	t.Parallel()
	lo, mid, hi := admix.ExportedRecenter(0, 0.5, 1, 0.25, 0, true)
	assert.Equal(t, []float64{0, 0.25, 0.5}, []float64{lo, mid, hi})

	lo, mid, hi = admix.ExportedRecenter(0, 0.5, 1, 0.25, 1, false)
	assert.Equal(t, []float64{0.25, 0.5, 0.75}, []float64{lo, mid, hi})

	lo, mid, hi = admix.ExportedRecenter(0, 0.5, 1, 0.25, 2, false)
	assert.Equal(t, []float64{0.75, 1, 1.25}, []float64{lo, mid, hi})
}

func TestMonitor(t *testing.T) {
	t.Parallel()
	q0 := dense(t, 1, 2, 0.5, 0.5)
	q1 := dense(t, 1, 2, 0.6, 0.4)
	q2 := dense(t, 1, 2, 0.6, 0.4)

	diffs, done, err := admix.MonitorCheck_TestOnly(1e-3, q0, q1, q2)
	require.NoError(t, err)
	assert.True(t, done)
	require.Len(t, diffs, 2)
	assert.InDelta(t, 0.1, diffs[0], 1e-6)
	assert.Zero(t, diffs[1]) // snapshot advanced to q1

	_, done, err = admix.MonitorCheck_TestOnly(0, q0, q1, q2)
	require.NoError(t, err)
	assert.False(t, done) // 0 < 0 never holds
}

// Repeated F/Q updates on one batch keep F inside the factor domain and
// every Q row a distribution after each call.
func TestKernels_InvariantsHoldAfterEveryUpdate(t *testing.T) {
	t.Parallel()
	const k = 3
	pop := synthPopulation(t, 9, 14, k, 41)
	X := pop.X

	q := make([]float32, 9*k)
	f := make([]float32, 14*k)
	for i := range q {
		q[i] = 0.2 + 0.05*float32(i%5)
	}
	for i := range f {
		f[i] = 0.1 + 0.06*float32(i%13)
	}
	Q := dense(t, 9, k, q...)
	F := dense(t, 14, k, f...)
	_, err := matrix.NormalizeRowsL1InPlace(Q)
	require.NoError(t, err)

	for step := 0; step < 12; step++ {
		A, err := matrix.MulTA(X, Q)
		require.NoError(t, err)
		B, err := matrix.MulTA(Q, Q)
		require.NoError(t, err)
		FB, err := matrix.Mul(F, B)
		require.NoError(t, err)
		require.NoError(t, admix.ExportedUpdateF(F, A, FB))
		require.NoErrorf(t, matrix.ValidateBounds(F, admix.FactorFloor, admix.FactorCeil), "F after step %d", step)

		alpha := 0.1 * float64(step%3)
		A, err = matrix.Mul(X, F)
		require.NoError(t, err)
		B, err = matrix.MulTA(F, F)
		require.NoError(t, err)
		QB, err := matrix.Mul(Q, B)
		require.NoError(t, err)
		require.NoError(t, admix.ExportedUpdateQ(Q, A, QB, alpha))
		requireRowsSumToOne(t, Q)
		for idx, v := range Q.Data() {
			require.Greaterf(t, v, float32(0), "Q[%d] after step %d", idx, step)
		}
	}
}
