// SPDX-License-Identifier: MIT

package admix_test

import (
	"testing"

	"github.com/katalvlaran/admixnmf/admix"
	"github.com/katalvlaran/admixnmf/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit_SmallScenario(t *testing.T) {
	t.Parallel()
	pop := synthPopulation(t, 4, 6, 2, 1)
	rec := &admix.Recorder{}

	res, err := admix.Fit(pop.X, pop.Likes, 2,
		admix.WithMaxIter(1), admix.WithBatches(1), admix.WithThreads(1),
		admix.WithSeed(0), admix.WithObserver(rec))
	require.NoError(t, err)

	r, c := res.Q.Shape()
	assert.Equal(t, [2]int{4, 2}, [2]int{r, c})
	r, c = res.F.Shape()
	assert.Equal(t, [2]int{6, 2}, [2]int{r, c})
	requireRowsSumToOne(t, res.Q)
	assert.NoError(t, matrix.ValidateBounds(res.F, admix.FactorFloor, admix.FactorCeil))
	assert.Equal(t, 1, res.Iterations)
	assert.Len(t, rec.Kind(admix.EventIteration), 1)
	assert.GreaterOrEqual(t, res.Frobenius, 0.0)
}

func TestFit_Reproducible(t *testing.T) {
	t.Parallel()
	pop := synthPopulation(t, 12, 40, 3, 2)
	opts := []admix.Option{admix.WithSeed(7), admix.WithMaxIter(5), admix.WithBatches(4)}

	a, err := admix.Fit(pop.X, pop.Likes, 3, opts...)
	require.NoError(t, err)
	b, err := admix.Fit(pop.X, pop.Likes, 3, opts...)
	require.NoError(t, err)

	assert.Equal(t, a.Q.Data(), b.Q.Data())
	assert.Equal(t, a.F.Data(), b.F.Data())
	assert.Equal(t, a.LogLikelihood, b.LogLikelihood)
	assert.Equal(t, a.Frobenius, b.Frobenius)
}

func TestFit_SeedChangesStart(t *testing.T) {
	t.Parallel()
	pop := synthPopulation(t, 10, 30, 2, 3)
	a, err := admix.Fit(pop.X, pop.Likes, 2, admix.WithSeed(1), admix.WithMaxIter(1))
	require.NoError(t, err)
	b, err := admix.Fit(pop.X, pop.Likes, 2, admix.WithSeed(2), admix.WithMaxIter(1))
	require.NoError(t, err)
	assert.NotEqual(t, a.Q.Data(), b.Q.Data())
}

func TestFit_ThreadCountOnlyPartitionsReductions(t *testing.T) {
	t.Parallel()
	pop := synthPopulation(t, 9, 25, 2, 4)
	one, err := admix.Fit(pop.X, pop.Likes, 2, admix.WithMaxIter(3), admix.WithThreads(1))
	require.NoError(t, err)
	four, err := admix.Fit(pop.X, pop.Likes, 2, admix.WithMaxIter(3), admix.WithThreads(4))
	require.NoError(t, err)

	assert.Equal(t, one.Q.Data(), four.Q.Data())
	assert.Equal(t, one.LogLikelihood, four.LogLikelihood)
	assert.Equal(t, one.Frobenius, four.Frobenius)
}

func TestFit_OversizedBatchesAndThreadsDegrade(t *testing.T) {
	t.Parallel()
	pop := synthPopulation(t, 4, 6, 2, 5)
	res, err := admix.Fit(pop.X, pop.Likes, 2,
		admix.WithBatches(100), admix.WithThreads(100), admix.WithMaxIter(2))
	require.NoError(t, err)
	requireRowsSumToOne(t, res.Q)
}

func TestFit_LargeToleranceStopsAfterFirstIteration(t *testing.T) {
	t.Parallel()
	pop := synthPopulation(t, 8, 20, 2, 6)
	rec := &admix.Recorder{}
	res, err := admix.Fit(pop.X, pop.Likes, 2,
		admix.WithTolerance(10), admix.WithMaxIter(50), admix.WithObserver(rec))
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	require.Len(t, rec.Kind(admix.EventConverged), 1)
	assert.Equal(t, 1, rec.Kind(admix.EventConverged)[0].Iteration)
}

func TestFit_ZeroToleranceRunsBudget(t *testing.T) {
	t.Parallel()
	pop := synthPopulation(t, 6, 12, 2, 7)
	rec := &admix.Recorder{}
	res, err := admix.Fit(pop.X, pop.Likes, 2,
		admix.WithTolerance(0), admix.WithMaxIter(3), admix.WithObserver(rec))
	require.NoError(t, err)

	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
	its := rec.Kind(admix.EventIteration)
	require.Len(t, its, 3)
	for i, e := range its {
		assert.Equal(t, i+1, e.Iteration)
		assert.Equal(t, admix.MetricQRMSD, e.Metric)
		assert.GreaterOrEqual(t, e.Value, 0.0)
	}
}

func TestFit_EventOrder(t *testing.T) {
	t.Parallel()
	pop := synthPopulation(t, 5, 10, 2, 8)
	rec := &admix.Recorder{}
	_, err := admix.Fit(pop.X, pop.Likes, 2,
		admix.WithAlpha(0.5), admix.WithSeed(3), admix.WithMaxIter(2), admix.WithObserver(rec))
	require.NoError(t, err)

	ev := rec.Events()
	require.GreaterOrEqual(t, len(ev), 4)
	first := ev[0]
	assert.Equal(t, admix.EventFitStart, first.Kind)
	assert.Equal(t, 2, first.K)
	assert.Equal(t, 0.5, first.Alpha)
	assert.Equal(t, uint64(3), first.Seed)
	assert.Equal(t, admix.DefaultBatches, first.Batches)

	assert.Equal(t, admix.EventObjective, ev[len(ev)-2].Kind)
	last := ev[len(ev)-1]
	assert.Equal(t, admix.EventLogLikelihood, last.Kind)
	assert.Equal(t, admix.MetricLogLikelihood, last.Metric)
	assert.Greater(t, last.Elapsed.Nanoseconds(), int64(0))
}

// Scores are computed against the caller's site order: recomputing them
// from the returned factors and the original X must match exactly.
func TestFit_ScoresUseOriginalSiteOrder(t *testing.T) {
	t.Parallel()
	pop := synthPopulation(t, 7, 33, 3, 9)
	res, err := admix.Fit(pop.X, pop.Likes, 3, admix.WithMaxIter(4), admix.WithBatches(3))
	require.NoError(t, err)

	pi, err := matrix.MulBT(res.Q, res.F)
	require.NoError(t, err)
	require.NoError(t, matrix.ClipInPlace(pi, admix.FactorFloor, admix.FactorCeil))

	ll, err := admix.LogLikelihood(pop.Likes, pi, 1)
	require.NoError(t, err)
	assert.Equal(t, res.LogLikelihood, ll)

	frob, err := matrix.Frobenius(pop.X, pi)
	require.NoError(t, err)
	assert.InDelta(t, res.Frobenius, frob*frob, 1e-9*(1+res.Frobenius))
}

func TestFit_ReconstructionImprovesWithIterations(t *testing.T) {
	t.Parallel()
	pop := synthPopulation(t, 20, 60, 2, 10)
	short, err := admix.Fit(pop.X, pop.Likes, 2, admix.WithMaxIter(1), admix.WithTolerance(0))
	require.NoError(t, err)
	long, err := admix.Fit(pop.X, pop.Likes, 2, admix.WithMaxIter(30), admix.WithTolerance(0))
	require.NoError(t, err)
	assert.LessOrEqual(t, long.Frobenius, short.Frobenius)
}

func TestFit_InvalidInput(t *testing.T) {
	t.Parallel()
	pop := synthPopulation(t, 4, 6, 2, 11)
	badX := pop.X.Clone()
	badX.Data()[3] = 1.5
	badL := pop.Likes.Clone()
	badL.Data()[0] = -1
	shortL := dense(t, 3, 6, make([]float32, 18)...)

	cases := []struct {
		name     string
		X, likes *matrix.Dense
		k        int
	}{
		{"NilX", nil, pop.Likes, 2},
		{"NilLikes", pop.X, nil, 2},
		{"LikesRows", pop.X, shortL, 2},
		{"KZero", pop.X, pop.Likes, 0},
		{"KTooLarge", pop.X, pop.Likes, 5},
		{"XOutOfRange", badX, pop.Likes, 2},
		{"NegativeLikes", pop.X, badL, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &admix.Recorder{}
			_, err := admix.Fit(tc.X, tc.likes, tc.k, admix.WithObserver(rec))
			require.ErrorIs(t, err, admix.ErrInvalidInput)
			assert.Empty(t, rec.Events(), "no work before validation")
		})
	}
}

func TestFit_KEqualsMinDimension(t *testing.T) {
	t.Parallel()
	pop := synthPopulation(t, 3, 8, 3, 12)
	res, err := admix.Fit(pop.X, pop.Likes, 3, admix.WithMaxIter(2))
	require.NoError(t, err)
	requireRowsSumToOne(t, res.Q)
}
