package qap_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/katalvlaran/layoutopt/qap"
	"github.com/stretchr/testify/require"
)

// pairwiseOpts returns PairwiseExchangeSearch options bounded by maxRounds (0 = unlimited).
func pairwiseOpts(maxRounds int) qap.Options {
	opts := qap.DefaultOptions()
	opts.Algo = qap.PairwiseExchangeSearch
	opts.MaxRounds = maxRounds
	return opts
}

// TestPairwise_SampleScenario pins the full trace of the 4-department example.
func TestPairwise_SampleScenario(t *testing.T) {
	t.Parallel()
	flow, dist := sample(t)

	res, err := qap.PairwiseExchange(context.Background(), flow, dist, pairwiseOpts(0))
	require.NoError(t, err)
	require.Equal(t, qap.PairwiseExchangeSearch, res.Algo)
	require.Equal(t, qap.Assignment{3, 1, 2, 0}, res.Layout)
	require.Equal(t, 375.0, res.Cost)
	require.True(t, res.Complete)
	require.Equal(t, uint64(1+2*6), res.Evaluations)
	require.Equal(t, []qap.Step{
		{Iteration: 0, Layout: qap.Assignment{0, 1, 2, 3}, Cost: 390, Swap: [2]int{-1, -1}},
		{Iteration: 1, Layout: qap.Assignment{3, 1, 2, 0}, Cost: 375, Swap: [2]int{0, 3}},
	}, res.Trace)
}

// TestPairwise_MultiRoundTraces pins traces that need several rounds.
func TestPairwise_MultiRoundTraces(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		n     int
		trace []qap.Step
	}{
		{
			name: "n=5",
			n:    5,
			trace: []qap.Step{
				{Iteration: 0, Layout: qap.Assignment{0, 1, 2, 3, 4}, Cost: 430, Swap: [2]int{-1, -1}},
				{Iteration: 1, Layout: qap.Assignment{0, 1, 3, 2, 4}, Cost: 376, Swap: [2]int{2, 3}},
				{Iteration: 2, Layout: qap.Assignment{0, 2, 3, 1, 4}, Cost: 360, Swap: [2]int{1, 3}},
				{Iteration: 3, Layout: qap.Assignment{0, 4, 3, 1, 2}, Cost: 358, Swap: [2]int{1, 4}},
			},
		},
		{
			name: "n=7",
			n:    7,
			trace: []qap.Step{
				{Iteration: 0, Layout: qap.Assignment{0, 1, 2, 3, 4, 5, 6}, Cost: 1156, Swap: [2]int{-1, -1}},
				{Iteration: 1, Layout: qap.Assignment{0, 1, 3, 2, 4, 5, 6}, Cost: 1058, Swap: [2]int{2, 3}},
				{Iteration: 2, Layout: qap.Assignment{0, 4, 3, 2, 1, 5, 6}, Cost: 976, Swap: [2]int{1, 4}},
				{Iteration: 3, Layout: qap.Assignment{6, 4, 3, 2, 1, 5, 0}, Cost: 964, Swap: [2]int{0, 6}},
			},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			flow, dist := formulaInstance(t, tc.n, 5, 2, 4)

			res, err := qap.PairwiseExchange(context.Background(), flow, dist, pairwiseOpts(0))
			require.NoError(t, err)
			require.True(t, res.Complete)
			require.Equal(t, tc.trace, res.Trace)
			last := tc.trace[len(tc.trace)-1]
			require.Equal(t, last.Layout, res.Layout)
			require.Equal(t, last.Cost, res.Cost)

			pairs := uint64(tc.n * (tc.n - 1) / 2)
			require.Equal(t, 1+uint64(len(tc.trace))*pairs, res.Evaluations)
		})
	}
}

// TestPairwise_TraceProperties checks, on random instances, that iterations
// are consecutive, costs strictly decrease, every step differs from the
// previous by exactly its swap, and the final layout is a local optimum.
func TestPairwise_TraceProperties(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(seedDet + 3))

	for n := 2; n <= 9; n++ {
		flow, dist := randomInstance(t, rng, n, 9)
		res, err := qap.PairwiseExchange(context.Background(), flow, dist, pairwiseOpts(0))
		require.NoError(t, err)
		require.True(t, res.Complete)
		require.NotEmpty(t, res.Trace)
		require.Equal(t, qap.Identity(n), res.Trace[0].Layout)

		for k := 1; k < len(res.Trace); k++ {
			prev, cur := res.Trace[k-1], res.Trace[k]
			require.Equal(t, k, cur.Iteration)
			require.Less(t, cur.Cost, prev.Cost)

			i, j := cur.Swap[0], cur.Swap[1]
			require.Less(t, i, j)
			want := prev.Layout.Clone()
			want[i], want[j] = want[j], want[i]
			require.Equal(t, want, cur.Layout)

			c, err := qap.Cost(flow, dist, cur.Layout)
			require.NoError(t, err)
			require.Equal(t, c, cur.Cost)
		}

		ok, err := qap.IsLocalOptimum(flow, dist, res.Layout)
		require.NoError(t, err)
		require.Truef(t, ok, "n=%d layout %v is not a local optimum", n, res.Layout)
	}
}

// TestPairwise_Deterministic runs the same instance repeatedly.
func TestPairwise_Deterministic(t *testing.T) {
	t.Parallel()
	flow, dist := formulaInstance(t, 8, 3, 8, 5)

	first, err := qap.PairwiseExchange(context.Background(), flow, dist, pairwiseOpts(0))
	require.NoError(t, err)
	for k := 0; k < 3; k++ {
		again, err := qap.PairwiseExchange(context.Background(), flow, dist, pairwiseOpts(0))
		require.NoError(t, err)
		require.Equal(t, first.Layout, again.Layout)
		require.Equal(t, first.Trace, again.Trace)
	}
}

// TestPairwise_NeverBeatsExhaustive checks heuristic ≥ exact.
func TestPairwise_NeverBeatsExhaustive(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(seedDet + 4))

	for n := 1; n <= 7; n++ {
		flow, dist := randomInstance(t, rng, n, 9)
		exact, err := qap.Exhaustive(context.Background(), flow, dist, exhaustiveOpts(2))
		require.NoError(t, err)
		heur, err := qap.PairwiseExchange(context.Background(), flow, dist, pairwiseOpts(0))
		require.NoError(t, err)
		require.GreaterOrEqual(t, heur.Cost, exact.Cost)
	}
}

// TestPairwise_Degenerate covers n = 0 and n = 1: one step, nothing to swap.
func TestPairwise_Degenerate(t *testing.T) {
	t.Parallel()

	for _, rows := range [][][]float64{nil, {{4}}} {
		m := dense(t, rows)
		res, err := qap.PairwiseExchange(context.Background(), m, m, pairwiseOpts(0))
		require.NoError(t, err)
		require.True(t, res.Complete)
		require.Equal(t, qap.Identity(len(rows)), res.Layout)
		require.Zero(t, res.Cost)
		require.Len(t, res.Trace, 1)
		require.Equal(t, [2]int{-1, -1}, res.Trace[0].Swap)
	}
}

// TestPairwise_MaxRounds stops early without an error.
func TestPairwise_MaxRounds(t *testing.T) {
	t.Parallel()
	flow, dist := formulaInstance(t, 5, 5, 2, 4)

	res, err := qap.PairwiseExchange(context.Background(), flow, dist, pairwiseOpts(1))
	require.NoError(t, err)
	require.False(t, res.Complete)
	require.Len(t, res.Trace, 2)
	require.Equal(t, qap.Assignment{0, 1, 3, 2, 4}, res.Layout)
	require.Equal(t, 376.0, res.Cost)

	// The trace has exactly three accepted rounds: a bound of three still
	// certifies the local optimum.
	res, err = qap.PairwiseExchange(context.Background(), flow, dist, pairwiseOpts(3))
	require.NoError(t, err)
	require.True(t, res.Complete)
	require.Len(t, res.Trace, 4)
	require.Equal(t, 358.0, res.Cost)

	// A bound the search never reaches changes nothing.
	res, err = qap.PairwiseExchange(context.Background(), flow, dist, pairwiseOpts(10))
	require.NoError(t, err)
	require.True(t, res.Complete)
	require.Equal(t, 358.0, res.Cost)
}

// TestPairwise_MaxRoundsAtConvergence reports a complete run when the last
// permitted round lands on a local optimum.
func TestPairwise_MaxRoundsAtConvergence(t *testing.T) {
	t.Parallel()
	flow, dist := sample(t)

	res, err := qap.PairwiseExchange(context.Background(), flow, dist, pairwiseOpts(1))
	require.NoError(t, err)
	require.True(t, res.Complete)
	require.Equal(t, qap.Assignment{3, 1, 2, 0}, res.Layout)
	require.Equal(t, 375.0, res.Cost)
	require.Equal(t, uint64(1+2*6), res.Evaluations)

	ok, err := qap.IsLocalOptimum(flow, dist, res.Layout)
	require.NoError(t, err)
	require.True(t, ok)
}

// TestPairwise_Cancelled returns the initial step only.
func TestPairwise_Cancelled(t *testing.T) {
	t.Parallel()
	flow, dist := sample(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := qap.PairwiseExchange(ctx, flow, dist, pairwiseOpts(0))
	require.ErrorIs(t, err, qap.ErrInterrupted)
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, res.Complete)
	require.Len(t, res.Trace, 1)
	require.Equal(t, qap.Identity(4), res.Layout)
	require.Equal(t, 390.0, res.Cost)
}

// TestIsLocalOptimum contrasts the identity and the converged layout.
func TestIsLocalOptimum(t *testing.T) {
	t.Parallel()
	flow, dist := sample(t)

	ok, err := qap.IsLocalOptimum(flow, dist, qap.Identity(4))
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = qap.IsLocalOptimum(flow, dist, qap.Assignment{3, 1, 2, 0})
	require.NoError(t, err)
	require.True(t, ok)

	_, err = qap.IsLocalOptimum(flow, dist, qap.Assignment{3, 1, 2})
	require.ErrorIs(t, err, qap.ErrInvalidAssignment)
}
