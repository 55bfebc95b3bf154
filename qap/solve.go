// Package qap - dispatcher and engine comparison.
//
// Solve validates options and matrices exactly once and routes to an engine:
//   - ExhaustiveSearch       → exhaustive (global optimum, n ≤ MaxExhaustiveN);
//   - PairwiseExchangeSearch → pairwise (local optimum, any n);
//   - Auto                   → exhaustive when n ≤ MaxExhaustiveN, pairwise otherwise.
//
// Compare runs both engines on the same validated instance and reports how far
// the heuristic landed from the optimum.
package qap

import (
	"context"
	"fmt"

	"github.com/katalvlaran/layoutopt/matrix"
)

// Solve is the main entry point. Failed validation returns the zero Result.
//
// Errors: validation sentinels, ErrUnsupportedAlgorithm, ErrTooLarge,
// ErrInterrupted (with a best-effort Result).
func Solve(ctx context.Context, flow, dist matrix.Matrix, opts Options) (Result, error) {
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}
	in, err := newInstance(flow, dist)
	if err != nil {
		return Result{}, err
	}

	switch opts.Algo {
	case ExhaustiveSearch:
		return exhaustive(ctx, in, opts)
	case PairwiseExchangeSearch:
		return pairwise(ctx, in, opts)
	case Auto:
		if in.n <= opts.exhaustiveLimit() {
			return exhaustive(ctx, in, opts)
		}
		return pairwise(ctx, in, opts)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, opts.Algo)
	}
}

// Comparison pairs the optimal and heuristic results of one instance.
type Comparison struct {
	// Exact is the ExhaustiveSearch result. When the pairwise run is
	// interrupted the exhaustive run never starts and Exact is empty apart
	// from Algo.
	Exact Result

	// Heuristic is the PairwiseExchangeSearch result.
	Heuristic Result

	// Gap is Heuristic.Cost - Exact.Cost (≥ 0 when both runs completed).
	// After an interrupted exhaustive run it is provisional: measured against
	// the best layout scanned so far, and possibly negative.
	Gap float64

	// RelativeGap is Gap / Exact.Cost, or 0 when Exact.Cost == 0.
	RelativeGap float64
}

// Compare runs PairwiseExchange and then Exhaustive on (flow, dist).
// Options.Algo is ignored; the other options apply to both runs.
//
// Errors: validation sentinels, ErrTooLarge (n above MaxExhaustiveN),
// ErrInterrupted from either run. On interruption the partial Comparison is
// returned alongside the error; its gap is filled when the exhaustive run
// evaluated at least one layout.
func Compare(ctx context.Context, flow, dist matrix.Matrix, opts Options) (Comparison, error) {
	opts.Algo = Auto
	if err := validateOptions(opts); err != nil {
		return Comparison{}, err
	}
	in, err := newInstance(flow, dist)
	if err != nil {
		return Comparison{}, err
	}
	if limit := opts.exhaustiveLimit(); in.n > limit {
		return Comparison{}, fmt.Errorf("%w: n=%d, limit %d", ErrTooLarge, in.n, limit)
	}

	var cmp Comparison
	if cmp.Heuristic, err = pairwise(ctx, in, opts); err != nil {
		cmp.Exact = Result{Algo: ExhaustiveSearch}
		return cmp, fmt.Errorf("pairwise: %w", err)
	}
	if cmp.Exact, err = exhaustive(ctx, in, opts); err != nil {
		if cmp.Exact.Layout != nil {
			cmp.setGap()
		}
		return cmp, fmt.Errorf("exhaustive: %w", err)
	}
	cmp.setGap()

	return cmp, nil
}

// setGap fills Gap and RelativeGap from the two costs.
func (c *Comparison) setGap() {
	c.Gap = c.Heuristic.Cost - c.Exact.Cost
	c.RelativeGap = 0
	if c.Exact.Cost != 0 {
		c.RelativeGap = c.Gap / c.Exact.Cost
	}
}
