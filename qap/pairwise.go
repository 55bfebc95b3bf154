// Package qap - pairwise-exchange local search (2-exchange, best swap per round).
//
// PairwiseExchange is a small state machine:
//
//	INITIAL           layout = identity; record Step 0.
//	EVALUATING_ROUND  evaluate every swap (i<j) of the current layout in
//	                  lexicographic (i,j) order; keep the strictly cheapest
//	                  (first found wins on ties).
//	IMPROVED          best < round start cost: apply that one swap, append a
//	                  Step, go back to EVALUATING_ROUND.
//	CONVERGED         no swap improves: the layout is a 2-exchange local optimum.
//
// Every round scans the full neighborhood before deciding; the first improving
// swap is NOT applied eagerly. The result is a deterministic function of
// (flow, dist): no randomness, no restarts, always the identity start.
//
// Termination: the cost strictly decreases each accepted round and there are
// finitely many layouts, so the loop halts. Options.MaxRounds and the context
// can stop it earlier (Complete == false). The round after the last permitted
// one is still scanned, so a layout that is already a local optimum when the
// budget runs out is reported as Complete.
//
// Complexity: per round n(n-1)/2 evaluations of O(n²) each; O(n) extra space
// plus the trace.
package qap

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/layoutopt/matrix"
)

// PairwiseExchange runs the local search on (flow, dist) and returns the final
// layout, its cost and the full per-round trace.
//
// Errors: validation sentinels (see validate.go); ErrInterrupted on
// cancellation or TimeLimit, with the trace accumulated so far.
func PairwiseExchange(ctx context.Context, flow, dist matrix.Matrix, opts Options) (Result, error) {
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}
	in, err := newInstance(flow, dist)
	if err != nil {
		return Result{}, err
	}

	return pairwise(ctx, in, opts)
}

// pairwise runs the state machine on a validated instance.
func pairwise(ctx context.Context, in *instance, opts Options) (Result, error) {
	start := time.Now()
	ctx, cancel := withTimeLimit(ctx, opts.TimeLimit)
	defer cancel()

	var (
		n       = in.n
		cur     = Identity(n) // owned by this run; snapshots go to the trace
		curCost = in.cost(cur)
		evals   = uint64(1)
		trace   = []Step{{Iteration: 0, Layout: cur.Clone(), Cost: curCost, Swap: noSwap}}
	)

	finish := func(complete bool) Result {
		return Result{
			Algo:        PairwiseExchangeSearch,
			Layout:      cur,
			Cost:        curCost,
			Trace:       trace,
			Evaluations: evals,
			Complete:    complete,
			Elapsed:     time.Since(start),
		}
	}

	var (
		round    int
		i, j     int
		bi, bj   int
		c, best  float64
		improved bool
	)
	for round = 1; ; round++ {
		if err := ctx.Err(); err != nil {
			return finish(false), fmt.Errorf("%w at round %d: %w", ErrInterrupted, round, err)
		}

		// EVALUATING_ROUND: full neighborhood, swap in place and undo.
		best, bi, bj, improved = curCost, -1, -1, false
		for i = 0; i < n-1; i++ {
			for j = i + 1; j < n; j++ {
				cur[i], cur[j] = cur[j], cur[i]
				c = in.cost(cur)
				cur[i], cur[j] = cur[j], cur[i]
				evals++
				if c < best {
					best, bi, bj, improved = c, i, j, true
				}
			}
		}

		if !improved {
			// CONVERGED.
			return finish(true), nil
		}
		if opts.MaxRounds > 0 && round > opts.MaxRounds {
			// An improving swap exists but the round budget is spent.
			return finish(false), nil
		}

		// IMPROVED: apply the single best swap of the round.
		cur[bi], cur[bj] = cur[bj], cur[bi]
		curCost = best
		trace = append(trace, Step{Iteration: round, Layout: cur.Clone(), Cost: curCost, Swap: [2]int{bi, bj}})
	}
}

// IsLocalOptimum reports whether no single pairwise swap of layout lowers its
// cost: the local-optimality certificate of PairwiseExchange results.
//
// Errors: validation sentinels, ErrInvalidAssignment.
//
// Complexity: O(n⁴).
func IsLocalOptimum(flow, dist matrix.Matrix, layout Assignment) (bool, error) {
	in, err := newInstance(flow, dist)
	if err != nil {
		return false, err
	}
	if err = ValidateAssignment(layout, in.n); err != nil {
		return false, err
	}

	p := layout.Clone()
	base := in.cost(p)

	var (
		i, j int
		c    float64
	)
	for i = 0; i < in.n-1; i++ {
		for j = i + 1; j < in.n; j++ {
			p[i], p[j] = p[j], p[i]
			c = in.cost(p)
			p[i], p[j] = p[j], p[i]
			if c < base {
				return false, nil
			}
		}
	}

	return true, nil
}
