// Package qap - exhaustive permutation search (global optimum).
//
// Exhaustive enumerates every layout of {0..n-1} exactly once, in
// lexicographic order, evaluates each with instance.cost and keeps the first
// layout reaching the minimum (strict <).
//
// Parallel mode splits the space into n blocks by the department-0 location:
// block b holds the layouts starting with b, which are contiguous in global
// lexicographic order. Blocks run under an errgroup limited to Options.Workers
// and their minima are merged in block order with the same strict <, so the
// parallel winner is exactly the sequential winner.
//
// Cancellation (context or Options.TimeLimit) is checked every 2048
// evaluations; an interrupted run returns the best layout seen so far with
// Complete == false and an error matching ErrInterrupted.
//
// Complexity: O(n!·n²) time; O(n) extra space per worker.
package qap

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/layoutopt/matrix"
	"golang.org/x/sync/errgroup"
)

// checkMask throttles context checks in the enumeration loop.
const checkMask = 2047

// blockBest is the outcome of scanning one block of the permutation space.
type blockBest struct {
	layout []int   // first layout of minimum cost (nil when nothing was evaluated)
	cost   float64 // its cost (+Inf when layout == nil)
	evals  uint64  // layouts evaluated
	done   bool    // the whole block was scanned
}

// Exhaustive returns the globally optimal layout for (flow, dist).
//
// Errors: validation sentinels (see validate.go), ErrTooLarge when
// n > Options.MaxExhaustiveN, ErrInterrupted on cancellation (with a
// best-effort Result).
func Exhaustive(ctx context.Context, flow, dist matrix.Matrix, opts Options) (Result, error) {
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}
	in, err := newInstance(flow, dist)
	if err != nil {
		return Result{}, err
	}

	return exhaustive(ctx, in, opts)
}

// exhaustive runs the enumeration on a validated instance.
func exhaustive(ctx context.Context, in *instance, opts Options) (Result, error) {
	n := in.n
	if limit := opts.exhaustiveLimit(); n > limit {
		return Result{}, fmt.Errorf("%w: n=%d, limit %d (%d layouts)", ErrTooLarge, n, limit, factorial(min(n, MaxExhaustiveLimit)))
	}

	start := time.Now()
	ctx, cancel := withTimeLimit(ctx, opts.TimeLimit)
	defer cancel()

	res := Result{Algo: ExhaustiveSearch}
	if n == 0 {
		res.Layout = Assignment{}
		res.Evaluations = 1
		res.Complete = true
		res.Elapsed = time.Since(start)
		return res, nil
	}

	var blocks []blockBest
	workers := min(opts.Workers, n)
	if workers <= 1 {
		blocks = []blockBest{scanBlock(ctx, in, -1)}
	} else {
		blocks = make([]blockBest, n)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for b := 0; b < n; b++ {
			b := b
			g.Go(func() error {
				blocks[b] = scanBlock(gctx, in, b)
				return nil
			})
		}
		_ = g.Wait() // workers never fail; interruption is reported per block
	}

	// Deterministic merge in block (= lexicographic) order.
	best := blockBest{cost: math.Inf(1), done: true}
	for _, bb := range blocks {
		res.Evaluations += bb.evals
		best.done = best.done && bb.done
		if bb.layout != nil && bb.cost < best.cost {
			best.layout, best.cost = bb.layout, bb.cost
		}
	}

	res.Complete = best.done
	res.Elapsed = time.Since(start)
	if best.layout != nil {
		res.Layout = Assignment(best.layout)
		res.Cost = best.cost
	}
	if !res.Complete {
		return res, fmt.Errorf("%w after %d of %d layouts: %w", ErrInterrupted, res.Evaluations, factorial(n), ctx.Err())
	}

	return res, nil
}

// scanBlock enumerates one block in lexicographic order. first < 0 scans the
// whole space; otherwise only layouts with p[0] == first.
func scanBlock(ctx context.Context, in *instance, first int) blockBest {
	n := in.n
	var (
		p    = make([]int, 0, n)
		tail []int // the part permuted by nextPermutation
	)
	if first < 0 {
		for v := 0; v < n; v++ {
			p = append(p, v)
		}
		tail = p
	} else {
		p = append(p, first)
		for v := 0; v < n; v++ {
			if v != first {
				p = append(p, v)
			}
		}
		tail = p[1:]
	}

	out := blockBest{cost: math.Inf(1)}
	bestP := make([]int, n)

	var c float64
	for {
		if out.evals&checkMask == 0 && ctx.Err() != nil {
			break
		}
		c = in.cost(p)
		out.evals++
		if c < out.cost {
			out.cost = c
			copy(bestP, p)
			out.layout = bestP
		}
		if !nextPermutation(tail) {
			out.done = true
			break
		}
	}

	return out
}

// withTimeLimit derives a context bounded by d (0 = unlimited).
func withTimeLimit(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
