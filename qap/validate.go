// Package qap - validation shared by both engines.
//
// This file contains the staged validators that run exactly once per call,
// before any O(n!) or O(n²·rounds) work:
//  1. Options sanity (non-negative knobs, known algorithm, guard ceiling).
//  2. Matrices: nil → square → equal dimension → finite, non-negative values.
//  3. Layouts passed in by callers (permutation check).
//
// Design principles:
//   - Deterministic, side-effect free; no logging, no panics on user input.
//   - Values are prefetched into flat row-major buffers after the value scan,
//     so the engines never touch the matrix.Matrix interface in hot loops.
package qap

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/layoutopt/matrix"
)

// instance is a validated problem: FLOW and DISTANCE prefetched as flat
// row-major buffers, flow[i*n+j] ~ FLOW.At(i,j).
type instance struct {
	n    int
	flow []float64
	dist []float64
}

// validateOptions checks internal consistency of Options.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	switch {
	case opts.Workers < 0:
		return fmt.Errorf("%w: Workers=%d", ErrInvalidOptions, opts.Workers)
	case opts.TimeLimit < 0:
		return fmt.Errorf("%w: TimeLimit=%s", ErrInvalidOptions, opts.TimeLimit)
	case opts.MaxRounds < 0:
		return fmt.Errorf("%w: MaxRounds=%d", ErrInvalidOptions, opts.MaxRounds)
	case opts.MaxExhaustiveN < 0 || opts.MaxExhaustiveN > MaxExhaustiveLimit:
		return fmt.Errorf("%w: MaxExhaustiveN=%d (allowed 0..%d)", ErrInvalidOptions, opts.MaxExhaustiveN, MaxExhaustiveLimit)
	}
	switch opts.Algo {
	case Auto, ExhaustiveSearch, PairwiseExchangeSearch:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, int(opts.Algo))
	}
}

// newInstance validates FLOW and DISTANCE and prefetches them.
//
// Contract:
//   - both non-nil and square; equal order n (n == 0 is legal: empty instance);
//   - every entry finite and ≥ 0 (diagonal included: it is unused by the cost,
//     but a garbage value still signals a malformed input).
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrShapeMismatch, ErrNonFinite, ErrNegativeWeight.
//
// Complexity: O(n²) time, O(n²) space for the two buffers.
func newInstance(flow, dist matrix.Matrix) (*instance, error) {
	// Stage 1: shape checks for each matrix.
	if err := checkSquare("flow", flow); err != nil {
		return nil, err
	}
	if err := checkSquare("distance", dist); err != nil {
		return nil, err
	}

	// Stage 2: equal dimension.
	if err := matrix.ValidateSameShape(flow, dist); err != nil {
		return nil, fmt.Errorf("%w: flow is %d×%d, distance is %d×%d: %w",
			ErrShapeMismatch, flow.Rows(), flow.Cols(), dist.Rows(), dist.Cols(), err)
	}

	// Stage 3: value policy, then prefetch.
	if err := checkValues("flow", flow); err != nil {
		return nil, err
	}
	if err := checkValues("distance", dist); err != nil {
		return nil, err
	}

	n := flow.Rows()
	in := &instance{n: n}
	var err error
	if in.flow, err = prefetch("flow", flow, n); err != nil {
		return nil, err
	}
	if in.dist, err = prefetch("distance", dist, n); err != nil {
		return nil, err
	}

	return in, nil
}

// checkSquare maps matrix validator failures onto qap sentinels.
func checkSquare(name string, m matrix.Matrix) error {
	err := matrix.ValidateSquare(m)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, matrix.ErrNilMatrix):
		return fmt.Errorf("%w: %s", ErrNilMatrix, name)
	default:
		return fmt.Errorf("%w: %s is %d×%d", ErrNonSquare, name, m.Rows(), m.Cols())
	}
}

// checkValues maps ErrNaNInf → ErrNonFinite and ErrNegative → ErrNegativeWeight.
// The matrix error stays in the chain for the cell coordinates.
func checkValues(name string, m matrix.Matrix) error {
	err := matrix.ValidateNonNegative(m)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, matrix.ErrNaNInf):
		return fmt.Errorf("%w: %s: %w", ErrNonFinite, name, err)
	case errors.Is(err, matrix.ErrNegative):
		return fmt.Errorf("%w: %s: %w", ErrNegativeWeight, name, err)
	default:
		return fmt.Errorf("qap: %s: %w", name, err)
	}
}

// prefetch copies a validated m into a flat n*n buffer.
//
// Complexity: O(n²).
func prefetch(name string, m matrix.Matrix, n int) ([]float64, error) {
	w := make([]float64, n*n)
	if d, ok := m.(*matrix.Dense); ok {
		d.Do(func(i, j int, v float64) bool {
			w[i*n+j] = v
			return true
		})
		return w, nil
	}

	var (
		i, j int
		err  error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if w[i*n+j], err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("qap: %s: %w", name, err)
			}
		}
	}

	return w, nil
}

// ValidateAssignment verifies that layout is a permutation of 0..n-1.
//
// Complexity: O(n) time and O(n) extra space.
func ValidateAssignment(layout Assignment, n int) error {
	if err := matrix.ValidatePermutation(layout, n); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAssignment, err)
	}
	return nil
}
