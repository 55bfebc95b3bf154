// Package qap - cost evaluation shared by both engines.
//
// The engines call instance.cost O(n!) or O(n²·rounds) times, so it works on
// the prefetched flat buffers, performs no validation and allocates nothing.
// Validation happens once, upstream, in newInstance.
//
// Summation order is fixed (i ascending, then j ascending), so the cost of a
// layout is bit-for-bit reproducible; for integer-valued matrices (sums
// below 2^53) it is exact.
package qap

import "github.com/katalvlaran/layoutopt/matrix"

// Cost returns Σ_{i≠j} flow[i][j]·dist[layout[i]][layout[j]].
//
// This is the validated public entry point: matrices are checked as in Solve
// and layout must be a permutation of 0..n-1.
//
// Errors: the matrix sentinels of newInstance, ErrInvalidAssignment.
//
// Complexity: O(n²).
func Cost(flow, dist matrix.Matrix, layout Assignment) (float64, error) {
	in, err := newInstance(flow, dist)
	if err != nil {
		return 0, err
	}
	if err = ValidateAssignment(layout, in.n); err != nil {
		return 0, err
	}

	return in.cost(layout), nil
}

// cost evaluates layout p on the instance. Self pairs (i == j) never
// contribute, whatever the diagonals hold.
//
// Contract: len(p) == in.n and p is a permutation (not re-checked).
//
// Complexity: O(n²) time, O(1) space.
func (in *instance) cost(p []int) float64 {
	var (
		n      = in.n
		sum    float64
		i, j   int
		fi, di []float64
	)
	for i = 0; i < n; i++ {
		fi = in.flow[i*n : i*n+n]        // row i of FLOW
		di = in.dist[p[i]*n : p[i]*n+n] // row p[i] of DISTANCE
		for j = 0; j < n; j++ {
			if j == i {
				continue
			}
			sum += fi[j] * di[p[j]]
		}
	}

	return sum
}
