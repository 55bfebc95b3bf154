// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for the transforms the layout
//     tools need (symmetrization, relabeling, export).
//   - Keep function names explicit and intention-revealing.
//
// Determinism & Policy:
//   - Fixed i→j loop orders; results are always fresh *Dense values, inputs
//     are never mutated.

package matrix

import "fmt"

// matrixErrorf wraps an error with the facade tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("matrix.%s: %w", tag, err)
}

// toDense returns a fresh r×c Dense (0×0 allowed) filled via At.
func toDense(m Matrix, tag string) (*Dense, error) {
	out, err := newDenseZeroOK(m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < out.r; i++ {
		for j = 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(tag, err)
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// Symmetrize returns (m + mᵀ)/2 for a square m.
//
// For a layout instance whose DISTANCE is symmetric, replacing FLOW by its
// symmetrization leaves the cost of every layout unchanged: the directed
// flows i→j and j→i travel the same distance. Useful when FLOW is entered as
// an upper triangle only.
//
// Complexity: O(n²).
func Symmetrize(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}
	src, err := toDense(m, "Symmetrize")
	if err != nil {
		return nil, err
	}
	n := src.r
	out, _ := newDenseZeroOK(n, n)

	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			out.data[i*n+j] = (src.data[i*n+j] + src.data[j*n+i]) / 2
		}
	}

	return out, nil
}

// Permute returns P·m·Pᵀ for the permutation p: out[i][j] = m[p[i]][p[j]].
// Relabels the rows/columns of a square matrix consistently.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrInvalidPermutation.
// Complexity: O(n²).
func Permute(m Matrix, p []int) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("Permute", err)
	}
	if err := ValidatePermutation(p, m.Rows()); err != nil {
		return nil, matrixErrorf("Permute", err)
	}
	src, err := toDense(m, "Permute")
	if err != nil {
		return nil, err
	}
	n := src.r
	out, _ := newDenseZeroOK(n, n)

	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			out.data[i*n+j] = src.data[p[i]*n+p[j]]
		}
	}

	return out, nil
}

// ToRows exports m as a fresh [][]float64 (row-major). Useful for JSON/YAML output.
// Complexity: O(rc).
func ToRows(m Matrix) ([][]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ToRows", err)
	}
	src, err := toDense(m, "ToRows")
	if err != nil {
		return nil, err
	}
	out := make([][]float64, src.r)

	var i int
	for i = 0; i < src.r; i++ {
		out[i] = make([]float64, src.c)
		copy(out[i], src.data[i*src.c:(i+1)*src.c])
	}

	return out, nil
}
