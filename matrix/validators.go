// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep solvers minimal by delegating shape/nil/value checks here.
//  - Wrap sentinels with the validator tag so errors.Is keeps matching.
//
// Determinism & Performance:
//  - All checks are pure and deterministic; only the permutation check allocates.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Square → Values).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed nil *Dense stored in the interface is treated as nil too.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil (caller must ensure).
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateNonNegative scans every cell and rejects NaN/±Inf (ErrNaNInf) and
// negative values (ErrNegative). The first offending cell in row-major order
// is reported with its coordinates.
//
// Complexity: O(r*c); fast path on *Dense avoids interface dispatch per cell.
func ValidateNonNegative(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}

	var (
		bad      error
		bi, bj   int
		classify = func(v float64) error {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return ErrNaNInf
			}
			if v < 0 {
				return ErrNegative
			}
			return nil
		}
	)

	if d, ok := m.(*Dense); ok {
		d.Do(func(i, j int, v float64) bool {
			if e := classify(v); e != nil {
				bad, bi, bj = e, i, j
				return false
			}
			return true
		})
	} else {
		var (
			i, j int
			v    float64
			err  error
		)
	scan:
		for i = 0; i < m.Rows(); i++ {
			for j = 0; j < m.Cols(); j++ {
				if v, err = m.At(i, j); err != nil {
					return validatorErrorf("ValidateNonNegative", err)
				}
				if e := classify(v); e != nil {
					bad, bi, bj = e, i, j
					break scan
				}
			}
		}
	}
	if bad != nil {
		return fmt.Errorf("ValidateNonNegative: cell (%d,%d): %w", bi, bj, bad)
	}

	return nil
}

// ValidatePermutation checks that p is a permutation of 0..n-1.
// Errors: ErrDimensionMismatch (len != n), ErrInvalidPermutation (out of range or repeat).
// Complexity: O(n) time, O(n) extra space.
func ValidatePermutation(p []int, n int) error {
	if len(p) != n {
		return validatorErrorf("ValidatePermutation", ErrDimensionMismatch)
	}
	seen := make([]bool, n)

	var i, v int
	for i, v = range p {
		if v < 0 || v >= n || seen[v] {
			return fmt.Errorf("ValidatePermutation: position %d value %d: %w", i, v, ErrInvalidPermutation)
		}
		seen[v] = true
	}

	return nil
}
