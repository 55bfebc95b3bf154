// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All functions MUST return these sentinels (optionally wrapped with
// call-site context via %w) and tests MUST check them via errors.Is.
// No function panics on user-triggered error conditions; panics are reserved
// for programmer errors in option constructors.

package matrix

import "errors"

// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape -> token -> numeric policy (NaN/Inf before negativity).

var (
	// ErrInvalidDimensions indicates a Matrix reporting negative dimensions.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Add of different shapes or a permutation of the wrong length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNegative signals a negative entry where only non-negative values are allowed
	// (flows and distances).
	ErrNegative = errors.New("matrix: negative entry")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrInvalidToken indicates a text cell that is neither a number nor a placeholder.
	ErrInvalidToken = errors.New("matrix: invalid token")

	// ErrRaggedRows indicates text rows with different numbers of cells.
	ErrRaggedRows = errors.New("matrix: rows have different lengths")

	// ErrInvalidPermutation indicates a slice that is not a permutation of 0..n-1.
	ErrInvalidPermutation = errors.New("matrix: invalid permutation")
)
