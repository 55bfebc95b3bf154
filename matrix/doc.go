// Package matrix provides the square numeric matrices consumed by the layout
// solvers, and the strict text ingestion that produces them.
//
// The matrix package provides:
//
//   - Matrix, a small bounds-checked interface, and Dense, its row-major
//     implementation with a finite-only numeric policy.
//   - Parse / Format for the whitespace text format in which FLOW and
//     DISTANCE matrices are typed by users ("-" means no relationship).
//   - Validators (square, non-negative, permutation) shared by the solvers.
//   - Facades: Symmetrize, Permute, ToRows.
//
// All functions return package sentinels (errors.go), wrapped with context;
// match them with errors.Is.
package matrix
