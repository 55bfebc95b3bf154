// Package qap solves the facility layout variant of the Quadratic Assignment
// Problem: assign n departments to n locations so that the total
// flow-weighted distance is minimal.
//
// Given a FLOW matrix (traffic between departments) and a DISTANCE matrix
// (distance between locations), the cost of a layout p is
//
//	cost(p) = Σ_{i≠j} FLOW[i][j] · DISTANCE[p[i]][p[j]]
//
// Two engines are provided:
//
//   - Exhaustive: enumerates all n! layouts in lexicographic order and returns
//     the first one of minimum cost (global optimum).
//
//   - Complexity: O(n!·n²) time, O(n) extra space per worker.
//
//   - Practical for n ≲ 10; guarded by Options.MaxExhaustiveN.
//
//   - Optional fan-out over Options.Workers goroutines with a deterministic merge.
//
//   - PairwiseExchange: starts at the identity layout, scans every pairwise swap
//     per round, applies the single best improving swap, stops at a 2-exchange
//     local optimum. Returns the full per-round trace.
//
//   - Complexity: O(rounds·n⁴) time (n²/2 swaps, O(n²) cost each), O(n) extra space.
//
// Ties are resolved by "first found wins" (strict <) in both engines.
// All inputs are validated once before any search work; failures return
// sentinels from types.go and no partial result.
//
// Use Solve for algorithm selection (including Auto) and Compare to run both
// engines and report the heuristic's optimality gap.
package qap
