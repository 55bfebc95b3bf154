package qap

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors. Match them with errors.Is; call sites wrap with context.
var (
	// ErrNilMatrix is returned when FLOW or DISTANCE is nil.
	ErrNilMatrix = errors.New("qap: nil matrix")

	// ErrNonSquare is returned when FLOW or DISTANCE has rows != cols.
	ErrNonSquare = errors.New("qap: matrix is not square")

	// ErrShapeMismatch is returned when FLOW and DISTANCE differ in dimension.
	ErrShapeMismatch = errors.New("qap: flow and distance dimensions differ")

	// ErrNegativeWeight is returned for a negative flow or distance entry.
	ErrNegativeWeight = errors.New("qap: negative flow or distance")

	// ErrNonFinite is returned for a NaN or ±Inf flow or distance entry.
	ErrNonFinite = errors.New("qap: non-finite flow or distance")

	// ErrInvalidAssignment is returned when a layout is not a permutation of 0..n-1.
	ErrInvalidAssignment = errors.New("qap: layout is not a permutation")

	// ErrTooLarge is returned when exhaustive search is requested for n above
	// Options.MaxExhaustiveN.
	ErrTooLarge = errors.New("qap: instance too large for exhaustive search")

	// ErrUnsupportedAlgorithm is returned for an unknown Algorithm value or name.
	ErrUnsupportedAlgorithm = errors.New("qap: unsupported algorithm")

	// ErrInvalidOptions is returned for negative or out-of-range option values.
	ErrInvalidOptions = errors.New("qap: invalid options")

	// ErrInterrupted is returned (together with the context error) when a search
	// was stopped by cancellation or Options.TimeLimit. The accompanying Result
	// carries the best layout found so far with Complete == false.
	ErrInterrupted = errors.New("qap: search interrupted")
)

// Algorithm selects the engine used by Solve.
type Algorithm int

const (
	// Auto picks ExhaustiveSearch when n ≤ MaxExhaustiveN, PairwiseExchangeSearch otherwise.
	Auto Algorithm = iota

	// ExhaustiveSearch enumerates all layouts (global optimum).
	ExhaustiveSearch

	// PairwiseExchangeSearch runs best-swap-per-round local search from the identity layout.
	PairwiseExchangeSearch
)

var algorithmNames = [...]string{
	Auto:                   "auto",
	ExhaustiveSearch:       "exhaustive",
	PairwiseExchangeSearch: "pairwise",
}

// String returns the canonical lower-case name.
func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// ParseAlgorithm maps a name ("auto", "exhaustive", "pairwise"; case-insensitive)
// to an Algorithm. A few aliases are accepted: "exact", "brute-force", "2-opt", "local".
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "exhaustive", "exact", "brute-force":
		return ExhaustiveSearch, nil
	case "pairwise", "2-opt", "local":
		return PairwiseExchangeSearch, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if a < 0 || int(a) >= len(algorithmNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(b []byte) error {
	v, err := ParseAlgorithm(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Assignment (layout) maps department i to location Assignment[i].
// A valid Assignment is a permutation of 0..n-1.
type Assignment []int

// Identity returns the layout [0, 1, …, n-1].
func Identity(n int) Assignment {
	a := make(Assignment, n)
	for i := range a {
		a[i] = i
	}
	return a
}

// Clone returns an independent copy (nil stays nil).
func (a Assignment) Clone() Assignment {
	if a == nil {
		return nil
	}
	out := make(Assignment, len(a))
	copy(out, a)
	return out
}

// noSwap marks the initial trace step, which applies no exchange.
var noSwap = [2]int{-1, -1}

// Step is one record of the pairwise-exchange trace.
type Step struct {
	// Iteration is the 0-based round index; round 0 is the identity layout.
	Iteration int

	// Layout is a snapshot of the layout after this round.
	Layout Assignment

	// Cost is the cost of Layout.
	Cost float64

	// Swap holds the exchanged departments (i<j) that produced this step,
	// or {-1,-1} for round 0.
	Swap [2]int
}

// Result holds the outcome of a solver run.
type Result struct {
	// Algo is the engine that produced the result (never Auto).
	Algo Algorithm

	// Layout is the final (or best-so-far) assignment. Nil only when an
	// interrupted run evaluated nothing.
	Layout Assignment

	// Cost is the cost of Layout.
	Cost float64

	// Trace is the per-round history of PairwiseExchange (nil for Exhaustive).
	Trace []Step

	// Evaluations counts full cost evaluations performed.
	Evaluations uint64

	// Complete is true when the run finished: the exhaustive scan covered all
	// n! layouts, or the local search certified a local optimum. False marks a
	// best-effort result (deadline, cancellation or MaxRounds).
	Complete bool

	// Elapsed is the wall-clock duration of the search.
	Elapsed time.Duration
}

// Options configures the solvers. The zero value is usable; DefaultOptions
// documents the defaults explicitly.
type Options struct {
	// Algo selects the engine used by Solve.
	Algo Algorithm

	// Workers is the exhaustive-search fan-out; values ≤ 1 scan sequentially.
	Workers int

	// TimeLimit bounds a single engine run; 0 means unlimited.
	TimeLimit time.Duration

	// MaxExhaustiveN is the largest n accepted by the exhaustive engine;
	// 0 means DefaultMaxExhaustiveN. Must not exceed MaxExhaustiveLimit.
	MaxExhaustiveN int

	// MaxRounds bounds accepted pairwise-exchange rounds; 0 means unlimited.
	MaxRounds int
}

const (
	// DefaultMaxExhaustiveN is the default exhaustive-search guard (10! ≈ 3.6M layouts).
	DefaultMaxExhaustiveN = 10

	// MaxExhaustiveLimit is the hard ceiling for MaxExhaustiveN; 20! still fits in uint64.
	MaxExhaustiveLimit = 20
)

// DefaultOptions returns Auto selection, sequential scan, no time limit,
// DefaultMaxExhaustiveN and unlimited rounds.
func DefaultOptions() Options {
	return Options{
		Algo:           Auto,
		Workers:        1,
		MaxExhaustiveN: DefaultMaxExhaustiveN,
	}
}

// exhaustiveLimit resolves the effective MaxExhaustiveN.
func (o Options) exhaustiveLimit() int {
	if o.MaxExhaustiveN == 0 {
		return DefaultMaxExhaustiveN
	}
	return o.MaxExhaustiveN
}
