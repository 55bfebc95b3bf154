// Package qap_test holds helpers shared across the qap test files.
package qap_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/layoutopt/matrix"
	"github.com/katalvlaran/layoutopt/qap"
	"github.com/stretchr/testify/require"
)

// Fixtures of the 4-department scenario: upper-triangular FLOW, symmetric DISTANCE.
var (
	sampleFlow = [][]float64{
		{0, 15, 20, 25},
		{0, 0, 15, 10},
		{0, 0, 0, 10},
		{0, 0, 0, 0},
	}
	sampleDist = [][]float64{
		{0, 4, 6, 3},
		{4, 0, 3, 5},
		{6, 3, 0, 4},
		{3, 5, 4, 0},
	}
)

// seedDet fixes every pseudo-random instance used in tests.
const seedDet = int64(7)

// dense builds a *matrix.Dense from literal rows.
func dense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	return m
}

// sample returns fresh copies of the 4-department fixtures.
func sample(t testing.TB) (flow, dist *matrix.Dense) {
	t.Helper()
	return dense(t, sampleFlow), dense(t, sampleDist)
}

// formulaInstance builds a deterministic n×n instance:
//
//	FLOW[i][j] = (a·i + b·j) mod 10,  DIST[i][j] = |i-j|·((i+j) mod c + 1),
//
// with zero diagonals. Expected results for the (a,b,c) triples used in the
// tests were computed independently and are hard-coded at the call sites.
func formulaInstance(t testing.TB, n, a, b, c int) (flow, dist *matrix.Dense) {
	t.Helper()
	f := make([][]float64, n)
	d := make([][]float64, n)

	var i, j, gap int
	for i = 0; i < n; i++ {
		f[i] = make([]float64, n)
		d[i] = make([]float64, n)
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			gap = i - j
			if gap < 0 {
				gap = -gap
			}
			f[i][j] = float64((a*i + b*j) % 10)
			d[i][j] = float64(gap * ((i+j)%c + 1))
		}
	}

	return dense(t, f), dense(t, d)
}

// randomInstance draws an n×n instance with integer entries in [0, maxV].
// Small maxV produces many cost ties.
func randomInstance(t testing.TB, rng *rand.Rand, n, maxV int) (flow, dist *matrix.Dense) {
	t.Helper()
	f := make([][]float64, n)
	d := make([][]float64, n)

	var i, j int
	for i = 0; i < n; i++ {
		f[i] = make([]float64, n)
		d[i] = make([]float64, n)
		for j = 0; j < n; j++ {
			if i != j {
				f[i][j] = float64(rng.Intn(maxV + 1))
				d[i][j] = float64(rng.Intn(maxV + 1))
			}
		}
	}

	return dense(t, f), dense(t, d)
}

// bruteForce enumerates layouts recursively, smallest unused location first
// (lexicographic order), and returns the first layout of minimum cost.
func bruteForce(t testing.TB, flow, dist matrix.Matrix) (qap.Assignment, float64) {
	t.Helper()
	n := flow.Rows()

	var (
		best     qap.Assignment
		bestCost float64
		cur      = make(qap.Assignment, 0, n)
		used     = make([]bool, n)
		rec      func()
	)
	rec = func() {
		if len(cur) == n {
			c, err := qap.Cost(flow, dist, cur)
			require.NoError(t, err)
			if best == nil || c < bestCost {
				best, bestCost = cur.Clone(), c
			}
			return
		}
		for loc := 0; loc < n; loc++ {
			if used[loc] {
				continue
			}
			used[loc] = true
			cur = append(cur, loc)
			rec()
			cur = cur[:len(cur)-1]
			used[loc] = false
		}
	}
	rec()

	return best, bestCost
}

// rowsMatrix is an independent matrix.Matrix implementation backed by [][]float64.
type rowsMatrix struct{ a [][]float64 }

var _ matrix.Matrix = rowsMatrix{}

func (m rowsMatrix) Rows() int { return len(m.a) }
func (m rowsMatrix) Cols() int {
	if len(m.a) == 0 {
		return 0
	}
	return len(m.a[0])
}
func (m rowsMatrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return 0, matrix.ErrOutOfRange
	}
	return m.a[i][j], nil
}
func (m rowsMatrix) Set(i, j int, v float64) error {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return matrix.ErrOutOfRange
	}
	m.a[i][j] = v
	return nil
}
func (m rowsMatrix) Clone() matrix.Matrix {
	cp := make([][]float64, len(m.a))
	for i := range m.a {
		cp[i] = append([]float64(nil), m.a[i]...)
	}
	return rowsMatrix{a: cp}
}
