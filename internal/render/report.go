// Package render turns solver results into text, JSON or YAML.
//
// Reports are plain data: layouts stay 0-based in JSON and YAML; the text view
// numbers departments and locations from 1.
package render

import (
	"time"

	"github.com/katalvlaran/layoutopt/matrix"
	"github.com/katalvlaran/layoutopt/qap"
)

// Report is the serializable view of one solver run.
type Report struct {
	Algorithm   string      `json:"algorithm" yaml:"algorithm"`
	N           int         `json:"n" yaml:"n"`
	Layout      []int       `json:"layout" yaml:"layout"`
	Cost        float64     `json:"cost" yaml:"cost"`
	Evaluations uint64      `json:"evaluations" yaml:"evaluations"`
	Complete    bool        `json:"complete" yaml:"complete"`
	ElapsedMS   float64     `json:"elapsed_ms" yaml:"elapsed_ms"`
	Trace       []Step      `json:"trace,omitempty" yaml:"trace,omitempty"`
	Flow        [][]float64 `json:"flow,omitempty" yaml:"flow,omitempty"`
	Distance    [][]float64 `json:"distance,omitempty" yaml:"distance,omitempty"`
	Warning     string      `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// Step is one pairwise-exchange round. Swap is empty for round 0.
type Step struct {
	Iteration int     `json:"iteration" yaml:"iteration"`
	Layout    []int   `json:"layout" yaml:"layout,flow"`
	Cost      float64 `json:"cost" yaml:"cost"`
	Swap      []int   `json:"swap,omitempty" yaml:"swap,omitempty,flow"`
}

// Comparison is the serializable view of qap.Comparison. Exact is omitted
// when the exhaustive run never started; Gap and RelativeGap are omitted when
// there is no exact cost to measure against.
type Comparison struct {
	Exact       *Report  `json:"exact,omitempty" yaml:"exact,omitempty"`
	Heuristic   Report   `json:"heuristic" yaml:"heuristic"`
	Gap         *float64 `json:"gap,omitempty" yaml:"gap,omitempty"`
	RelativeGap *float64 `json:"relative_gap,omitempty" yaml:"relative_gap,omitempty"`
	Warning     string   `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// NewReport copies res into a Report. A nil layout (interrupted before any
// evaluation) becomes an empty one.
func NewReport(res qap.Result) Report {
	r := Report{
		Algorithm:   res.Algo.String(),
		N:           len(res.Layout),
		Layout:      append([]int{}, res.Layout...),
		Cost:        res.Cost,
		Evaluations: res.Evaluations,
		Complete:    res.Complete,
		ElapsedMS:   float64(res.Elapsed) / float64(time.Millisecond),
	}
	if len(res.Trace) > 0 {
		r.Trace = make([]Step, len(res.Trace))
		for i, s := range res.Trace {
			r.Trace[i] = Step{Iteration: s.Iteration, Layout: append([]int{}, s.Layout...), Cost: s.Cost}
			if s.Swap[0] >= 0 {
				r.Trace[i].Swap = []int{s.Swap[0], s.Swap[1]}
			}
		}
	}
	return r
}

// WithMatrices attaches FLOW and DISTANCE for the details view. N is taken
// from the matrices, so it stays right for interrupted runs.
func (r Report) WithMatrices(flow, dist matrix.Matrix) (Report, error) {
	var err error
	if r.Flow, err = matrix.ToRows(flow); err != nil {
		return r, err
	}
	if r.Distance, err = matrix.ToRows(dist); err != nil {
		return r, err
	}
	r.N = flow.Rows()
	return r, nil
}

// NewComparison copies cmp into a Comparison.
func NewComparison(cmp qap.Comparison) Comparison {
	c := Comparison{Heuristic: NewReport(cmp.Heuristic)}
	if cmp.Exact.Evaluations > 0 {
		exact := NewReport(cmp.Exact)
		c.Exact = &exact
	}
	if cmp.Exact.Layout != nil {
		gap, rel := cmp.Gap, cmp.RelativeGap
		c.Gap, c.RelativeGap = &gap, &rel
	}
	return c
}
