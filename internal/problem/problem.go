// Package problem decodes layout problems from YAML or JSON documents.
//
// A document carries FLOW and DISTANCE, each either in the matrix text
// format or as a list of numeric rows, plus optional solver overrides:
//
//	flow: |
//	  - 15 20 25
//	  0 - 15 10
//	  0 0 - 10
//	  0 0 0 -
//	dist: [[0, 4, 6, 3], [4, 0, 3, 5], [6, 3, 0, 4], [3, 5, 4, 0]]
//	algo: exhaustive
package problem

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/katalvlaran/layoutopt/matrix"
	"github.com/katalvlaran/layoutopt/qap"
	"gopkg.in/yaml.v3"
)

// ErrInvalidProblem marks malformed documents and matrices that fail to parse.
var ErrInvalidProblem = errors.New("problem: invalid problem")

// ErrMissingMatrix is returned when FLOW or DISTANCE is absent.
var ErrMissingMatrix = errors.New("problem: missing matrix")

// Matrix holds one input matrix as text or as rows; Rows wins when both are set.
type Matrix struct {
	Text string
	Rows [][]float64
}

// UnmarshalJSON accepts a JSON string (text format) or an array of rows.
func (m *Matrix) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &m.Text)
	}
	return json.Unmarshal(b, &m.Rows)
}

// MarshalJSON writes rows when present, the text otherwise.
func (m Matrix) MarshalJSON() ([]byte, error) {
	if m.Rows != nil {
		return json.Marshal(m.Rows)
	}
	return json.Marshal(m.Text)
}

// UnmarshalYAML accepts a scalar (text format) or a sequence of rows.
func (m *Matrix) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		m.Text = n.Value
		return nil
	case yaml.SequenceNode:
		return n.Decode(&m.Rows)
	default:
		return fmt.Errorf("line %d: matrix must be text or a list of rows", n.Line)
	}
}

// MarshalYAML writes rows in flow style, text as a literal block.
func (m Matrix) MarshalYAML() (any, error) {
	if m.Rows != nil {
		n := &yaml.Node{}
		if err := n.Encode(m.Rows); err != nil {
			return nil, err
		}
		n.Style = yaml.FlowStyle
		return n, nil
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.LiteralStyle, Value: m.Text}, nil
}

// Dense parses or copies the matrix into a square *matrix.Dense.
func (m Matrix) Dense(opts ...matrix.Option) (*matrix.Dense, error) {
	if m.Rows != nil {
		d, err := matrix.NewDenseFromRows(m.Rows)
		if err != nil {
			return nil, err
		}
		if err = matrix.ValidateSquare(d); err != nil {
			return nil, err
		}
		return d, nil
	}
	if strings.TrimSpace(m.Text) == "" {
		return nil, ErrMissingMatrix
	}
	return matrix.Parse(m.Text, opts...)
}

// Problem is one layout instance plus optional solver overrides. Zero values
// leave the caller's defaults untouched.
type Problem struct {
	Flow       Matrix `json:"flow" yaml:"flow"`
	Dist       Matrix `json:"dist" yaml:"dist"`
	Algo       string `json:"algo,omitempty" yaml:"algo,omitempty"`
	Workers    int    `json:"workers,omitempty" yaml:"workers,omitempty"`
	TimeoutMS  int64  `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty"`
	MaxRounds  int    `json:"max_rounds,omitempty" yaml:"max_rounds,omitempty"`
	Symmetrize bool   `json:"symmetrize,omitempty" yaml:"symmetrize,omitempty"`
}

// Load decodes a YAML document (JSON is accepted too, being valid YAML).
func Load(r io.Reader) (Problem, error) {
	var p Problem
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return Problem{}, fmt.Errorf("%w: empty document", ErrInvalidProblem)
		}
		return Problem{}, fmt.Errorf("%w: %w", ErrInvalidProblem, err)
	}
	return p, nil
}

// Matrices returns FLOW and DISTANCE, with FLOW symmetrized on request.
// Parse failures and missing matrices wrap ErrInvalidProblem; value checks
// (negative, shape mismatch) are left to the solvers.
func (p Problem) Matrices() (flow, dist *matrix.Dense, err error) {
	if flow, err = p.Flow.Dense(); err != nil {
		return nil, nil, fmt.Errorf("%w: flow: %w", ErrInvalidProblem, err)
	}
	if dist, err = p.Dist.Dense(); err != nil {
		return nil, nil, fmt.Errorf("%w: dist: %w", ErrInvalidProblem, err)
	}
	if p.Symmetrize {
		if flow, err = matrix.Symmetrize(flow); err != nil {
			return nil, nil, fmt.Errorf("%w: flow: %w", ErrInvalidProblem, err)
		}
	}
	return flow, dist, nil
}

// Options applies the document overrides to base. A timeout can only
// tighten base.TimeLimit, never extend it.
func (p Problem) Options(base qap.Options) (qap.Options, error) {
	opts := base
	if p.Algo != "" {
		algo, err := qap.ParseAlgorithm(p.Algo)
		if err != nil {
			return base, err
		}
		opts.Algo = algo
	}

	switch {
	case p.Workers < 0:
		return base, fmt.Errorf("%w: workers=%d", ErrInvalidProblem, p.Workers)
	case p.TimeoutMS < 0:
		return base, fmt.Errorf("%w: timeout_ms=%d", ErrInvalidProblem, p.TimeoutMS)
	case p.MaxRounds < 0:
		return base, fmt.Errorf("%w: max_rounds=%d", ErrInvalidProblem, p.MaxRounds)
	}

	if p.Workers > 0 {
		opts.Workers = p.Workers
	}
	if p.TimeoutMS > 0 {
		d := time.Duration(p.TimeoutMS) * time.Millisecond
		if opts.TimeLimit == 0 || d < opts.TimeLimit {
			opts.TimeLimit = d
		}
	}
	if p.MaxRounds > 0 {
		opts.MaxRounds = p.MaxRounds
	}
	return opts, nil
}
