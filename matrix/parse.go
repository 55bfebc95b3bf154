// SPDX-License-Identifier: MIT

// Package matrix - strict text ingestion.
//
// Format:
//   - one row per line, cells separated by any whitespace;
//   - a cell is a non-negative decimal number or a placeholder token
//     (default "-"), which means "no relationship" and parses as 0;
//   - blank lines (and leading/trailing whitespace) are ignored.
//
// Parse is the single gate between loosely formatted user text and the solvers:
// it produces an already-validated *Dense or a sentinel error, never a partial matrix.
package matrix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse converts a text block into a validated *Dense.
//
// Implementation:
//   - Stage 1: split lines, skip blanks, tokenize with strings.Fields.
//   - Stage 2: map placeholders to 0, parse the rest with strconv.ParseFloat.
//   - Stage 3: enforce rectangular shape, then (by default) square shape.
//
// Errors (wrapped with 1-based line/column for user-facing diagnostics):
//   - ErrInvalidToken, ErrNaNInf, ErrNegative, ErrRaggedRows, ErrNonSquare.
//
// An empty block yields a 0×0 matrix (the degenerate empty instance).
//
// Complexity: O(len(text)).
func Parse(text string, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)

	var (
		rows   [][]float64
		line   string
		lineNo int
		toks   []string
		tok    string
		col    int
		v      float64
		err    error
	)
	for lineNo, line = range strings.Split(text, "\n") {
		toks = strings.Fields(line)
		if len(toks) == 0 {
			continue
		}
		row := make([]float64, len(toks))
		for col, tok = range toks {
			if o.isPlaceholder(tok) {
				continue // zero-filled already
			}
			v, err = strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, parseErrorf(lineNo, col, tok, ErrInvalidToken)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, parseErrorf(lineNo, col, tok, ErrNaNInf)
			}
			if v < 0 {
				return nil, parseErrorf(lineNo, col, tok, ErrNegative)
			}
			row[col] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("matrix: line %d: %d cells, want %d: %w", lineNo+1, len(row), len(rows[0]), ErrRaggedRows)
		}
		rows = append(rows, row)
	}

	if o.requireSquare && len(rows) > 0 && len(rows) != len(rows[0]) {
		return nil, fmt.Errorf("matrix: %d rows × %d columns: %w", len(rows), len(rows[0]), ErrNonSquare)
	}

	return NewDenseFromRows(rows)
}

// parseErrorf tags a token error with its 1-based position.
func parseErrorf(line, col int, tok string, err error) error {
	return fmt.Errorf("matrix: line %d column %d: %q: %w", line+1, col+1, tok, err)
}

// Format renders m in the Parse text format. Off-diagonal zeros stay "0";
// diagonal cells are written as the default placeholder so that the output of
// Format parses back into the same matrix (diagonal values other than 0 are kept).
//
// Complexity: O(r*c).
func Format(m Matrix) (string, error) {
	if err := ValidateNotNil(m); err != nil {
		return "", err
	}

	var (
		sb   strings.Builder
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			if v, err = m.At(i, j); err != nil {
				return "", err
			}
			if i == j && v == 0 {
				sb.WriteString(DefaultPlaceholder)
				continue
			}
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}
