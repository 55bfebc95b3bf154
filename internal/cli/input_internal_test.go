package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/katalvlaran/layoutopt/internal/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInteractive(t *testing.T) {
	in := strings.NewReader("\n- 1\n2 -\n\n\n0 5\n5 0\n\n")
	var prompt bytes.Buffer

	p, err := readInteractive(in, &prompt)
	require.NoError(t, err)
	assert.Equal(t, "- 1\n2 -", p.Flow.Text)
	assert.Equal(t, "0 5\n5 0", p.Dist.Text)
	assert.Contains(t, prompt.String(), "FLOW")
	assert.Contains(t, prompt.String(), "DISTANCE")

	flow, dist, err := p.Matrices()
	require.NoError(t, err)
	assert.Equal(t, 2, flow.Rows())
	assert.Equal(t, 2, dist.Rows())
}

func TestReadInteractiveEOF(t *testing.T) {
	p, err := readInteractive(strings.NewReader("0 1\n1 0"), &bytes.Buffer{})
	require.ErrorIs(t, err, problem.ErrMissingMatrix)
	assert.Equal(t, "0 1\n1 0", p.Flow.Text)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(strings.NewReader("")))
}
