package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/layoutopt/internal/cli"
	"github.com/katalvlaran/layoutopt/internal/problem"
	"github.com/katalvlaran/layoutopt/internal/render"
	"github.com/katalvlaran/layoutopt/qap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command tree with args and stdin, returning stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	root := cli.NewRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func decodeReport(t *testing.T, out string) render.Report {
	t.Helper()
	var r render.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r), out)
	return r
}

func TestSolveSampleExhaustive(t *testing.T) {
	out, _, err := run(t, "", "solve", "--sample", "--format", "json")
	require.NoError(t, err)

	r := decodeReport(t, out)
	assert.Equal(t, "exhaustive", r.Algorithm)
	assert.Equal(t, 4, r.N)
	assert.Equal(t, []int{1, 3, 0, 2}, r.Layout)
	assert.Equal(t, 375.0, r.Cost)
	assert.EqualValues(t, 24, r.Evaluations)
	assert.True(t, r.Complete)
	assert.Empty(t, r.Trace)
}

func TestSolveSamplePairwiseTrace(t *testing.T) {
	out, _, err := run(t, "", "solve", "--sample", "--algo", "pairwise", "-f", "json")
	require.NoError(t, err)

	r := decodeReport(t, out)
	assert.Equal(t, "pairwise", r.Algorithm)
	assert.Equal(t, []int{3, 1, 2, 0}, r.Layout)
	assert.Equal(t, 375.0, r.Cost)
	require.Len(t, r.Trace, 2)
	assert.Equal(t, 390.0, r.Trace[0].Cost)
	assert.Empty(t, r.Trace[0].Swap)
	assert.Equal(t, []int{0, 3}, r.Trace[1].Swap)
}

func TestSolveText(t *testing.T) {
	out, _, err := run(t, "", "solve", "--sample")
	require.NoError(t, err)

	assert.Contains(t, out, "Exhaustive search")
	assert.Contains(t, out, "Minimum cost")
	assert.Contains(t, out, "375")
}

func TestSolveMatrixFiles(t *testing.T) {
	dir := t.TempDir()
	flow := filepath.Join(dir, "flow.txt")
	dist := filepath.Join(dir, "dist.txt")
	require.NoError(t, os.WriteFile(flow, []byte(problem.SampleFlow), 0o600))
	require.NoError(t, os.WriteFile(dist, []byte(problem.SampleDist), 0o600))

	out, _, err := run(t, "", "solve", "--flow", flow, "--dist", dist, "-f", "json", "--details")
	require.NoError(t, err)

	r := decodeReport(t, out)
	assert.Equal(t, 375.0, r.Cost)
	require.Len(t, r.Flow, 4)
	assert.Equal(t, []float64{0, 15, 20, 25}, r.Flow[0])
	assert.Equal(t, []float64{0, 4, 6, 3}, r.Distance[0])
}

func TestSolveSymmetrizeKeepsCost(t *testing.T) {
	out, _, err := run(t, "", "solve", "--sample", "--symmetrize", "-f", "json")
	require.NoError(t, err)

	// DISTANCE is symmetric, so the optimum cost is unchanged.
	r := decodeReport(t, out)
	assert.Equal(t, 375.0, r.Cost)
}

func TestSolveFromStdin(t *testing.T) {
	doc := `algo: pairwise
flow: |
  0 3
  3 0
dist: [[0, 2], [2, 0]]
`
	out, _, err := run(t, doc, "solve", "-", "-f", "json")
	require.NoError(t, err)

	r := decodeReport(t, out)
	assert.Equal(t, "pairwise", r.Algorithm)
	assert.Equal(t, 12.0, r.Cost)
	assert.True(t, r.Complete)
}

func TestFlagsOverrideDocument(t *testing.T) {
	doc := "algo: pairwise\n" +
		"flow: |\n  - 15 20 25\n  0 - 15 10\n  0 0 - 10\n  0 0 0 -\n" +
		"dist: |\n  - 4 6 3\n  4 - 3 5\n  6 3 - 4\n  3 5 4 -\n"

	out, _, err := run(t, doc, "solve", "--algo", "exhaustive", "-f", "json")
	require.NoError(t, err)
	assert.Equal(t, "exhaustive", decodeReport(t, out).Algorithm)
}

func TestSolveMaxRounds(t *testing.T) {
	out, _, err := run(t, "", "solve", "--sample", "--algo", "pairwise", "--max-rounds", "1", "-f", "json")
	require.NoError(t, err)

	// One accepted swap reaches the local optimum, which the next scan certifies.
	r := decodeReport(t, out)
	assert.True(t, r.Complete)
	assert.Equal(t, 375.0, r.Cost)
	assert.Len(t, r.Trace, 2)
}

func TestSampleRoundTrip(t *testing.T) {
	doc, _, err := run(t, "", "sample")
	require.NoError(t, err)
	assert.Contains(t, doc, "flow:")

	out, _, err := run(t, doc, "solve", "-", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "cost: 375")
}

func TestSampleText(t *testing.T) {
	out, _, err := run(t, "", "sample", "--text")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "FLOW:\n- 15 20 25"))
	assert.Contains(t, out, "DISTANCE:\n- 4 6 3")
}

func TestCompareSample(t *testing.T) {
	out, _, err := run(t, "", "compare", "--sample", "-f", "json")
	require.NoError(t, err)

	var c render.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &c), out)
	require.NotNil(t, c.Exact)
	assert.Equal(t, 375.0, c.Exact.Cost)
	assert.Equal(t, 375.0, c.Heuristic.Cost)
	require.NotNil(t, c.Gap)
	assert.Zero(t, *c.Gap)
	assert.Empty(t, c.Warning)
}

func TestOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	out, _, err := run(t, "", "solve", "--sample", "-f", "json", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 375.0, decodeReport(t, string(b)).Cost)
}

func TestLogsGoToStderr(t *testing.T) {
	out, stderr, err := run(t, "", "solve", "--sample", "-f", "json", "--log-level", "debug")
	require.NoError(t, err)
	assert.NotContains(t, out, "solve started")
	assert.Contains(t, stderr, "solve started")
	assert.Contains(t, stderr, "solve finished")
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("flow: \"1 2\"\nunknown: 1\n"), 0o600))
	flow := filepath.Join(dir, "flow.txt")
	require.NoError(t, os.WriteFile(flow, []byte("0 1\n1 0\n"), 0o600))

	tests := []struct {
		name  string
		stdin string
		args  []string
		is    error
		msg   string
	}{
		{name: "unknown format", args: []string{"solve", "--sample", "-f", "xml"}, is: render.ErrUnknownFormat},
		{name: "unknown algorithm", args: []string{"solve", "--sample", "--algo", "simplex"}, is: qap.ErrUnsupportedAlgorithm},
		{name: "flow without dist", args: []string{"solve", "--flow", flow}, msg: "--flow and --dist"},
		{name: "missing file", args: []string{"solve", filepath.Join(dir, "nope.yaml")}, msg: "open problem"},
		{name: "unknown field", args: []string{"solve", bad}, is: problem.ErrInvalidProblem},
		{name: "empty stdin", stdin: "", args: []string{"solve"}, is: problem.ErrInvalidProblem},
		{name: "too large for compare", args: []string{"compare", "--sample", "--max-exhaustive-n", "3"}, is: qap.ErrTooLarge},
		{name: "too many args", args: []string{"solve", "a", "b"}, msg: "accepts at most 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.stdin, tt.args...)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "layoutopt "+cli.Version+"\n", out)
}
