package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/layoutopt/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriters_Fanout(t *testing.T) {
	var text, js bytes.Buffer
	logger := logging.NewWithWriters(&text, &js, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("solved", "n", 4, "cost", 375.0)

	assert.Contains(t, text.String(), "msg=solved")
	assert.Contains(t, text.String(), "cost=375")
	assert.NotContains(t, text.String(), "hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &rec))
	assert.Equal(t, "solved", rec["msg"])
	assert.Equal(t, float64(4), rec["n"])
}

func TestSetup_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layoutopt.log")
	var text bytes.Buffer

	logger, cleanup := logging.Setup(&text, path, slog.LevelDebug)
	logger.Debug("round", "iteration", 1)
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"iteration":1`)
	assert.Contains(t, text.String(), "iteration=1")
}

func TestSetup_FallsBackWithoutFile(t *testing.T) {
	var text bytes.Buffer
	bad := filepath.Join(t.TempDir(), "missing", "dir", "x.log")

	logger, cleanup := logging.Setup(&text, bad, slog.LevelInfo)
	require.NoError(t, cleanup())
	logger.Info("still logging")

	out := text.String()
	assert.Contains(t, out, "failed to open log file")
	assert.Contains(t, out, "still logging")
}

func TestSetup_NoFile(t *testing.T) {
	var text bytes.Buffer
	logger, cleanup := logging.Setup(&text, "", slog.LevelWarn)
	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, cleanup())

	assert.Equal(t, 1, strings.Count(text.String(), "\n"))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"Warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		" error ": slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equalf(t, want, logging.ParseLevel(in), "input %q", in)
	}
}
