package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rxtrack.log")
	logger, err := New("debug", path)
	require.NoError(t, err)

	logger.Debug("task logged", zap.String("task", "Floor Clean"))
	logger.Info("scorecard built", zap.Int("overall", 87))
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `"msg":"task logged"`)
	require.Contains(t, lines[0], `"task":"Floor Clean"`)
	require.Contains(t, lines[1], `"overall":87`)
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rxtrack.log")
	logger, err := New("warn", path)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "hidden")
	require.Contains(t, string(raw), "shown")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = ParseLevel(" error ")
	require.NoError(t, err)
	require.Equal(t, zapcore.ErrorLevel, lvl)

	_, err = ParseLevel("chatty")
	require.Error(t, err)
}

func TestForTUIWithoutFileIsNop(t *testing.T) {
	logger, err := ForTUI("info", "")
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}
