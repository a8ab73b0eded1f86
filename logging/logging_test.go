package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "2019_08_21_08_35_59.log")

	logger, err := NewRun(logFile, false)
	require.NoError(t, err)

	logger.Info("repository name resolved")
	logger.Debug("raw response")

	_ = logger.Sync()

	contents, err := os.ReadFile(logFile)
	require.NoError(t, err)

	assert.Contains(t, string(contents), "repository name resolved")
	assert.NotContains(t, string(contents), "raw response", "debug entries are gated behind --verbose")
}

func TestNewRunVerbose(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "run.log")

	logger, err := NewRun(logFile, true)
	require.NoError(t, err)

	logger.Debug("raw response")

	_ = logger.Sync()

	contents, err := os.ReadFile(logFile)
	require.NoError(t, err)

	assert.Contains(t, string(contents), "raw response")
}

func TestNewRunAppendsAcrossLoggers(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "run.log")

	first, err := NewRun(logFile, false)
	require.NoError(t, err)

	first.Info("first entry")
	_ = first.Sync()

	second, err := NewRun(logFile, false)
	require.NoError(t, err)

	second.Info("second entry")
	_ = second.Sync()

	contents, err := os.ReadFile(logFile)
	require.NoError(t, err)

	assert.Contains(t, string(contents), "first entry")
	assert.Contains(t, string(contents), "second entry")
}
