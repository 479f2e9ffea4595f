package scriptutil

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerConsoleLevels(t *testing.T) {
	out := &bytes.Buffer{}
	logger, err := NewLogger(LoggerArgs{Console: out})
	require.NoError(t, err)

	logger.Info("too quiet to appear")
	logger.Warn("warned", "reason", "testing")

	assert.NotContains(t, out.String(), "too quiet to appear")
	assert.Contains(t, out.String(), "warned")
	assert.Contains(t, out.String(), "reason=testing")
}

func TestNewLoggerCustomLevel(t *testing.T) {
	out := &bytes.Buffer{}
	logger, err := NewLogger(LoggerArgs{
		Console: out,
		Level:   ptr(slog.LevelDebug),
	})
	require.NoError(t, err)

	logger.Debug("visible now")
	assert.Contains(t, out.String(), "visible now")
}

func TestNewLoggerFileFanout(t *testing.T) {
	out := &bytes.Buffer{}
	logFile := filepath.Join(t.TempDir(), "run.log")

	logger, err := NewLogger(LoggerArgs{
		Console: out,
		LogFile: logFile,
	})
	require.NoError(t, err)

	logger.Debug("file only")
	logger.Error("everywhere")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)

	assert.Contains(t, string(data), "file only", "file log defaults to debug")
	assert.Contains(t, string(data), "everywhere")
	assert.NotContains(t, out.String(), "file only", "console stays at warn")
	assert.Contains(t, out.String(), "everywhere")
}

func TestNewLoggerNoSinks(t *testing.T) {
	logger, err := NewLogger(LoggerArgs{NoConsole: true})
	require.NoError(t, err)
	// Must be safe to use even with nothing attached
	logger.Error("dropped")
}

func TestVerbosityLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelError, NoVerbosity.LogLevel())
	assert.Equal(t, slog.LevelWarn, LowVerbosity.LogLevel())
	assert.Equal(t, slog.LevelInfo, MediumVerbosity.LogLevel())
	assert.Equal(t, slog.LevelDebug, HighVerbosity.LogLevel())
}

func TestParseVerbosity(t *testing.T) {
	v, err := ParseVerbosity(2)
	require.NoError(t, err)
	assert.Equal(t, MediumVerbosity, v)

	_, err = ParseVerbosity(7)
	assert.ErrorIs(t, err, ErrInvalidVerbosity)
	assert.ErrorIs(t, err, ErrVerbosityTooHigh)

	_, err = ParseVerbosity(-1)
	assert.ErrorIs(t, err, ErrVerbosityTooLow)
}
