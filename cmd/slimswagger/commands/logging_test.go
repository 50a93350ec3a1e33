package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogOptionsLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, LogOptions{}.level())
	assert.Equal(t, slog.LevelDebug, LogOptions{Verbose: true}.level())
	assert.Equal(t, slog.LevelError, LogOptions{Quiet: true}.level())
	assert.Equal(t, slog.LevelDebug, LogOptions{Verbose: true, Quiet: true}.level())
}

func TestNewLogger_Stderr(t *testing.T) {
	var buf bytes.Buffer
	logger, closeLog := NewLogger(&buf, LogOptions{})
	defer closeLog()

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "key=value")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewLogger_File(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "slimswagger.log")

	logger, closeLog := NewLogger(&buf, LogOptions{File: path, Verbose: true})
	logger.Debug("to the file")
	closeLog()

	assert.Empty(t, buf.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to the file")
}
