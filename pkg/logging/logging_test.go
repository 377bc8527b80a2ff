package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestSetupWithOptionsWritesFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "guestlist.log")
	closer := SetupWithOptions(Options{Level: slog.LevelInfo, File: path, MaxSizeMB: 1})

	slog.Debug("hidden")
	slog.Info("Guest added", "name", "Alice")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Guest added")
	assert.Contains(t, string(b), "name=Alice")
	assert.NotContains(t, string(b), "hidden")
	assert.NotContains(t, string(b), "\x1b[", "file sink must not be colored")
}

func TestSetupWithOptionsNoFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	closer := SetupWithOptions(Options{Level: slog.LevelWarn})
	assert.NoError(t, closer.Close())
	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelInfo))
}
