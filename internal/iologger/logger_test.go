package iologger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/wcvpseed/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in  string
		res slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, parseLevel(v.in), v.in)
	}
}

func TestInitFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	logDir := t.TempDir()
	cfg := config.LogConfig{Format: "text", Level: "debug", Destination: "file"}

	require.NoError(t, Init(logDir, cfg, false))
	slog.Info("first message")

	require.NoError(t, Init(logDir, cfg, true))
	slog.Debug("second message")

	data, err := os.ReadFile(filepath.Join(logDir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "first message")
	assert.Contains(t, string(data), "second message")
}

func TestInitFileError(t *testing.T) {
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	err := Init(filepath.Join(t.TempDir(), "missing"), cfg, false)
	assert.Error(t, err)
}
