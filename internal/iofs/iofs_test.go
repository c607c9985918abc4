package iofs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/wcvpseed/pkg/config"
	"github.com/gnames/wcvpseed/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	for _, dir := range []string{
		filepath.Join(tmpDir, ".config", "wcvpseed"),
		filepath.Join(tmpDir, ".cache", "wcvpseed"),
		filepath.Join(tmpDir, ".local", "share", "wcvpseed", "logs"),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), dir)
	}

	// second call is a no-op
	require.NoError(t, EnsureDirs(tmpDir))
}

func TestEnsureParentDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a", "b", "prepared.csv")

	require.NoError(t, EnsureParentDir(path))
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureDirs_Error(t *testing.T) {
	tmpDir := t.TempDir()
	// a file where the .config directory should be
	blocker := filepath.Join(tmpDir, ".config")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := EnsureDirs(tmpDir)
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CreateDirError, gnErr.Code)
}

// TestEnsureConfigFile verifies the embedded config is written once and
// is a valid configuration.
func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureConfigFile(tmpDir))

	path := config.ConfigFilePath(tmpDir)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(data))

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	def := config.New()
	assert.Equal(t, def.Archive, cfg.Archive)
	assert.Equal(t, def.Emit, cfg.Emit)
	assert.Equal(t, def.Database, cfg.Database)
	assert.Equal(t, def.Log, cfg.Log)

	// existing file is kept
	require.NoError(t, os.WriteFile(path, []byte("custom"), 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", string(data))
}
