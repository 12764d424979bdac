package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvane/iceburger/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 32, cfg.TileSize)
	assert.Equal(t, 900, cfg.StartSpeedMs)
	assert.Equal(t, 70, cfg.SpeedStepMs)
	assert.Equal(t, 90, cfg.MinSpeedMs)
	assert.True(t, cfg.Audio)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iceburger.yml")
	require.NoError(t, os.WriteFile(path, []byte("tileSize: 48\naudio: false\nseed: 42\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 48, cfg.TileSize)
	assert.False(t, cfg.Audio)
	assert.Equal(t, int64(42), cfg.Seed)
	// Untouched keys keep their defaults.
	assert.Equal(t, 900, cfg.StartSpeedMs)
}

func TestLoadRejectsBadSpeedCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iceburger.yml")
	require.NoError(t, os.WriteFile(path, []byte("startSpeedMs: 50\nminSpeedMs: 90\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iceburger.yml")
	require.NoError(t, os.WriteFile(path, []byte("tileSize: [oops\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
