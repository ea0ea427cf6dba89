package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 50.0, cfg.Map.Padding)
	assert.Equal(t, 1000.0, cfg.Map.FallbackWidth)
	assert.Equal(t, 600.0, cfg.Map.FallbackHeight)
	assert.Equal(t, 1.2, cfg.Camera.ZoomFactor)
	assert.True(t, cfg.Camera.Smoothing)
	assert.Equal(t, 150*time.Millisecond, cfg.Selection.HighlightDuration())
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "province-map.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
map:
  padding: 20
camera:
  max_zoom: 4.0
selection:
  highlight_ms: 300
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20.0, cfg.Map.Padding)
	assert.Equal(t, 4.0, cfg.Camera.MaxZoom)
	assert.Equal(t, 300*time.Millisecond, cfg.Selection.HighlightDuration())
	// Untouched sections keep their defaults.
	assert.Equal(t, 0.25, cfg.Camera.MinZoom)
	assert.Equal(t, "localhost", cfg.PostGIS.Host)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("map: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
