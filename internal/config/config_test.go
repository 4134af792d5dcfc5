package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "normal", cfg.Log.Level)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ottocost.yaml")
	yaml := `
log:
  level: verbose
import:
  recipes: data/recipes.csv
export:
  target: s3://books/exports
  path_style: true
metrics:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("OTTOCOST_LOG_LEVEL", "off")
	t.Setenv("OTTOCOST_METRICS_ADDR", "127.0.0.1:9999")
	t.Setenv("OTTOCOST_METRICS_ENABLED", "not-a-bool")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "off", cfg.Log.Level, "env beats file")
	assert.Equal(t, ".ottocost-logs/ottocost.log", cfg.Log.File, "default survives")
	assert.Equal(t, "data/recipes.csv", cfg.Import.Recipes)
	assert.Equal(t, "s3://books/exports", cfg.Export.Target)
	assert.True(t, cfg.Export.PathStyle)
	assert.True(t, cfg.Metrics.Enabled, "unparseable env bool keeps file value")
	assert.Equal(t, "127.0.0.1:9999", cfg.Metrics.Addr)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "x.yaml", ConfigPath("x.yaml"))
	t.Setenv("OTTOCOST_CONFIG", "y.yaml")
	assert.Equal(t, "y.yaml", ConfigPath("x.yaml"))
}
