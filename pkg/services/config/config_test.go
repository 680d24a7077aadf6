package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Metrics.TopCategories)
	assert.Empty(t, cfg.Data.Dir)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	content := `
server:
  host: 0.0.0.0
  port: "9090"
data:
  dir: ./data
metrics:
  top_categories: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "./data", cfg.Data.Dir)
	assert.Equal(t, 5, cfg.Metrics.TopCategories)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
