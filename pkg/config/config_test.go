package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  name: relay
provider:
  api_key: sk-test
  model: gpt-4o-mini
  base_url: https://example.invalid/v1
memory:
  type: sqlite
  path: /tmp/relay.db
engine:
  max_iterations: 12
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "relay", cfg.App.Name)
	assert.Equal(t, "sk-test", cfg.Provider.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Provider.Model)
	assert.Equal(t, "https://example.invalid/v1", cfg.Provider.BaseURL)
	assert.Equal(t, "sqlite", cfg.Memory.Type)
	assert.Equal(t, "/tmp/relay.db", cfg.Memory.Path)
	assert.Equal(t, 12, cfg.Engine.MaxIterations)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
provider:
  model: gpt-4o-mini
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "relay", cfg.App.Name)
	assert.Equal(t, "buffer", cfg.Memory.Type)
	assert.Zero(t, cfg.Engine.MaxIterations, "engine default belongs to the executor")
}

func TestLoadSqliteDefaultPath(t *testing.T) {
	path := writeConfig(t, `
memory:
  type: sqlite
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "relay.db", cfg.Memory.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "provider: [not: a map")
	_, err := Load(path)
	require.Error(t, err)
}
