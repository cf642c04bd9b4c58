package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, BackendLocal, cfg.Store.Backend)
	assert.Equal(t, "./data", cfg.Store.BasePath)
	assert.True(t, cfg.Store.SeedDemoData)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  env: production
store:
  backend: sqlite
  dsn: /tmp/x.db
  seed_demo_data: false
`), 0644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/x.db", cfg.Store.DSN)
	assert.False(t, cfg.Store.SeedDemoData)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "./data", cfg.Store.BasePath)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: local\n"), 0644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("SEED_DEMO_DATA", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.False(t, cfg.Store.SeedDemoData)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STORE_BACKEND", "redis")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFailsOnExplicitMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
