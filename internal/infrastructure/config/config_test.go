package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "rosemer-ledger", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "rosemer.db", cfg.Database.Path)
	assert.Equal(t, 5000, cfg.Database.BusyTimeoutMS)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "stdout", cfg.Log.Output)
	assert.Equal(t, "log.txt", cfg.Audit.Path)
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	toml := []byte("[database]\npath = \"shop-ledger.db\"\n\n[log]\nformat = \"json\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), toml, 0644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "shop-ledger.db", cfg.Database.Path)
	assert.Equal(t, "json", cfg.Log.Format)
	// Untouched sections keep their defaults
	assert.Equal(t, "rosemer-ledger", cfg.App.Name)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ROSEMER_DATABASE_PATH", "/tmp/test-ledger.db")
	t.Setenv("ROSEMER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test-ledger.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults pass", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("negative busy timeout rejected", func(t *testing.T) {
		cfg := base()
		cfg.Database.BusyTimeoutMS = -1
		assert.Error(t, cfg.validate())
	})

	t.Run("idle above open rejected", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxOpenConns = 1
		cfg.Database.MaxIdleConns = 5
		assert.Error(t, cfg.validate())
	})

	t.Run("unknown log format rejected", func(t *testing.T) {
		cfg := base()
		cfg.Log.Format = "xml"
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{Path: "rosemer.db", BusyTimeoutMS: 5000}
	assert.Equal(t, "file:rosemer.db?_busy_timeout=5000&_foreign_keys=on", d.DSN())
}
