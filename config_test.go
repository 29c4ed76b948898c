package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("DATASET_PATH", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "5001", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
	assert.Equal(t, filepath.Join("pnp_data", "output.json"),
		filepath.Join(filepath.Base(filepath.Dir(cfg.DatasetPath)), filepath.Base(cfg.DatasetPath)))
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "8091")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATASET_PATH", "/srv/promos/output.json")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000/, https://cheap-cheap.example.com")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8091", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "/srv/promos/output.json", cfg.DatasetPath)
	assert.Equal(t, []string{"http://localhost:3000", "https://cheap-cheap.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
}

func TestLoadConfig_InvalidRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestDefaultDatasetPath(t *testing.T) {
	exe := filepath.Join("/opt", "cheap-cheap", "bin", "promotions-api")
	assert.Equal(t, filepath.Join("/opt", "cheap-cheap", "pnp_data", "output.json"), defaultDatasetPath(exe))
}

func TestParseOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, parseOrigins(" , "))
	assert.Equal(t, []string{"*"}, parseOrigins("*"))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, parseOrigins("http://a.test/,http://b.test"))
}
