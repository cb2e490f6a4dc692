package config

import (
	"os"
	"path/filepath"
	"testing"

	"nutrient-sync/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	c := &Config{}
	c.Catalog.URL = "recipes.local"
	c.Catalog.Variant = "v2"
	c.Catalog.Token = "secret"
	c.Provider.APIKey = "key"
	c.Log.Level = "info"
	c.Sync.Concurrency = 4
	return c
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "v2", cfg.Catalog.Variant)
	assert.Equal(t, 30, cfg.Catalog.TimeoutSeconds)
	assert.Equal(t, "https://api.nal.usda.gov/fdc/v1", cfg.Provider.URL)
	assert.Equal(t, 4, cfg.Sync.Concurrency)
	assert.Equal(t, 20, cfg.Sync.LowWaterMark)
	assert.Equal(t, 60, cfg.Sync.CooldownSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "reports", cfg.Storage.ReportPrefix)
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	yaml := "catalog:\n  url: recipes.local:8080\n  variant: v1\nsync:\n  concurrency: 8\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PROVIDER_API_KEY=from-dotenv\n"), 0o600))

	t.Setenv("SYNC_CONCURRENCY", "2")
	t.Setenv("CATALOG_TOKEN", "from-env")
	t.Setenv("PROVIDER_API_KEY", "")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "recipes.local:8080", cfg.Catalog.URL)
	assert.Equal(t, "v1", cfg.Catalog.Variant)
	assert.Equal(t, "from-env", cfg.Catalog.Token)
	assert.Equal(t, "from-dotenv", cfg.Provider.APIKey)
	assert.Equal(t, 2, cfg.Sync.Concurrency, "environment wins over the config file")
}

func TestLoadConfig_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("catalog: [\n"), 0o600))

	_, err := LoadConfig(dir)
	assert.ErrorIs(t, err, errors.ErrConfig)
}

func TestValidateCatalog_IgnoresProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Provider.APIKey = ""

	assert.NoError(t, cfg.ValidateCatalog())
	assert.Error(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"Valid", func(*Config) {}, ""},
		{"MissingURL", func(c *Config) { c.Catalog.URL = " " }, "catalog.url"},
		{"MissingToken", func(c *Config) { c.Catalog.Token = "" }, "catalog.token"},
		{"UnknownVariant", func(c *Config) { c.Catalog.Variant = "v3" }, "catalog.variant"},
		{"MissingAPIKey", func(c *Config) { c.Provider.APIKey = "" }, "provider.api_key"},
		{"BadLogLevel", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"ZeroConcurrency", func(c *Config) { c.Sync.Concurrency = 0 }, "sync.concurrency"},
		{"StorageWithoutBucket", func(c *Config) { c.Storage.Enabled = true }, "storage.bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var cfgErr *errors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.ErrorIs(t, err, errors.ErrConfig)
		})
	}
}
