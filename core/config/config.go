package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"nutrient-sync/core/errors"
	"nutrient-sync/core/logger"
	"nutrient-sync/core/reconcile"
	"nutrient-sync/core/storage"
	"nutrient-sync/feature/catalog"
	"nutrient-sync/feature/fdc"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Catalog holds configuration for the catalog API.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Provider holds configuration for the FoodData Central API.
	Provider fdc.Config `mapstructure:"provider"`
	// Sync holds configuration for reconcile runs.
	Sync reconcile.Config `mapstructure:"sync"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Storage holds configuration for the report archive.
	Storage storage.Config `mapstructure:"storage"`
}

// LoadConfig loads configuration from a .env file, an optional config file
// (config.yaml, config.json, ...) in path and environment variables.
// Environment variables take precedence over the config file.
func LoadConfig(path string) (*Config, error) {
	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetConfigName("config")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &errors.ConfigError{Field: "config file", Message: err.Error()}
		}
	}

	// Map environment variables to nested keys (e.g. CATALOG_URL -> catalog.url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ValidateCatalog checks the values needed to talk to the catalog.
func (c *Config) ValidateCatalog() error {
	if strings.TrimSpace(c.Catalog.URL) == "" {
		return &errors.ConfigError{Field: "catalog.url", Message: "required"}
	}
	if c.Catalog.Token == "" {
		return &errors.ConfigError{Field: "catalog.token", Message: "required"}
	}
	if _, err := catalog.ParseVariant(c.Catalog.Variant); err != nil {
		return &errors.ConfigError{Field: "catalog.variant", Message: err.Error()}
	}
	return nil
}

// Validate checks the values a sync run cannot start without.
func (c *Config) Validate() error {
	if err := c.ValidateCatalog(); err != nil {
		return err
	}
	if c.Provider.APIKey == "" {
		return &errors.ConfigError{Field: "provider.api_key", Message: "required"}
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return &errors.ConfigError{Field: "log.level", Message: err.Error()}
	}
	if c.Sync.Concurrency < 1 {
		return &errors.ConfigError{Field: "sync.concurrency", Message: "must be at least 1"}
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return &errors.ConfigError{Field: "storage.bucket", Message: "required when storage is enabled"}
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
