// Package config loads the application configuration.
//
// Values come from, in increasing precedence: `default` struct tags, an optional
// config file (config.yaml, config.json, ...) in the given directory, a .env file
// and environment variables. Nested keys map to upper-case variables joined by
// underscores, so catalog.url is read from CATALOG_URL and provider.api_key from
// PROVIDER_API_KEY.
//
// # Sections
//
//   - catalog: catalog API location, variant (v1, v2) and token.
//   - provider: FoodData Central API root and key.
//   - sync: concurrency and rate-limit cooldown.
//   - log: level and format.
//   - storage: optional report archive (MinIO or S3).
//
// Validate must pass before any network call is made.
package config
