package catalog

import (
	"fmt"
	"strings"
)

// Config holds configuration for the catalog API.
type Config struct {
	// URL is the catalog host or base URL (e.g. "recipes.local:8080" or "https://recipes.example.com").
	URL string `mapstructure:"url" default:""`
	// Variant selects the catalog API revision (v1, v2).
	Variant string `mapstructure:"variant" default:"v2"`
	// Token is the bearer token sent with every request.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Variant is a supported catalog API revision.
type Variant string

const (
	// VariantV1 is the legacy API exposing property types under food-property-type/.
	VariantV1 Variant = "v1"
	// VariantV2 is the current API exposing property types under property-type/.
	// It also accepts fdc_id in food updates.
	VariantV2 Variant = "v2"
)

// ParseVariant validates a configured variant name.
func ParseVariant(name string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(name))); v {
	case VariantV1, VariantV2:
		return v, nil
	default:
		return "", fmt.Errorf("unsupported catalog API variant %q (expected v1 or v2)", name)
	}
}

// PropertyTypePath returns the property type collection path of the variant.
func (v Variant) PropertyTypePath() string {
	if v == VariantV1 {
		return "food-property-type/"
	}
	return "property-type/"
}

// SendsCrossRefID reports whether food updates carry the fdc_id field.
func (v Variant) SendsCrossRefID() bool {
	return v == VariantV2
}

// BaseURL normalizes the configured URL into the API root, always ending in "/api/".
// A bare host is reached over plain http.
func (c Config) BaseURL() string {
	base := strings.TrimSpace(c.URL)
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}
	return base + "/"
}
