package fdc

// Config holds configuration for the FoodData Central API.
type Config struct {
	// URL is the API root.
	URL string `mapstructure:"url" default:"https://api.nal.usda.gov/fdc/v1"`
	// APIKey is sent in the X-Api-Key header.
	APIKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
