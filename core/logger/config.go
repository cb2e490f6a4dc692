package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn (warning) or error.
	Level string `mapstructure:"level" default:"info"`
	// Format is the output encoding: console or json.
	Format string `mapstructure:"format" default:"console"`
}
