package reconcile

import "time"

// Config holds configuration for sync runs.
type Config struct {
	// Concurrency is the number of foods processed at once.
	Concurrency int `mapstructure:"concurrency" default:"4"`
	// LowWaterMark is the remaining FDC request budget that triggers a cooldown.
	LowWaterMark int `mapstructure:"low_water_mark" default:"20"`
	// CooldownSeconds is the length of the cooldown in seconds.
	CooldownSeconds int `mapstructure:"cooldown_seconds" default:"60"`
}

// Options converts the configuration into engine options.
func (c Config) Options() Options {
	return Options{
		Concurrency:  c.Concurrency,
		LowWaterMark: c.LowWaterMark,
		Cooldown:     time.Duration(c.CooldownSeconds) * time.Second,
	}
}
