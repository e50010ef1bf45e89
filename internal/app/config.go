package app

import (
	"macrolog/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Silent suppresses all log output
	Silent bool

	// Custom configuration directory (optional)
	// When set, disables the default config lookup
	ConfigPath string

	// Environment configuration, populated during bootstrap.
	// Pre-populating it skips configuration loading entirely.
	MacrologConfig *config.MacrologConfig
}

// NewConfig creates a new application configuration
func NewConfig(debug, silent bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		Silent:     silent,
		ConfigPath: configPath,
	}
}
