// Package config reads hosei defaults from the environment.
//
// Command-line flags always take precedence; these values only seed flag
// defaults.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds environment-provided defaults.
type Config struct {
	// Database is the sqlite path runs are persisted to. Empty disables
	// persistence.
	Database string `env:"HOSEI_DB"`

	// Format is the default output format (text|json).
	Format string `env:"HOSEI_FORMAT" envDefault:"text"`

	// Verbose enables debug logging.
	Verbose bool `env:"HOSEI_VERBOSE"`

	// Top is how many ranked votes the infer report shows.
	Top int `env:"HOSEI_TOP" envDefault:"5"`
}

// Default returns the configuration used when the environment sets nothing.
func Default() Config {
	return Config{Format: "text", Top: 5}
}

// Load parses Config from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
