package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds all environment backed configuration for the catalog.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Path of the YAML overrides document (filter + prefer), empty to run
	// with everything visible.
	OverridesFile string `env:"CATALOG_OVERRIDES_FILE"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
