// Package config reads the process configuration of the squad_leader command
// from SQUAD_* environment variables. Command line arguments take precedence
// over it, see cmd/main.go.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Scenario file, .yaml or .lua.
	Scenario string `env:"SQUAD_SCENARIO"`
	// Effect tables replacing the built-in ones.
	Tables string `env:"SQUAD_TABLES"`
	Locale string `env:"SQUAD_LOCALE" envDefault:"en-US"`
	// SQLite database caching line of sight tables. Empty disables caching.
	LOSDB string `env:"SQUAD_LOS_DB"`

	LogLevel string `env:"SQUAD_LOG_LEVEL" envDefault:"info"`
	LogDev   bool   `env:"SQUAD_LOG_DEV" envDefault:"false"`

	// OTLP/HTTP endpoint URL, e.g. http://localhost:4318. Empty disables tracing.
	OTLPEndpoint string `env:"SQUAD_OTLP_ENDPOINT"`

	// Zero means a seed based on the current time.
	Seed int64 `env:"SQUAD_SEED" envDefault:"0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
