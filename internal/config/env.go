package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// applyEnv binds LEVELUP_* environment variables over the loaded config.
func applyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
