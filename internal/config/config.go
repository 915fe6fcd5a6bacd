// Package config loads application configuration from the environment,
// with optional .env file support for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/habitforge/habitctl/internal/constants"
)

// Config holds all runtime configuration for habitctl.
type Config struct {
	APIBaseURL string        `env:"HABITCTL_API_URL" envDefault:"http://localhost:8080"`
	Timeout    time.Duration `env:"HABITCTL_TIMEOUT" envDefault:"30s"`
	Debug      bool          `env:"HABITCTL_DEBUG" envDefault:"false"`
	ConfigDir  string        `env:"HABITCTL_CONFIG_DIR"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; its absence is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.ConfigDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return cfg, fmt.Errorf("failed to determine config dir: %w", err)
		}
		cfg.ConfigDir = filepath.Join(dir, constants.AppName)
	}

	return cfg, nil
}

// EnsureConfigDir creates the config directory if it does not exist.
func (c Config) EnsureConfigDir() error {
	return os.MkdirAll(c.ConfigDir, 0o755)
}
