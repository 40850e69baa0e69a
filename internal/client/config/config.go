// Package config loads runtime configuration for the cityreport CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (env-default tags).
//  2. Optional YAML file selected via the CONFIG_PATH environment variable.
//  3. Environment variables, which override earlier values.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds runtime settings for the cityreport CLI.
type Config struct {
	// Env selects the runtime environment; anything other than
	// "production" enables debug logging.
	Env string `yaml:"env" env:"CITYREPORT_ENV" env-default:"development"`

	// APIBaseURL is the root of the backend API.
	APIBaseURL string `yaml:"api_base_url" env:"CITYREPORT_API_URL" env-default:"http://localhost:5000/api/v1"`

	// HTTPTimeout bounds every backend call, the token refresh included.
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"CITYREPORT_HTTP_TIMEOUT" env-default:"15s"`

	// TokenDBPath is the SQLite file holding the persisted tokens.
	// Empty means in-memory only: tokens die with the process.
	TokenDBPath string `yaml:"token_db" env:"CITYREPORT_DB" env-default:"cityreport.db"`
}

const envConfigPath = "CONFIG_PATH"

// Load builds the Config. When CONFIG_PATH points at a YAML file it is
// read first; environment variables always win.
func Load() (*Config, error) {
	cfg := &Config{}

	if path, ok := os.LookupEnv(envConfigPath); ok && path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read env config: %w", err)
	}
	return cfg, nil
}
