package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds HTTP transport settings read from the environment.
type Config struct {
	Addr           string        `env:"LSL_HTTP_ADDR"        envDefault:":3000"`
	MaxScriptBytes int64         `env:"LSL_MAX_SCRIPT_BYTES" envDefault:"1048576"`
	RunTimeout     time.Duration `env:"LSL_RUN_TIMEOUT"      envDefault:"30s"`
}

// LoadConfig parses Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxScriptBytes <= 0 {
		return Config{}, fmt.Errorf("LSL_MAX_SCRIPT_BYTES must be positive, got %d", cfg.MaxScriptBytes)
	}
	if cfg.RunTimeout <= 0 {
		return Config{}, fmt.Errorf("LSL_RUN_TIMEOUT must be positive, got %s", cfg.RunTimeout)
	}
	return cfg, nil
}
