// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds server configuration. Values come from environment
// variables; a .env file loaded by the caller can supply them in
// development.
type Config struct {
	// ListenAddr is the HTTP API listen address.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// MetricsAddr is the Prometheus metrics listen address.
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
