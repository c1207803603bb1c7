// Package server configuration: runtime defaults, environment parsing, and
// rate-limiting parameters.
package server

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// RateLimitConfig defines the parameters for per-connection frame rate
// limiting.
type RateLimitConfig struct {
	Burst          int           `env:"RATE_LIMIT_BURST"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL"`
}

// Config holds the server configuration settings including transport
// hardening controls. An empty AllowedOrigins list, or an entry of "*",
// admits every browser origin; non-browser clients send no Origin header and
// are always admitted.
type Config struct {
	Port            string   `env:"SERVER_PORT"`
	Env             string   `env:"ENV" envDefault:"development"`
	AllowedOrigins  []string `env:"ALLOWED_ORIGINS"`
	MaxMessageSize  int64    `env:"MAX_MESSAGE_SIZE"`
	SimulateTraffic bool     `env:"SIMULATE_TRAFFIC"`
	RateLimit       RateLimitConfig
}

// NewConfig creates a Config populated with default values for all settings.
func NewConfig() *Config {
	cfg := &Config{Env: "development"}
	cfg.sanitize()
	return cfg
}

// LoadConfig reads configuration from the environment, loading a .env file
// first when one is present, and fills defaults for anything unset.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	cfg.sanitize()
	return cfg, nil
}

func (c *Config) sanitize() {
	if c.Port == "" {
		c.Port = ":8080"
	}
	if !strings.Contains(c.Port, ":") {
		c.Port = ":" + c.Port
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = 4096
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 20
	}
	if c.RateLimit.RefillInterval <= 0 {
		c.RateLimit.RefillInterval = time.Second
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
}

// IsDevelopment returns true when running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
