package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// RateLimitDriver selects the counter backend for the rate limiter.
type RateLimitDriver string

const (
	RateLimitMemory RateLimitDriver = "memory"
	RateLimitRedis  RateLimitDriver = "redis"
)

type Config struct {
	HTTPAddr    string   `env:"HTTP_ADDR" envDefault:":8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"chrome-extension://*,http://localhost:*,https://schoolpilot.co,https://*.schoolpilot.co"`

	RateLimit       int             `env:"RATE_LIMIT" envDefault:"10"`
	RateWindow      time.Duration   `env:"RATE_WINDOW" envDefault:"24h"`
	RateLimitDriver RateLimitDriver `env:"RATE_LIMIT_DRIVER" envDefault:"memory"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
