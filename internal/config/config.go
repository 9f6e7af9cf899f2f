package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton so init-order consumers can reach the loaded config
var globalConfig *Config

// Config holds all environment backed configuration for chat-api.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"3000"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// Model Provider
	LLMProviderURL string `env:"LLM_PROVIDER_URL"`
	LLMAPIKey      string `env:"LLM_API_KEY"`
	LLMModel       string `env:"LLM_MODEL"`

	// Startup / persistence behaviour
	AutoMigrate      bool          `env:"AUTO_MIGRATE" envDefault:"true"`
	DBConnectRetries int           `env:"DB_CONNECT_RETRIES" envDefault:"3"`
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DBConnectRetries < 1 {
		return nil, errors.New("DB_CONNECT_RETRIES must be at least 1")
	}

	if cfg.LLMProviderURL != "" {
		if _, err := url.ParseRequestURI(cfg.LLMProviderURL); err != nil {
			return nil, fmt.Errorf("invalid LLM_PROVIDER_URL: %w", err)
		}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg

	return cfg, nil
}

// GetGlobal returns the most recently loaded config, or nil before Load.
func GetGlobal() *Config {
	return globalConfig
}
