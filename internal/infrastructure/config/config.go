package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	Probe     ProbeConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// GeminiConfig holds external AI provider configuration.
//
// An empty APIKey is a routine failure mode, not a startup error: the gateway
// degrades every call to its fallback value.
type GeminiConfig struct {
	APIKey  string        `envconfig:"GEMINI_API_KEY" default:""`
	Model   string        `envconfig:"GEMINI_MODEL" default:"gemini-3-flash-preview"`
	Timeout time.Duration `envconfig:"GEMINI_TIMEOUT" default:"10s"`
}

// ProbeConfig holds stream metadata probe configuration.
type ProbeConfig struct {
	Enabled bool          `envconfig:"PROBE_ENABLED" default:"true"`
	Timeout time.Duration `envconfig:"PROBE_TIMEOUT" default:"5s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Gemini: GeminiConfig{
			Model:   "gemini-3-flash-preview",
			Timeout: 10 * time.Second,
		},
		Probe: ProbeConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
		},
		Logging: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
