// Package config handles client configuration and environment loading.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultBaseURL is the public endpoint of the event catalog.
const DefaultBaseURL = "https://www.lmsal.com/hek/her"

// Config holds the configuration for the catalog client.
type Config struct {
	BaseURL   string        // catalog endpoint (default DefaultBaseURL)
	Timeout   time.Duration // per-request HTTP timeout (default 60s)
	UserAgent string        // User-Agent header sent with every request
	LogLevel  string        // log level: debug, info, warn, error (default "info")
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   60 * time.Second,
		UserAgent: "heliocat",
		LogLevel:  "info",
	}
}

// LoadFromEnv loads configuration from environment variables, falling back
// to defaults. All variables are optional.
func LoadFromEnv() (*Config, error) {
	cfg := Default()
	if v := os.Getenv("HEK_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("HEK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("HEK_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("HEK_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("HEK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL %q must be http or https", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
