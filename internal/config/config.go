// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the server configuration from PC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"PC_DB_PATH" envDefault:"./data/pharmaconnect.db"`
	SessionSecret string `env:"PC_SESSION_SECRET,required"`
	ServerHost    string `env:"PC_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"PC_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"PC_ENV" envDefault:"development"`
	LogLevel      string `env:"PC_LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"PC_LOG_FORMAT" envDefault:"text"`

	// External REST API
	APIBaseURL string `env:"PC_API_BASE_URL,required"`
	APITimeout int    `env:"PC_API_TIMEOUT" envDefault:"10"` // seconds
	APIRetries int    `env:"PC_API_RETRIES" envDefault:"3"`

	DemoEnabled bool `env:"PC_DEMO_ENABLED" envDefault:"true"`

	// Cache configuration
	RedisURL     string `env:"PC_REDIS_URL"`                         // Optional Redis URL for the menu cache
	CachePrefix  string `env:"PC_CACHE_PREFIX" envDefault:"pc:"`     // Redis key prefix
	CacheTTL     int    `env:"PC_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"PC_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	EventRetentionDays int `env:"PC_EVENT_RETENTION_DAYS" envDefault:"30"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// APITimeoutDuration returns the API request timeout.
func (c Config) APITimeoutDuration() time.Duration {
	return time.Duration(c.APITimeout) * time.Second
}

// CacheTTLDuration returns the cache TTL.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("PC_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// Validate checks values that struct tags cannot express.
func (c *Config) Validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("PC_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}
	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return errors.New("PC_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("PC_API_BASE_URL must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}

	switch c.Env {
	case "development", "production":
	default:
		return fmt.Errorf("PC_ENV must be development or production, got %q", c.Env)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("PC_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}

	if c.APITimeout <= 0 {
		return fmt.Errorf("PC_API_TIMEOUT must be positive, got %d", c.APITimeout)
	}
	if c.APIRetries < 0 {
		return fmt.Errorf("PC_API_RETRIES must not be negative, got %d", c.APIRetries)
	}
	if c.EventRetentionDays < 0 {
		return fmt.Errorf("PC_EVENT_RETENTION_DAYS must not be negative, got %d", c.EventRetentionDays)
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
