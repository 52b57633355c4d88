// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-Secret-key-32-bytes-long!!!"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PC_SESSION_SECRET", testSecret)
	t.Setenv("PC_API_BASE_URL", "https://api.pharmaconnect.example/v1")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/pharmaconnect.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/pharmaconnect.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if !cfg.IsDevelopment() {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("LogLevel/LogFormat = %q/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if !cfg.DemoEnabled {
		t.Error("DemoEnabled = false, want true")
	}
	if cfg.APITimeoutDuration() != 10*time.Second {
		t.Errorf("APITimeoutDuration = %v, want 10s", cfg.APITimeoutDuration())
	}
	if cfg.APIRetries != 3 {
		t.Errorf("APIRetries = %d, want 3", cfg.APIRetries)
	}
	if cfg.EventRetentionDays != 30 {
		t.Errorf("EventRetentionDays = %d, want 30", cfg.EventRetentionDays)
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache = true without PC_REDIS_URL")
	}
	if cfg.CacheTTLDuration() != time.Hour {
		t.Errorf("CacheTTLDuration = %v, want 1h", cfg.CacheTTLDuration())
	}
}

func TestLoad_CustomValues(t *testing.T) {
	setRequired(t)
	t.Setenv("PC_DB_PATH", "/var/lib/pc.db")
	t.Setenv("PC_SERVER_HOST", "0.0.0.0")
	t.Setenv("PC_SERVER_PORT", "3000")
	t.Setenv("PC_ENV", "production")
	t.Setenv("PC_LOG_FORMAT", "json")
	t.Setenv("PC_DEMO_ENABLED", "false")
	t.Setenv("PC_REDIS_URL", "redis://localhost:6379/1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/var/lib/pc.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr = %q, want %q", cfg.ServerAddr(), "0.0.0.0:3000")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment = true in production")
	}
	if cfg.DemoEnabled {
		t.Error("DemoEnabled = true, want false")
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache = false")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("PC_SESSION_SECRET", "")
	t.Setenv("PC_API_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing required variables")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			SessionSecret: testSecret,
			APIBaseURL:    "http://localhost:4000",
			Env:           "development",
			LogFormat:     "text",
			APITimeout:    5,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"short secret", func(c *Config) { c.SessionSecret = "short" }, "at least 32 bytes"},
		{"weak secret", func(c *Config) { c.SessionSecret = "change-me-to-32-byte-secret-key!" }, "known default"},
		{"relative api url", func(c *Config) { c.APIBaseURL = "/api" }, "PC_API_BASE_URL"},
		{"ftp api url", func(c *Config) { c.APIBaseURL = "ftp://host" }, "PC_API_BASE_URL"},
		{"bad env", func(c *Config) { c.Env = "staging" }, "PC_ENV"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "PC_LOG_FORMAT"},
		{"zero timeout", func(c *Config) { c.APITimeout = 0 }, "PC_API_TIMEOUT"},
		{"negative retries", func(c *Config) { c.APIRetries = -1 }, "PC_API_RETRIES"},
		{"negative retention", func(c *Config) { c.EventRetentionDays = -2 }, "PC_EVENT_RETENTION_DAYS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"aaaaaaaaaaaaaaaaAAAAAAAAAAAAAAAA", false},
		{"aaaaaaaaaaaaaaaAAAAAAAAAAAAAAAA1", true},
		{"abc-123-def-456-ghi-789-jkl-0000", true},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
