// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// FallbackJWTSecret is the fixed signing secret used when DRIMIN_JWT_SECRET
// is unset. Allowed only in development.
const FallbackJWTSecret = "your-secret-key"

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	FallbackJWTSecret,
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// MinJWTSecretLength is the minimum required secret length in production.
const MinJWTSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"DRIMIN_DB_PATH" envDefault:"./data/drimin.db"`
	JWTSecret  string `env:"DRIMIN_JWT_SECRET"`
	ServerHost string `env:"DRIMIN_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"DRIMIN_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"DRIMIN_ENV" envDefault:"development"`
	LogLevel   string `env:"DRIMIN_LOG_LEVEL" envDefault:"info"`

	// CORSOrigins lists frontend origins allowed to call the API with
	// credentials. Empty disables CORS handling entirely.
	CORSOrigins []string `env:"DRIMIN_CORS_ORIGINS" envSeparator:","`

	// Seeding configuration
	DoSeed bool `env:"DRIMIN_DO_SEED" envDefault:"false"` // Enable database seeding

	// EventRetentionDays controls how long event log rows are kept.
	EventRetentionDays int `env:"DRIMIN_EVENT_RETENTION_DAYS" envDefault:"90"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("DRIMIN_JWT_SECRET must be set outside development; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
		slog.Warn("DRIMIN_JWT_SECRET not set, using built-in development fallback")
		cfg.JWTSecret = FallbackJWTSecret
		return cfg, nil
	}

	if !cfg.IsDevelopment() {
		// Production secrets must be long enough for HMAC-SHA256 and not a
		// known default.
		if len(cfg.JWTSecret) < MinJWTSecretLength {
			return nil, fmt.Errorf("DRIMIN_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
				"generate a secure secret with: openssl rand -base64 32",
				MinJWTSecretLength, len(cfg.JWTSecret))
		}
		for _, weak := range knownWeakSecrets {
			if cfg.JWTSecret == weak {
				return nil, fmt.Errorf("DRIMIN_JWT_SECRET is a known default value and must not be used; " +
					"generate a secure secret with: openssl rand -base64 32")
			}
		}
	}

	if !hasMinimumEntropy(cfg.JWTSecret) {
		slog.Warn("DRIMIN_JWT_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
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
