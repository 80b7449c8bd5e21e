// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/drimin.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/drimin.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.EventRetentionDays != 90 {
		t.Errorf("EventRetentionDays = %d, want 90", cfg.EventRetentionDays)
	}
	// Development falls back to the built-in secret when none is set.
	if cfg.JWTSecret != FallbackJWTSecret {
		t.Errorf("JWTSecret = %q, want fallback", cfg.JWTSecret)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "DRIMIN_JWT_SECRET", "Custom-secret-key-32-bytes-long!")
	setEnv(t, "DRIMIN_DB_PATH", "/custom/path.db")
	setEnv(t, "DRIMIN_SERVER_HOST", "0.0.0.0")
	setEnv(t, "DRIMIN_SERVER_PORT", "3000")
	setEnv(t, "DRIMIN_ENV", "production")
	setEnv(t, "DRIMIN_CORS_ORIGINS", "https://drimin.com,https://www.drimin.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for production env")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://drimin.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "DRIMIN_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded without a secret in production")
	}
}

func TestLoad_ProductionRejectsWeakSecrets(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"fallback literal", FallbackJWTSecret},
		{"too short", "short-secret"},
		{"known default", "change-me-to-32-byte-secret-key!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "DRIMIN_ENV", "production")
			setEnv(t, "DRIMIN_JWT_SECRET", tt.secret)

			if _, err := Load(); err == nil {
				t.Errorf("Load() accepted weak secret %q in production", tt.secret)
			}
		})
	}
}

func TestLoad_DevelopmentAcceptsShortSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "DRIMIN_JWT_SECRET", "dev-only")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.JWTSecret != "dev-only" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaa", false},
		{"Aa1-secret-With-Everything!", true},
		{"lowercase-and-UPPER", false},
		{"Mixed1Case2With3Digits", true},
	}

	for _, tt := range tests {
		t.Run(tt.secret, func(t *testing.T) {
			if got := hasMinimumEntropy(tt.secret); got != tt.want {
				t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Config{ServerHost: "localhost", ServerPort: 8080}
	if got := cfg.ServerAddr(); !strings.Contains(got, ":8080") {
		t.Errorf("ServerAddr() = %q", got)
	}
}
