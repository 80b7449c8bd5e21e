// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
)

// CORSConfig holds CORS settings for the decoupled marketing frontend.
type CORSConfig struct {
	AllowedOrigins []string
	// AllowCredentials must be true for cookie-based admin auth.
	AllowCredentials bool
	// MaxAge is the preflight cache duration in seconds.
	MaxAge int
}

// DefaultCORSConfig returns CORS settings for the given origins.
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		MaxAge:           3600,
	}
}

// CORS returns a middleware that adds CORS headers for allowed origins and
// answers preflight requests. Requests without an Origin header pass through
// untouched.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")

				if cfg.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}

				// Handle preflight requests
				if r.Method == http.MethodOptions {
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")

					maxAge := cfg.MaxAge
					if maxAge <= 0 {
						maxAge = 3600
					}
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(maxAge))

					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
