// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// security headers, CORS, CSRF, timeouts, and login protection.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/drimin/drimin-go/internal/token"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyIdentity carries the authenticated admin identity.
const ContextKeyIdentity ContextKey = "admin_identity"

// AdminTokenCookie is the name of the session token cookie.
const AdminTokenCookie = "admin-token"

// RequireAdmin creates middleware that authenticates the admin session
// cookie. Every failure mode (no cookie, malformed token, bad signature,
// expired token) produces the identical 401 response so that callers cannot
// probe the auth internals.
func RequireAdmin(codec *token.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AdminTokenCookie)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			identity, err := codec.Verify(cookie.Value)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated admin identity from the request
// context. Returns nil outside RequireAdmin-protected routes.
func GetIdentity(r *http.Request) *token.Identity {
	identity, ok := r.Context().Value(ContextKeyIdentity).(token.Identity)
	if !ok {
		return nil
	}
	return &identity
}

// writeUnauthorized writes the uniform 401 response body used for every
// authentication failure.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": "Unauthorized",
	})
}
