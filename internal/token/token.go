// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

// Package token implements the signed admin session token: a self-contained
// HS256 credential carrying the admin identity, valid for 24 hours. There is
// no server-side session table and no revocation list; a token dies only by
// expiry or cookie deletion.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSecret is the fallback signing secret used when none is configured.
// It exists to match the observed deployment behavior and must never be
// relied on in production; config.Load refuses it outside development.
const DefaultSecret = "your-secret-key"

// TTL is the validity window of an issued token.
const TTL = 24 * time.Hour

// ErrInvalidToken is returned by Verify for every rejection: missing,
// malformed, bad signature, or expired. Callers must not be able to tell
// the failure modes apart.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated admin identity carried in a token.
type Identity struct {
	AdminID string
	Email   string
}

type claims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// Codec issues and verifies session tokens with a shared secret.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// New creates a Codec signing with the given secret. An empty secret falls
// back to DefaultSecret.
func New(secret string) *Codec {
	if secret == "" {
		secret = DefaultSecret
	}
	return &Codec{secret: []byte(secret), now: time.Now}
}

// Issue produces a signed token for the identity, valid for TTL from now.
func (c *Codec) Issue(id Identity) (string, error) {
	now := c.now()
	cl := claims{
		AdminID: id.AdminID,
		Email:   id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
// All failures collapse to ErrInvalidToken.
func (c *Codec) Verify(raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(raw, &claims{},
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	cl, ok := parsed.Claims.(*claims)
	if !ok || cl.AdminID == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{AdminID: cl.AdminID, Email: cl.Email}, nil
}
