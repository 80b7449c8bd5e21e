// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	c := New("round-trip-test-secret")

	id := Identity{AdminID: "0b6f0a6e-1f4c-4b7e-9a1e-1d2f3a4b5c6d", Email: "admin@example.com"}
	raw, err := c.Issue(id)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if raw == "" {
		t.Fatal("Issue() returned empty token")
	}

	got, err := c.Verify(raw)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if got != id {
		t.Errorf("Verify() = %+v, want %+v", got, id)
	}
}

func TestVerify_Expired(t *testing.T) {
	c := New("expiry-test-secret")

	// Issue a token, then move the codec's clock past the validity window.
	raw, err := c.Issue(Identity{AdminID: "a1", Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	c.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	if _, err := c.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(expired) error = %v, want ErrInvalidToken", err)
	}
}

func TestVerify_WithinWindow(t *testing.T) {
	c := New("window-test-secret")

	raw, err := c.Issue(Identity{AdminID: "a1", Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	// Still valid 23 hours in.
	c.now = func() time.Time { return time.Now().Add(23 * time.Hour) }

	if _, err := c.Verify(raw); err != nil {
		t.Errorf("Verify() within window error = %v", err)
	}
}

func TestVerify_Rejections(t *testing.T) {
	c := New("rejection-test-secret")

	valid, err := c.Issue(Identity{AdminID: "a1", Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	other := New("a-different-secret-entirely")
	foreign, err := other.Issue(Identity{AdminID: "a1", Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	// Corrupt the signature segment of a valid token.
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"missing segments", "abc.def"},
		{"wrong secret", foreign},
		{"tampered signature", tampered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Verify(tt.raw); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify(%q) error = %v, want ErrInvalidToken", tt.raw, err)
			}
		})
	}
}

func TestNew_EmptySecretFallsBack(t *testing.T) {
	c := New("")
	raw, err := c.Issue(Identity{AdminID: "a1", Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	// The fallback secret is fixed, so a second codec can verify.
	if _, err := New(DefaultSecret).Verify(raw); err != nil {
		t.Errorf("Verify() with explicit default secret error = %v", err)
	}
}
