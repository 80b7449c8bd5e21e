// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/drimin/drimin-go/internal/service"
	"github.com/drimin/drimin-go/internal/store"
	"github.com/drimin/drimin-go/internal/testutil"
)

func TestAuthService_Login(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	queries := store.New(db)
	if _, err := queries.CreateAdmin(ctx, store.CreateAdminParams{
		ID:        "admin-1",
		Email:     "admin@example.com",
		Name:      "Administrator",
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}

	svc := service.NewAuthService(db)

	t.Run("known email", func(t *testing.T) {
		admin, err := svc.Login(ctx, "admin@example.com")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if admin.ID != "admin-1" {
			t.Errorf("admin.ID = %q, want admin-1", admin.ID)
		}

		// Login stamps last_login_at.
		stored, err := queries.GetAdminByID(ctx, "admin-1")
		if err != nil {
			t.Fatalf("GetAdminByID() error = %v", err)
		}
		if !stored.LastLoginAt.Valid {
			t.Error("last_login_at not set after login")
		}
	})

	t.Run("whitespace around email is ignored", func(t *testing.T) {
		if _, err := svc.Login(ctx, "  admin@example.com  "); err != nil {
			t.Errorf("Login() error = %v, want nil", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com")
		if !errors.Is(err, service.ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("empty email", func(t *testing.T) {
		_, err := svc.Login(ctx, "   ")
		if !errors.Is(err, service.ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})
}
