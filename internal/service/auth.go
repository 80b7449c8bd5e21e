// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/drimin/drimin-go/internal/model"
	"github.com/drimin/drimin-go/internal/store"
)

// AuthService authenticates admin users. Access control is membership-based:
// an email either belongs to an admin_users row or it does not. There is no
// password column; the row itself is the credential.
type AuthService struct {
	queries *store.Queries
}

// NewAuthService creates an AuthService over the given database.
func NewAuthService(db *sql.DB) *AuthService {
	return &AuthService{queries: store.New(db)}
}

// Login resolves an email to an admin account. An unknown email returns
// ErrInvalidCredentials; the caller must not leak whether the email exists
// versus any other failure detail.
func (s *AuthService) Login(ctx context.Context, email string) (model.AdminUser, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return model.AdminUser{}, fmt.Errorf("%w: email required", ErrInvalidCredentials)
	}

	admin, err := s.queries.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.AdminUser{}, ErrInvalidCredentials
		}
		return model.AdminUser{}, fmt.Errorf("looking up admin: %w", err)
	}

	// Best effort; a failed timestamp update must not fail the login.
	if err := s.queries.UpdateAdminLastLogin(ctx, store.UpdateAdminLastLoginParams{
		LastLoginAt: sql.NullTime{Time: time.Now(), Valid: true},
		ID:          admin.ID,
	}); err != nil {
		slog.Warn("failed to update last login", "admin_id", admin.ID, "error", err)
	}

	return admin, nil
}

// GetByID fetches an admin by ID. A missing row returns ErrInvalidCredentials
// so a token for a since-deleted admin fails the same way as a bad login.
func (s *AuthService) GetByID(ctx context.Context, id string) (model.AdminUser, error) {
	admin, err := s.queries.GetAdminByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.AdminUser{}, ErrInvalidCredentials
		}
		return model.AdminUser{}, fmt.Errorf("looking up admin by id: %w", err)
	}
	return admin, nil
}
