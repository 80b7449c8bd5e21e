// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Default admin identity created when seeding is enabled.
const (
	DefaultAdminEmail = "admin@example.com"
	DefaultAdminName  = "Administrator"
)

// Seed creates initial data in the database. It is a no-op unless enabled,
// and skips seeding when the default admin already exists.
func Seed(ctx context.Context, db *sql.DB, enabled bool) error {
	if !enabled {
		return nil
	}

	// Check-then-create runs in one transaction so two instances starting
	// at once cannot both insert the default admin.
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := New(db).WithTx(tx)

	_, err = queries.GetAdminByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	admin, err := queries.CreateAdmin(ctx, CreateAdminParams{
		ID:        uuid.NewString(),
		Email:     DefaultAdminEmail,
		Name:      DefaultAdminName,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("created default admin user", "id", admin.ID, "email", admin.Email)
	return nil
}
