// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including AdminUser, ContentSection, and lead structures.
package model

import (
	"database/sql"
	"time"
)

// AdminUser represents a back-office administrator.
// Admin accounts are seeded out-of-band; this system never creates them
// through its public surface.
type AdminUser struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	CreatedAt   time.Time    `json:"created_at"`
	LastLoginAt sql.NullTime `json:"last_login_at,omitempty"`
}
