// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/drimin/drimin-go/internal/store"
)

// testDB creates an in-memory SQLite database with the application tables.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE admin_users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_login_at DATETIME
		);
		CREATE INDEX idx_admin_users_email ON admin_users(email);

		CREATE TABLE content_sections (
			id TEXT PRIMARY KEY,
			page_name TEXT NOT NULL,
			section_name TEXT NOT NULL,
			content_json TEXT NOT NULL DEFAULT '{}',
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (page_name, section_name)
		);
		CREATE INDEX idx_content_sections_page ON content_sections(page_name);

		CREATE TABLE waitlist_emails (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			source_page TEXT NOT NULL DEFAULT 'waitlist',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_waitlist_emails_created_at ON waitlist_emails(created_at);

		CREATE TABLE contact_submissions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_contact_submissions_created_at ON contact_submissions(created_at);

		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL DEFAULT 'info',
			category TEXT NOT NULL DEFAULT 'system',
			message TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// seedAdmin inserts an admin user and returns its ID.
func seedAdmin(t *testing.T, db *sql.DB, email string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := store.New(db).CreateAdmin(context.Background(), store.CreateAdminParams{
		ID:        id,
		Email:     email,
		Name:      "Test Admin",
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	return id
}
