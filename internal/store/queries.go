// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/drimin/drimin-go/internal/model"
)

// DBTX is the subset of *sql.DB / *sql.Tx used by Queries.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries provides typed access to the database.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given database handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// -----------------------------------------------------------------------------
// Admin users
// -----------------------------------------------------------------------------

const getAdminByEmail = `
SELECT id, email, name, created_at, last_login_at
FROM admin_users
WHERE email = ?
`

// GetAdminByEmail returns the admin user with the given email.
// Returns sql.ErrNoRows when no admin matches.
func (q *Queries) GetAdminByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	row := q.db.QueryRowContext(ctx, getAdminByEmail, email)
	var a model.AdminUser
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.CreatedAt, &a.LastLoginAt)
	return a, err
}

const getAdminByID = `
SELECT id, email, name, created_at, last_login_at
FROM admin_users
WHERE id = ?
`

// GetAdminByID returns the admin user with the given ID.
func (q *Queries) GetAdminByID(ctx context.Context, id string) (model.AdminUser, error) {
	row := q.db.QueryRowContext(ctx, getAdminByID, id)
	var a model.AdminUser
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.CreatedAt, &a.LastLoginAt)
	return a, err
}

// CreateAdminParams holds parameters for CreateAdmin.
type CreateAdminParams struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

const createAdmin = `
INSERT INTO admin_users (id, email, name, created_at)
VALUES (?, ?, ?, ?)
`

// CreateAdmin inserts a new admin user.
func (q *Queries) CreateAdmin(ctx context.Context, arg CreateAdminParams) (model.AdminUser, error) {
	if _, err := q.db.ExecContext(ctx, createAdmin, arg.ID, arg.Email, arg.Name, arg.CreatedAt); err != nil {
		return model.AdminUser{}, err
	}
	return q.GetAdminByID(ctx, arg.ID)
}

// UpdateAdminLastLoginParams holds parameters for UpdateAdminLastLogin.
type UpdateAdminLastLoginParams struct {
	LastLoginAt sql.NullTime
	ID          string
}

const updateAdminLastLogin = `
UPDATE admin_users SET last_login_at = ? WHERE id = ?
`

// UpdateAdminLastLogin records the time of the admin's latest login.
func (q *Queries) UpdateAdminLastLogin(ctx context.Context, arg UpdateAdminLastLoginParams) error {
	_, err := q.db.ExecContext(ctx, updateAdminLastLogin, arg.LastLoginAt, arg.ID)
	return err
}

// -----------------------------------------------------------------------------
// Content sections
// -----------------------------------------------------------------------------

// ListContentSectionsParams holds the optional filter for ListContentSections.
// Empty fields match everything.
type ListContentSectionsParams struct {
	PageName    string
	SectionName string
}

const listContentSections = `
SELECT id, page_name, section_name, content_json, updated_at
FROM content_sections
WHERE (? = '' OR page_name = ?)
  AND (? = '' OR section_name = ?)
ORDER BY page_name ASC, section_name ASC
`

// ListContentSections returns content sections matching the optional filter,
// ordered by page name ascending.
func (q *Queries) ListContentSections(ctx context.Context, arg ListContentSectionsParams) ([]model.ContentSection, error) {
	rows, err := q.db.QueryContext(ctx, listContentSections,
		arg.PageName, arg.PageName, arg.SectionName, arg.SectionName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.ContentSection
	for rows.Next() {
		var s model.ContentSection
		if err := rows.Scan(&s.ID, &s.PageName, &s.SectionName, &s.Content, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// GetContentSectionParams identifies a content section by its natural key.
type GetContentSectionParams struct {
	PageName    string
	SectionName string
}

const getContentSection = `
SELECT id, page_name, section_name, content_json, updated_at
FROM content_sections
WHERE page_name = ? AND section_name = ?
`

// GetContentSection returns the section with the given (page, section) key.
func (q *Queries) GetContentSection(ctx context.Context, arg GetContentSectionParams) (model.ContentSection, error) {
	row := q.db.QueryRowContext(ctx, getContentSection, arg.PageName, arg.SectionName)
	var s model.ContentSection
	err := row.Scan(&s.ID, &s.PageName, &s.SectionName, &s.Content, &s.UpdatedAt)
	return s, err
}

// UpsertContentSectionParams holds parameters for UpsertContentSection.
type UpsertContentSectionParams struct {
	ID          string
	PageName    string
	SectionName string
	Content     model.ContentMap
	UpdatedAt   time.Time
}

const upsertContentSection = `
INSERT INTO content_sections (id, page_name, section_name, content_json, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (page_name, section_name) DO UPDATE SET
    content_json = excluded.content_json,
    updated_at = excluded.updated_at
`

// UpsertContentSection inserts or wholesale-replaces the section with the
// given natural key and returns the stored row.
func (q *Queries) UpsertContentSection(ctx context.Context, arg UpsertContentSectionParams) (model.ContentSection, error) {
	_, err := q.db.ExecContext(ctx, upsertContentSection,
		arg.ID, arg.PageName, arg.SectionName, arg.Content, arg.UpdatedAt)
	if err != nil {
		return model.ContentSection{}, err
	}
	return q.GetContentSection(ctx, GetContentSectionParams{
		PageName:    arg.PageName,
		SectionName: arg.SectionName,
	})
}

// -----------------------------------------------------------------------------
// Leads
// -----------------------------------------------------------------------------

// CreateWaitlistEmailParams holds parameters for CreateWaitlistEmail.
type CreateWaitlistEmailParams struct {
	ID         string
	Email      string
	SourcePage string
	CreatedAt  time.Time
}

const createWaitlistEmail = `
INSERT INTO waitlist_emails (id, email, source_page, created_at)
VALUES (?, ?, ?, ?)
`

const getWaitlistEmailByID = `
SELECT id, email, source_page, created_at
FROM waitlist_emails
WHERE id = ?
`

// CreateWaitlistEmail appends a waitlist signup. The unique constraint on
// email surfaces duplicates to the caller.
func (q *Queries) CreateWaitlistEmail(ctx context.Context, arg CreateWaitlistEmailParams) (model.WaitlistEmail, error) {
	if _, err := q.db.ExecContext(ctx, createWaitlistEmail,
		arg.ID, arg.Email, arg.SourcePage, arg.CreatedAt); err != nil {
		return model.WaitlistEmail{}, err
	}
	row := q.db.QueryRowContext(ctx, getWaitlistEmailByID, arg.ID)
	var w model.WaitlistEmail
	err := row.Scan(&w.ID, &w.Email, &w.SourcePage, &w.CreatedAt)
	return w, err
}

const listWaitlistEmails = `
SELECT id, email, source_page, created_at
FROM waitlist_emails
ORDER BY created_at DESC
`

// ListWaitlistEmails returns all waitlist signups, newest first.
func (q *Queries) ListWaitlistEmails(ctx context.Context) ([]model.WaitlistEmail, error) {
	rows, err := q.db.QueryContext(ctx, listWaitlistEmails)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []model.WaitlistEmail
	for rows.Next() {
		var w model.WaitlistEmail
		if err := rows.Scan(&w.ID, &w.Email, &w.SourcePage, &w.CreatedAt); err != nil {
			return nil, err
		}
		emails = append(emails, w)
	}
	return emails, rows.Err()
}

// CreateContactSubmissionParams holds parameters for CreateContactSubmission.
type CreateContactSubmissionParams struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

const createContactSubmission = `
INSERT INTO contact_submissions (id, name, email, message, created_at)
VALUES (?, ?, ?, ?, ?)
`

const getContactSubmissionByID = `
SELECT id, name, email, message, created_at
FROM contact_submissions
WHERE id = ?
`

// CreateContactSubmission appends a contact form submission.
func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (model.ContactSubmission, error) {
	if _, err := q.db.ExecContext(ctx, createContactSubmission,
		arg.ID, arg.Name, arg.Email, arg.Message, arg.CreatedAt); err != nil {
		return model.ContactSubmission{}, err
	}
	row := q.db.QueryRowContext(ctx, getContactSubmissionByID, arg.ID)
	var c model.ContactSubmission
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt)
	return c, err
}

const listContactSubmissions = `
SELECT id, name, email, message, created_at
FROM contact_submissions
ORDER BY created_at DESC
`

// ListContactSubmissions returns all contact submissions, newest first.
func (q *Queries) ListContactSubmissions(ctx context.Context) ([]model.ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, listContactSubmissions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []model.ContactSubmission
	for rows.Next() {
		var c model.ContactSubmission
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// -----------------------------------------------------------------------------
// Events
// -----------------------------------------------------------------------------

// CreateEventParams holds parameters for CreateEvent.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

const createEvent = `
INSERT INTO events (level, category, message, metadata, created_at)
VALUES (?, ?, ?, ?, ?)
`

// CreateEvent appends an event log entry.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	_, err := q.db.ExecContext(ctx, createEvent,
		arg.Level, arg.Category, arg.Message, arg.Metadata, arg.CreatedAt)
	return err
}

const listRecentEvents = `
SELECT id, level, category, message, metadata, created_at
FROM events
ORDER BY created_at DESC, id DESC
LIMIT ?
`

// ListRecentEvents returns the most recent event log entries.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, listRecentEvents, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

const deleteEventsBefore = `
DELETE FROM events WHERE created_at < ?
`

// DeleteEventsBefore removes event log entries older than the cutoff and
// returns the number of rows deleted.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteEventsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
