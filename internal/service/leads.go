// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/drimin/drimin-go/internal/model"
	"github.com/drimin/drimin-go/internal/store"
)

// LeadService is the gateway to the append-only lead tables: waitlist
// signups and contact submissions.
type LeadService struct {
	queries *store.Queries
}

// NewLeadService creates a LeadService over the given database.
func NewLeadService(db *sql.DB) *LeadService {
	return &LeadService{queries: store.New(db)}
}

// AddWaitlist appends a waitlist signup. The email must contain an "@";
// a repeated email surfaces as ErrDuplicate. sourcePage defaults to
// "waitlist" when empty.
func (s *LeadService) AddWaitlist(ctx context.Context, email, sourcePage string) (model.WaitlistEmail, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return model.WaitlistEmail{}, fmt.Errorf("%w: valid email required", ErrValidation)
	}
	sourcePage = strings.TrimSpace(sourcePage)
	if sourcePage == "" {
		sourcePage = model.SourcePageWaitlist
	}

	entry, err := s.queries.CreateWaitlistEmail(ctx, store.CreateWaitlistEmailParams{
		ID:         uuid.NewString(),
		Email:      email,
		SourcePage: sourcePage,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return model.WaitlistEmail{}, fmt.Errorf("%w: email already registered", ErrDuplicate)
		}
		return model.WaitlistEmail{}, fmt.Errorf("adding waitlist email: %w", err)
	}
	return entry, nil
}

// AddContact appends a contact form submission. All three fields are
// required; there is no duplicate check.
func (s *LeadService) AddContact(ctx context.Context, name, email, message string) (model.ContactSubmission, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return model.ContactSubmission{}, fmt.Errorf("%w: all fields required", ErrValidation)
	}

	submission, err := s.queries.CreateContactSubmission(ctx, store.CreateContactSubmissionParams{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return model.ContactSubmission{}, fmt.Errorf("adding contact submission: %w", err)
	}
	return submission, nil
}

// ListWaitlist returns all waitlist signups, newest first.
func (s *LeadService) ListWaitlist(ctx context.Context) ([]model.WaitlistEmail, error) {
	emails, err := s.queries.ListWaitlistEmails(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing waitlist emails: %w", err)
	}
	return emails, nil
}

// ListContacts returns all contact submissions, newest first.
func (s *LeadService) ListContacts(ctx context.Context) ([]model.ContactSubmission, error) {
	contacts, err := s.queries.ListContactSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing contact submissions: %w", err)
	}
	return contacts, nil
}
