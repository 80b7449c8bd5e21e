// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// SourcePageWaitlist is the default source page recorded for waitlist signups.
const SourcePageWaitlist = "waitlist"

// WaitlistEmail is an append-only waitlist signup. Email is unique.
type WaitlistEmail struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	SourcePage string    `json:"source_page"`
	CreatedAt  time.Time `json:"created_at"`
}

// ContactSubmission is an append-only contact form submission.
type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
