// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the store gateways: validated read/write access
// to content sections and leads, with a small error taxonomy that handlers
// map onto HTTP statuses.
package service

import "errors"

var (
	// ErrValidation marks malformed input detected before any store access.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate marks a unique-constraint violation (waitlist email).
	ErrDuplicate = errors.New("already exists")

	// ErrInvalidCredentials marks a login attempt for an unknown admin email.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
