// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "strings"

// IsUniqueViolation reports whether err is a SQLite unique-constraint
// violation. Both SQLite drivers used in this project report the violation
// in the error message with the same prefix.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
