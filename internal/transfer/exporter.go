// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer renders leads into delimited text for download by the
// back-office.
package transfer

import (
	"encoding/csv"
	"strings"
	"time"

	"github.com/drimin/drimin-go/internal/model"
)

// exportHeader is the column layout of the combined lead export.
var exportHeader = []string{"Type", "Email", "Name", "Message", "Date"}

// Row type markers in the first export column.
const (
	RowTypeWaitlist = "Waitlist"
	RowTypeContact  = "Contact"
)

// ExportLeadsCSV renders both lead lists into a single CSV document:
// waitlist rows first, then contact rows, each preceded by nothing but the
// shared header. Quoting follows RFC 4180, so fields containing quotes or
// commas survive a round trip through any standard CSV reader.
func ExportLeadsCSV(waitlist []model.WaitlistEmail, contacts []model.ContactSubmission) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return "", err
	}

	for _, entry := range waitlist {
		record := []string{
			RowTypeWaitlist,
			entry.Email,
			"",
			"",
			entry.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	for _, submission := range contacts {
		record := []string{
			RowTypeContact,
			submission.Email,
			submission.Name,
			submission.Message,
			submission.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
