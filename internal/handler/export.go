// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/drimin/drimin-go/internal/service"
	"github.com/drimin/drimin-go/internal/transfer"
)

// ExportHandler handles the admin CSV lead export.
type ExportHandler struct {
	leads  *service.LeadService
	events *slog.Logger
}

// NewExportHandler creates a new export handler.
func NewExportHandler(leads *service.LeadService) *ExportHandler {
	return &ExportHandler{leads: leads, events: slog.Default()}
}

// Export handles GET /api/admin/emails/export, streaming both lead lists as
// a single CSV attachment.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	waitlist, err := h.leads.ListWaitlist(r.Context())
	if err != nil {
		h.events.Error("failed to list waitlist emails for export", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to export emails")
		return
	}
	contacts, err := h.leads.ListContacts(r.Context())
	if err != nil {
		h.events.Error("failed to list contact submissions for export", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to export emails")
		return
	}

	out, err := transfer.ExportLeadsCSV(waitlist, contacts)
	if err != nil {
		h.events.Error("failed to render lead export", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to export emails")
		return
	}

	filename := fmt.Sprintf("drimin-emails-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}
