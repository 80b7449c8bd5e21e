// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/drimin/drimin-go/internal/model"
	"github.com/drimin/drimin-go/internal/service"
)

// LeadHandler handles public lead capture and the admin lead listing.
type LeadHandler struct {
	leads  *service.LeadService
	events *slog.Logger
}

// NewLeadHandler creates a new lead handler.
func NewLeadHandler(leads *service.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads, events: slog.Default()}
}

type waitlistRequest struct {
	Email      string `json:"email"`
	SourcePage string `json:"source_page"`
}

// Waitlist handles POST /api/waitlist.
func (h *LeadHandler) Waitlist(w http.ResponseWriter, r *http.Request) {
	var req waitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Valid email required")
		return
	}

	entry, err := h.leads.AddWaitlist(r.Context(), req.Email, req.SourcePage)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeJSONError(w, http.StatusBadRequest, "Valid email required")
		case errors.Is(err, service.ErrDuplicate):
			writeJSONError(w, http.StatusConflict, "Email already registered")
		default:
			h.events.Error("failed to add waitlist email", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to add email")
		}
		return
	}

	h.events.Info("waitlist signup", "email", entry.Email, "source_page", entry.SourcePage)
	writeJSONSuccess(w, http.StatusOK, map[string]any{"data": entry})
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Contact handles POST /api/contact.
func (h *LeadHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "All fields required")
		return
	}

	submission, err := h.leads.AddContact(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeJSONError(w, http.StatusBadRequest, "All fields required")
			return
		}
		h.events.Error("failed to add contact submission", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to submit contact form")
		return
	}

	h.events.Info("contact form submitted", "email", submission.Email)
	writeJSONSuccess(w, http.StatusOK, map[string]any{"data": submission})
}

// Emails handles GET /api/admin/emails, returning both lead lists.
func (h *LeadHandler) Emails(w http.ResponseWriter, r *http.Request) {
	waitlist, err := h.leads.ListWaitlist(r.Context())
	if err != nil {
		h.events.Error("failed to list waitlist emails", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch emails")
		return
	}
	contacts, err := h.leads.ListContacts(r.Context())
	if err != nil {
		h.events.Error("failed to list contact submissions", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch emails")
		return
	}

	if waitlist == nil {
		waitlist = []model.WaitlistEmail{}
	}
	if contacts == nil {
		contacts = []model.ContactSubmission{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"waitlist": waitlist,
		"contacts": contacts,
	})
}
