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

// ContentHandler handles the admin content section API.
type ContentHandler struct {
	content *service.ContentService
	events  *slog.Logger
}

// NewContentHandler creates a new content handler.
func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content, events: slog.Default()}
}

// List handles GET /api/admin/content?page=&section=.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	sections, err := h.content.List(r.Context(), service.ContentFilter{
		Page:    r.URL.Query().Get("page"),
		Section: r.URL.Query().Get("section"),
	})
	if err != nil {
		h.events.Error("failed to list content sections", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch content")
		return
	}

	if sections == nil {
		sections = []model.ContentSection{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": sections})
}

type upsertContentRequest struct {
	PageName    string           `json:"page_name"`
	SectionName string           `json:"section_name"`
	Content     model.ContentMap `json:"content_json"`
}

// Upsert handles PUT /api/admin/content. The section payload is replaced
// wholesale; there is no partial merge.
func (h *ContentHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	section, err := h.content.Upsert(r.Context(), req.PageName, req.SectionName, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeJSONError(w, http.StatusBadRequest, "Page name and section name required")
			return
		}
		h.events.Error("failed to upsert content section",
			"page", req.PageName, "section", req.SectionName, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to update content")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": section})
}
