// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db, startTime: time.Now()}
}

// Health handles GET /healthz. Reports "ok" when the database answers a ping,
// 503 otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}
