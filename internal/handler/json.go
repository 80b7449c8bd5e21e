// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP surface: public lead capture and the
// cookie-authenticated admin JSON API.
package handler

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes a JSON error response. The message is the complete
// client-visible detail; internal errors never reach this function verbatim.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": message,
	})
}

// writeJSONSuccess writes a JSON success response with "success": true merged in.
func writeJSONSuccess(w http.ResponseWriter, statusCode int, data map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data == nil {
		data = make(map[string]any)
	}
	data["success"] = true
	_ = json.NewEncoder(w).Encode(data)
}

// writeJSON writes an arbitrary JSON payload.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
