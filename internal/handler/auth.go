// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/drimin/drimin-go/internal/middleware"
	"github.com/drimin/drimin-go/internal/model"
	"github.com/drimin/drimin-go/internal/service"
	"github.com/drimin/drimin-go/internal/token"
)

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	auth       *service.AuthService
	codec      *token.Codec
	protection *middleware.LoginProtection
	isDev      bool
	events     *slog.Logger
}

// NewAuthHandler creates a new auth handler. protection may be nil, which
// disables account lockout (used in tests).
func NewAuthHandler(auth *service.AuthService, codec *token.Codec, protection *middleware.LoginProtection, isDev bool) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		codec:      codec,
		protection: protection,
		isDev:      isDev,
		events:     slog.Default(),
	}
}

type loginRequest struct {
	Email string `json:"email"`
}

// Login handles POST /api/admin/login. A known email gets a signed session
// token in an HTTP-only cookie; everything else is a uniform 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if h.protection != nil {
		if locked, remaining := h.protection.IsAccountLocked(req.Email); locked {
			h.events.Warn("login attempt on locked account",
				"email", req.Email, "remaining", remaining.Round(time.Second))
			writeJSONError(w, http.StatusTooManyRequests, "Too many failed attempts")
			return
		}
	}

	admin, err := h.auth.Login(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.protection != nil {
				h.protection.RecordFailedAttempt(req.Email)
			}
			h.events.Warn("admin login rejected", "email", req.Email)
			writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.events.Error("admin login failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	tok, err := h.codec.Issue(token.Identity{AdminID: admin.ID, Email: admin.Email})
	if err != nil {
		h.events.Error("failed to issue session token", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if h.protection != nil {
		h.protection.RecordSuccessfulLogin(req.Email)
	}

	http.SetCookie(w, h.sessionCookie(tok, int(token.TTL.Seconds())))
	h.events.Info("admin logged in", "admin_id", admin.ID, "email", admin.Email)
	writeJSONSuccess(w, http.StatusOK, nil)
}

// Logout handles POST /api/admin/logout by expiring the session cookie.
// The token itself stays valid until expiry; only the cookie is cleared.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id := middleware.GetIdentity(r); id != nil {
		h.events.Info("admin logged out", "admin_id", id.AdminID)
	}
	http.SetCookie(w, h.sessionCookie("", -1))
	writeJSONSuccess(w, http.StatusOK, nil)
}

// Me handles GET /api/admin/me, returning the authenticated identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r)
	if id == nil {
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	admin, err := h.auth.GetByID(r.Context(), id.AdminID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch admin")
		return
	}
	writeJSON(w, http.StatusOK, map[string]model.AdminUser{"data": admin})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.AdminTokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   !h.isDev,
		SameSite: http.SameSiteLaxMode,
	}
}
