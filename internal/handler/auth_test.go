// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/drimin/drimin-go/internal/middleware"
	"github.com/drimin/drimin-go/internal/service"
	"github.com/drimin/drimin-go/internal/token"
)

const testSecret = "handler-test-secret-0123456789abcdef"

func TestAuthHandler_Login(t *testing.T) {
	db := testDB(t)
	seedAdmin(t, db, "admin@example.com")

	codec := token.New(testSecret)
	h := NewAuthHandler(service.NewAuthService(db), codec, nil, true)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, RouteAdmin+RouteLogin, strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		return rec
	}

	t.Run("known email sets cookie", func(t *testing.T) {
		rec := post(`{"email":"admin@example.com"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"success":true`) {
			t.Errorf("body = %s", rec.Body.String())
		}

		var cookie *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == middleware.AdminTokenCookie {
				cookie = c
			}
		}
		if cookie == nil {
			t.Fatal("admin-token cookie not set")
		}
		if !cookie.HttpOnly {
			t.Error("cookie not HTTP-only")
		}
		if cookie.Path != "/" {
			t.Errorf("cookie path = %q, want /", cookie.Path)
		}
		if cookie.MaxAge != 86400 {
			t.Errorf("cookie max-age = %d, want 86400", cookie.MaxAge)
		}
		if cookie.SameSite != http.SameSiteLaxMode {
			t.Errorf("cookie same-site = %v, want lax", cookie.SameSite)
		}
		// Dev mode: Secure off so plain-HTTP localhost works.
		if cookie.Secure {
			t.Error("cookie secure in development mode")
		}

		id, err := codec.Verify(cookie.Value)
		if err != nil {
			t.Fatalf("cookie does not verify: %v", err)
		}
		if id.Email != "admin@example.com" {
			t.Errorf("token email = %q", id.Email)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := post(`{"email":"nobody@example.com"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"Invalid credentials"}` {
			t.Errorf("body = %s", got)
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Error("cookie set on failed login")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := post(`not json`)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}

func TestAuthHandler_ProductionCookieIsSecure(t *testing.T) {
	db := testDB(t)
	seedAdmin(t, db, "admin@example.com")

	h := NewAuthHandler(service.NewAuthService(db), token.New(testSecret), nil, false)

	req := httptest.NewRequest(http.MethodPost, RouteAdmin+RouteLogin, strings.NewReader(`{"email":"admin@example.com"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	if !cookies[0].Secure {
		t.Error("production cookie not marked Secure")
	}
}

func TestAuthHandler_LockoutAfterRepeatedFailures(t *testing.T) {
	db := testDB(t)
	seedAdmin(t, db, "admin@example.com")

	protection := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: 3,
	})
	h := NewAuthHandler(service.NewAuthService(db), token.New(testSecret), protection, true)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, RouteAdmin+RouteLogin, strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		return rec
	}

	for i := 0; i < 3; i++ {
		if rec := post(`{"email":"intruder@example.com"}`); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want %d", i+1, rec.Code, http.StatusUnauthorized)
		}
	}

	if rec := post(`{"email":"intruder@example.com"}`); rec.Code != http.StatusTooManyRequests {
		t.Errorf("locked account status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	// Other accounts are unaffected.
	if rec := post(`{"email":"admin@example.com"}`); rec.Code != http.StatusOK {
		t.Errorf("unrelated account status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	db := testDB(t)
	h := NewAuthHandler(service.NewAuthService(db), token.New(testSecret), nil, true)

	req := httptest.NewRequest(http.MethodPost, RouteAdmin+RouteLogout, nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	if cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Errorf("cookie = %+v, want cleared", cookies[0])
	}
}

// Full round trip: login issues a cookie that unlocks the admin listing,
// and the listing stays closed without it.
func TestLoginThenListEmails(t *testing.T) {
	db := testDB(t)
	seedAdmin(t, db, "admin@example.com")

	codec := token.New(testSecret)
	authHandler := NewAuthHandler(service.NewAuthService(db), codec, nil, true)
	leadHandler := NewLeadHandler(service.NewLeadService(db))

	r := chi.NewRouter()
	r.Route(RouteAdmin, func(r chi.Router) {
		r.Post(RouteLogin, authHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(codec))
			r.Get(RouteEmails, leadHandler.Emails)
		})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	// Without a cookie the listing is a uniform 401.
	resp, err := http.Get(srv.URL + RouteAdmin + RouteEmails)
	if err != nil {
		t.Fatalf("GET emails: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	// Login with a missing email is rejected.
	resp, err = http.Post(srv.URL+RouteAdmin+RouteLogin, "application/json",
		strings.NewReader(`{"email":"nobody@example.com"}`))
	if err != nil {
		t.Fatalf("POST login: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	// Login with the seeded email succeeds and yields the cookie.
	resp, err = http.Post(srv.URL+RouteAdmin+RouteLogin, "application/json",
		strings.NewReader(`{"email":"admin@example.com"}`))
	if err != nil {
		t.Fatalf("POST login: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.AdminTokenCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("login did not set the admin-token cookie")
	}

	// With the cookie the listing opens.
	req, err := http.NewRequest(http.MethodGet, srv.URL+RouteAdmin+RouteEmails, nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.AddCookie(cookie)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET emails with cookie: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("authenticated status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}
