// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteHealthz is the health check route.
	RouteHealthz = "/healthz"

	// RouteWaitlist is the public waitlist signup route.
	RouteWaitlist = "/api/waitlist"
	// RouteContact is the public contact form route.
	RouteContact = "/api/contact"

	// RouteAdmin is the admin API route prefix.
	RouteAdmin = "/api/admin"
	// RouteLogin is the admin login route, relative to RouteAdmin.
	RouteLogin = "/login"
	// RouteLogout is the admin logout route, relative to RouteAdmin.
	RouteLogout = "/logout"
	// RouteContent is the content sections route, relative to RouteAdmin.
	RouteContent = "/content"
	// RouteEmails is the lead listing route, relative to RouteAdmin.
	RouteEmails = "/emails"
	// RouteEmailsExport is the CSV export route, relative to RouteAdmin.
	RouteEmailsExport = "/emails/export"
)
