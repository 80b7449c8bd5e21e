// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a custom slog handler that integrates with the
// event log. It forwards logs at WARN level and above to the database-backed
// event log for auditing.
package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/drimin/drimin-go/internal/model"
	"github.com/drimin/drimin-go/internal/store"
)

// EventLogHandler is a slog.Handler that wraps another handler and also writes
// WARN and ERROR level logs to the event log database.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level // Minimum level to forward to the event log (default: WARN)
}

// NewEventLogHandler creates a new EventLogHandler that wraps the given handler.
// Logs at WARN level and above are written to both the wrapped handler and the
// event log.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
}

// NewEventLogHandlerWithLevel creates a new EventLogHandler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	// Always forward to the inner handler first
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.writeToEventLog(r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
	}
}

// writeToEventLog writes a log record to the event log database. A background
// context is used so the event survives request context cancellation.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	_ = h.queries.CreateEvent(context.Background(), store.CreateEventParams{
		Level:     slogLevelToEventLevel(r.Level),
		Category:  extractCategory(r),
		Message:   r.Message,
		Metadata:  extractMetadata(r),
		CreatedAt: r.Time,
	})
}

// slogLevelToEventLevel converts a slog.Level to an event log level.
func slogLevelToEventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// extractCategory looks for a "category" attribute or infers one from the
// message.
func extractCategory(r slog.Record) string {
	var category string

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false // Stop iteration
		}
		return true
	})

	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "logout") ||
		strings.Contains(msg, "auth") || strings.Contains(msg, "token") ||
		strings.Contains(msg, "account"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "content") || strings.Contains(msg, "section"):
		return model.EventCategoryContent
	case strings.Contains(msg, "waitlist") || strings.Contains(msg, "contact") ||
		strings.Contains(msg, "email") || strings.Contains(msg, "lead"):
		return model.EventCategoryLead
	default:
		return model.EventCategorySystem
	}
}

// extractMetadata collects all log attributes into a JSON string.
func extractMetadata(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{")
	first := true

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			return true // Skip category, already extracted
		}
		if !first {
			sb.WriteString(",")
		}
		first = false
		sb.WriteString(`"`)
		sb.WriteString(escapeJSON(a.Key))
		sb.WriteString(`":"`)
		sb.WriteString(escapeJSON(a.Value.String()))
		sb.WriteString(`"`)
		return true
	})

	sb.WriteString("}")
	return sb.String()
}

// escapeJSON escapes special characters in a string for JSON.
func escapeJSON(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
