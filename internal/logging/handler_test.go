package logging

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/drimin/drimin-go/internal/model"
	"github.com/drimin/drimin-go/internal/store"
	"github.com/drimin/drimin-go/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func TestEventLogHandler_Handle_ErrorLevel(t *testing.T) {
	db := testutil.TestDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Error("database connection failed", "path", "/data/drimin.db")

	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Level != model.EventLevelError {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelError)
	}
	if events[0].Message != "database connection failed" {
		t.Errorf("Message = %q", events[0].Message)
	}
	if !strings.Contains(events[0].Metadata, `"path":"/data/drimin.db"`) {
		t.Errorf("Metadata = %q, missing path attribute", events[0].Metadata)
	}
}

func TestEventLogHandler_Handle_InfoNotPersisted(t *testing.T) {
	db := testutil.TestDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Info("server started", "addr", ":8080")

	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected 0 events, got %d", len(events))
	}
}

func TestEventLogHandler_CustomLevel(t *testing.T) {
	db := testutil.TestDB(t)

	// At Error level, warnings stay out of the event log.
	logger := slog.New(NewEventLogHandlerWithLevel(discardHandler{}, db, slog.LevelError))
	logger.Warn("disk usage high", "percent", 91)
	logger.Error("disk full", "path", "/data")

	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Message != "disk full" {
		t.Errorf("Message = %q, want the error entry", events[0].Message)
	}
}

func TestEventLogHandler_ExplicitCategory(t *testing.T) {
	db := testutil.TestDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Warn("suspicious request", "category", model.EventCategoryLead)

	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Category != model.EventCategoryLead {
		t.Errorf("Category = %q, want %q", events[0].Category, model.EventCategoryLead)
	}
	// The category attribute is folded into the column, not the metadata.
	if strings.Contains(events[0].Metadata, "category") {
		t.Errorf("Metadata = %q, category should be extracted", events[0].Metadata)
	}
}

func TestEventLogHandler_InferredCategory(t *testing.T) {
	db := testutil.TestDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Warn("admin login rejected", "email", "x@example.com")

	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Category != model.EventCategoryAuth {
		t.Errorf("Category = %q, want %q", events[0].Category, model.EventCategoryAuth)
	}
}

func TestEscapeJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `plain`},
		{`say "hi"`, `say \"hi\"`},
		{"line\nbreak", `line\nbreak`},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		if got := escapeJSON(tt.in); got != tt.want {
			t.Errorf("escapeJSON(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
