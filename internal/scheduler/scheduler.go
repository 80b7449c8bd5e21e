// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/drimin/drimin-go/internal/store"
)

// Scheduler handles scheduled tasks like purging old event log entries.
type Scheduler struct {
	db            *sql.DB
	cron          *cron.Cron
	logger        *slog.Logger
	retentionDays int
}

// New creates a new scheduler instance. retentionDays controls how long event
// log entries are kept; values below 1 fall back to 90.
func New(db *sql.DB, logger *slog.Logger, retentionDays int) *Scheduler {
	if retentionDays < 1 {
		retentionDays = 90
	}
	return &Scheduler{
		db:            db,
		cron:          cron.New(),
		logger:        logger,
		retentionDays: retentionDays,
	}
}

// Start begins the scheduler with a nightly event purge job.
func (s *Scheduler) Start() error {
	// Run at 03:30 every night
	_, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.purgeOldEvents(); err != nil {
			s.logger.Error("failed to purge old events", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()), "event_retention_days", s.retentionDays)
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// purgeOldEvents deletes event log entries older than the retention window.
func (s *Scheduler) purgeOldEvents() error {
	ctx := context.Background()
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	deleted, err := store.New(s.db).DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if deleted > 0 {
		s.logger.Info("purged old events", "deleted", deleted, "cutoff", cutoff.Format(time.RFC3339))
	}
	return nil
}
