// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/drimin/drimin-go/internal/model"
	"github.com/drimin/drimin-go/internal/store"
)

// ContentService is the gateway to named content sections.
type ContentService struct {
	queries *store.Queries
}

// NewContentService creates a ContentService over the given database.
func NewContentService(db *sql.DB) *ContentService {
	return &ContentService{queries: store.New(db)}
}

// ContentFilter narrows List to a page and/or section. Empty fields match
// everything.
type ContentFilter struct {
	Page    string
	Section string
}

// List returns the content sections matching the filter, ordered by page
// name ascending.
func (s *ContentService) List(ctx context.Context, filter ContentFilter) ([]model.ContentSection, error) {
	sections, err := s.queries.ListContentSections(ctx, store.ListContentSectionsParams{
		PageName:    strings.TrimSpace(filter.Page),
		SectionName: strings.TrimSpace(filter.Section),
	})
	if err != nil {
		return nil, fmt.Errorf("listing content sections: %w", err)
	}
	return sections, nil
}

// Upsert writes a section wholesale: an existing (page, section) key is
// replaced, otherwise a new row is created. Returns the stored row.
func (s *ContentService) Upsert(ctx context.Context, page, section string, content model.ContentMap) (model.ContentSection, error) {
	page = strings.TrimSpace(page)
	section = strings.TrimSpace(section)
	if page == "" || section == "" {
		return model.ContentSection{}, fmt.Errorf("%w: page_name and section_name are required", ErrValidation)
	}
	if content == nil {
		content = model.ContentMap{}
	}

	stored, err := s.queries.UpsertContentSection(ctx, store.UpsertContentSectionParams{
		ID:          uuid.NewString(),
		PageName:    page,
		SectionName: section,
		Content:     content,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		return model.ContentSection{}, fmt.Errorf("upserting content section %s/%s: %w", page, section, err)
	}
	return stored, nil
}
