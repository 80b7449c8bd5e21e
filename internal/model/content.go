// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ContentMap is the open-ended structured payload of a content section.
// Values are the usual JSON unions (string, float64, bool, []any,
// map[string]any). No schema is enforced here; the editor for a specific
// page validates whatever fields it needs.
type ContentMap map[string]any

// Value implements driver.Valuer, serializing the map to a JSON string.
func (m ContentMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshaling content: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner, deserializing a JSON column value.
func (m *ContentMap) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = ContentMap{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("unsupported content column type %T", src)
	}
	if len(data) == 0 {
		*m = ContentMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// ContentSection is a named, page-scoped block of editable structured data
// rendered by a marketing page. The natural key is (PageName, SectionName);
// writes with an existing key overwrite the whole payload.
type ContentSection struct {
	ID          string     `json:"id"`
	PageName    string     `json:"page_name"`
	SectionName string     `json:"section_name"`
	Content     ContentMap `json:"content_json"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
