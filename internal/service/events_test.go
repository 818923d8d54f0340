// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/ivision/showcase-go/internal/model"
	"github.com/ivision/showcase-go/internal/store"
	"github.com/ivision/showcase-go/internal/testutil"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	return testutil.DB(t)
}

func TestLogEvent(t *testing.T) {
	svc := NewEventService(testDB(t))
	ctx := context.Background()

	userID := int64(7)
	err := svc.LogCatalogEvent(ctx, model.EventLevelInfo, "project created", &userID, "203.0.113.5",
		map[string]any{"project_id": "12"})
	if err != nil {
		t.Fatalf("LogCatalogEvent: %v", err)
	}

	events, err := svc.List(ctx, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	e := events[0]
	if e.Category != model.EventCategoryCatalog {
		t.Errorf("Category = %q", e.Category)
	}
	if !e.UserID.Valid || e.UserID.Int64 != 7 {
		t.Errorf("UserID = %+v, want 7", e.UserID)
	}
	if e.IPAddress != "203.0.113.5" {
		t.Errorf("IPAddress = %q", e.IPAddress)
	}
	if !strings.Contains(e.Metadata, `"project_id":"12"`) {
		t.Errorf("Metadata = %q", e.Metadata)
	}
}

func TestLogEventAnonymous(t *testing.T) {
	svc := NewEventService(testDB(t))
	ctx := context.Background()

	if err := svc.LogAuthEvent(ctx, model.EventLevelWarning, "login failed", nil, "198.51.100.9", nil); err != nil {
		t.Fatalf("LogAuthEvent: %v", err)
	}

	events, _ := svc.List(ctx, 1, 0)
	if events[0].UserID.Valid {
		t.Error("anonymous event carries a user ID")
	}
	if events[0].Metadata != "{}" {
		t.Errorf("Metadata = %q, want {}", events[0].Metadata)
	}
}

func TestDeleteOldEvents(t *testing.T) {
	db := testDB(t)
	svc := NewEventService(db)
	ctx := context.Background()
	q := store.New(db)

	insertAt := func(created time.Time) {
		_, err := q.CreateEvent(ctx, store.CreateEventParams{
			Level:     model.EventLevelInfo,
			Category:  model.EventCategorySystem,
			Message:   "marker",
			CreatedAt: created,
		})
		if err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}
	insertAt(time.Now().Add(-100 * 24 * time.Hour))
	insertAt(time.Now())

	pruned, err := svc.DeleteOldEvents(ctx, 90*24*time.Hour)
	if err != nil {
		t.Fatalf("DeleteOldEvents: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
}
