// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "showcase-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestCreateUser(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	now := time.Now()
	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "claire@ivision.fr",
		PasswordHash: "hashed-password",
		Role:         "editor",
		Name:         "Claire",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.ID == 0 {
		t.Error("user.ID should not be 0")
	}
	if user.Email != "claire@ivision.fr" {
		t.Errorf("Email = %q, want %q", user.Email, "claire@ivision.fr")
	}
	if user.Role != "editor" {
		t.Errorf("Role = %q, want %q", user.Role, "editor")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	now := time.Now()
	params := CreateUserParams{
		Email:        "dup@ivision.fr",
		PasswordHash: "x",
		Role:         "editor",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := q.CreateUser(ctx, params); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := q.CreateUser(ctx, params); err == nil {
		t.Error("duplicate email was accepted")
	}
}

func TestGetUserByEmail(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	now := time.Now()
	created, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "admin@ivision.fr",
		PasswordHash: "x",
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := q.GetUserByEmail(ctx, "admin@ivision.fr")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %d, want %d", got.ID, created.ID)
	}

	_, err = q.GetUserByEmail(ctx, "nobody@ivision.fr")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestUpdateUserPassword(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	now := time.Now()
	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "pw@ivision.fr",
		PasswordHash: "old",
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := q.UpdateUserPassword(ctx, user.ID, "new"); err != nil {
		t.Fatalf("UpdateUserPassword: %v", err)
	}
	got, err := q.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.PasswordHash != "new" {
		t.Errorf("PasswordHash = %q, want %q", got.PasswordHash, "new")
	}
}

func TestEventLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	old := time.Now().Add(-48 * time.Hour)
	recent := time.Now()

	for _, created := range []time.Time{old, recent} {
		_, err := q.CreateEvent(ctx, CreateEventParams{
			Level:     "info",
			Category:  "catalog",
			Message:   "project created",
			IPAddress: "203.0.113.5",
			CreatedAt: created,
		})
		if err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	events, err := q.ListEvents(ctx, ListEventsParams{Limit: 10})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].CreatedAt.Before(events[1].CreatedAt) {
		t.Error("events are not ordered newest first")
	}

	pruned, err := q.DeleteEventsBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteEventsBefore: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned %d events, want 1", pruned)
	}

	n, err := q.CountEvents(ctx)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if n != 1 {
		t.Errorf("CountEvents = %d, want 1", n)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := Seed(ctx, db, "admin@ivision.fr", "s3cret-enough", "Admin"); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := Seed(ctx, db, "admin@ivision.fr", "s3cret-enough", "Admin"); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	n, err := New(db).CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if n != 1 {
		t.Errorf("CountUsers = %d, want 1", n)
	}
}
