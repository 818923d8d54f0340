// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog manages the agency's showcase projects. Projects
// persist in a hosted Postgres backend when one is configured and fall
// back to an in-memory demo set otherwise, behind the same interface.
package catalog

import (
	"context"
	"errors"

	"github.com/ivision/showcase-go/internal/model"
)

// ErrNotFound is returned when no project matches the requested ID.
var ErrNotFound = errors.New("project not found")

// DataSource is the persistence strategy for projects. List always
// returns projects newest first.
type DataSource interface {
	List(ctx context.Context) ([]model.Project, error)
	Get(ctx context.Context, id string) (model.Project, error)

	// Create stores a new project and returns its assigned ID.
	Create(ctx context.Context, p model.Project) (string, error)
	Update(ctx context.Context, p model.Project) error
	Delete(ctx context.Context, id string) error

	// Persistent reports whether writes survive a restart. The demo
	// source returns false so the admin UI can warn editors.
	Persistent() bool

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}
