// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ivision/showcase-go/internal/model"
)

// MemoryDataSource keeps projects in process memory. It backs the demo
// mode when no Postgres backend is configured; everything written here
// disappears on restart.
type MemoryDataSource struct {
	mu       sync.RWMutex
	projects []model.Project
}

// NewMemoryDataSource returns a source pre-loaded with the given
// projects, typically FallbackProjects().
func NewMemoryDataSource(seed []model.Project) *MemoryDataSource {
	projects := make([]model.Project, len(seed))
	for i, p := range seed {
		projects[i] = p.Clone()
	}
	sortNewestFirst(projects)
	return &MemoryDataSource{projects: projects}
}

// List returns all projects newest first.
func (s *MemoryDataSource) List(_ context.Context) ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out, nil
}

// Get returns one project by ID.
func (s *MemoryDataSource) Get(_ context.Context, id string) (model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return model.Project{}, ErrNotFound
}

// Create stores a new project at the front of the gallery.
func (s *MemoryDataSource) Create(_ context.Context, p model.Project) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := p.Clone()
	stored.ID = uuid.NewString()
	s.projects = append([]model.Project{stored}, s.projects...)
	return stored.ID, nil
}

// Update replaces a project in place.
func (s *MemoryDataSource) Update(_ context.Context, p model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.projects {
		if existing.ID == p.ID {
			stored := p.Clone()
			stored.CreatedAt = existing.CreatedAt
			s.projects[i] = stored
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a project. Deleting an absent ID is not an error so
// the operation stays idempotent.
func (s *MemoryDataSource) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.projects {
		if p.ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return nil
		}
	}
	return nil
}

// Persistent reports that writes do not survive a restart.
func (s *MemoryDataSource) Persistent() bool { return false }

// Ping always succeeds for the in-memory source.
func (s *MemoryDataSource) Ping(_ context.Context) error { return nil }

func sortNewestFirst(projects []model.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
}

var _ DataSource = (*MemoryDataSource)(nil)
