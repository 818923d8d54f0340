// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ivision/showcase-go/internal/cache"
	"github.com/ivision/showcase-go/internal/media"
	"github.com/ivision/showcase-go/internal/model"
)

// snapshotKey is where the last successfully fetched project list is
// cached. It serves reads when the backend is unreachable.
const snapshotKey = "catalog:projects"

// snapshotTTL is deliberately long: a stale gallery beats an empty one.
const snapshotTTL = 24 * time.Hour

// Hard validation errors. Unlike media warnings these can never be
// forced through.
var (
	ErrTitleRequired   = errors.New("project title is required")
	ErrInvalidCategory = errors.New("unknown project category")
	ErrInvalidSize     = errors.New("unknown tile size")
)

// ValidationError carries the advisory media warnings that blocked a
// save. Retrying with the force flag set bypasses them.
type ValidationError struct {
	Warnings []string
}

func (e *ValidationError) Error() string {
	return "media validation failed: " + strings.Join(e.Warnings, "; ")
}

// Service is the catalog's business layer. Every write goes to the
// data source and is followed by a full refetch, so the serving list
// always reflects what the backend actually stored.
type Service struct {
	source    DataSource
	snapshot  *cache.TypedCache[[]model.Project]
	validator *media.Validator
	logger    *slog.Logger
}

// NewService wires the catalog service.
func NewService(source DataSource, c cache.Cache, validator *media.Validator, logger *slog.Logger) *Service {
	return &Service{
		source:    source,
		snapshot:  cache.NewTypedCache[[]model.Project](c, snapshotTTL),
		validator: validator,
		logger:    logger,
	}
}

// Persistent reports whether project writes survive a restart.
func (s *Service) Persistent() bool {
	return s.source.Persistent()
}

// Ping verifies the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.source.Ping(ctx)
}

// List returns all projects newest first. When the backend is
// unreachable it serves the last known good snapshot, or the built-in
// demo set if none exists yet; degraded reports that fallback path.
func (s *Service) List(ctx context.Context) (projects []model.Project, degraded bool, err error) {
	projects, err = s.source.List(ctx)
	if err == nil {
		_ = s.snapshot.Set(ctx, snapshotKey, &projects)
		return projects, false, nil
	}

	s.logger.Warn("catalog backend unreachable, serving fallback",
		"category", model.EventCategoryCatalog, "error", err.Error())

	if cached, ok := s.snapshot.Get(ctx, snapshotKey); ok {
		return *cached, true, nil
	}
	return FallbackProjects(), true, nil
}

// Get returns one project by ID.
func (s *Service) Get(ctx context.Context, id string) (model.Project, error) {
	return s.source.Get(ctx, id)
}

// Create validates and stores a new project, then refetches the full
// list. force bypasses advisory media warnings but never the hard
// checks.
func (s *Service) Create(ctx context.Context, p model.Project, force bool) (model.Project, error) {
	if err := s.validate(ctx, &p, force); err != nil {
		return model.Project{}, err
	}

	id, err := s.source.Create(ctx, p)
	if err != nil {
		return model.Project{}, fmt.Errorf("creating project: %w", err)
	}
	s.refresh(ctx)

	created, err := s.source.Get(ctx, id)
	if err != nil {
		return model.Project{}, fmt.Errorf("reloading created project: %w", err)
	}
	return created, nil
}

// Update validates and rewrites an existing project, then refetches.
func (s *Service) Update(ctx context.Context, p model.Project, force bool) (model.Project, error) {
	if err := s.validate(ctx, &p, force); err != nil {
		return model.Project{}, err
	}

	if err := s.source.Update(ctx, p); err != nil {
		return model.Project{}, err
	}
	s.refresh(ctx)

	updated, err := s.source.Get(ctx, p.ID)
	if err != nil {
		return model.Project{}, fmt.Errorf("reloading updated project: %w", err)
	}
	return updated, nil
}

// Delete removes a project. Absent IDs succeed so retries are safe.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.source.Delete(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx)
	return nil
}

// Resync refetches the project list and refreshes the snapshot. The
// scheduler calls this periodically so the fallback copy stays fresh.
func (s *Service) Resync(ctx context.Context) error {
	projects, err := s.source.List(ctx)
	if err != nil {
		return fmt.Errorf("resyncing catalog: %w", err)
	}
	_ = s.snapshot.Set(ctx, snapshotKey, &projects)
	return nil
}

// validate applies the hard checks, normalizes share links in place
// and runs the advisory media validation.
func (s *Service) validate(ctx context.Context, p *model.Project, force bool) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return ErrTitleRequired
	}
	if !model.IsValidCategory(p.Category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, p.Category)
	}
	if !model.IsValidSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidSize, p.Size)
	}

	// Drive share links never serve raw media; rewrite them before
	// anything touches the stored URL.
	p.ImageURL = media.NormalizeDriveURL(strings.TrimSpace(p.ImageURL))
	p.VideoURL = media.NormalizeDriveURL(strings.TrimSpace(p.VideoURL))

	warnings, err := s.validator.Validate(ctx, p)
	if err != nil {
		return err
	}
	if len(warnings) > 0 && !force {
		return &ValidationError{Warnings: warnings}
	}
	if len(warnings) > 0 {
		s.logger.Warn("project saved despite media warnings",
			"category", model.EventCategoryCatalog, "title", p.Title,
			"warnings", strings.Join(warnings, "; "))
	}
	return nil
}

// refresh updates the snapshot after a write. Failures only log: the
// write itself already succeeded.
func (s *Service) refresh(ctx context.Context) {
	projects, err := s.source.List(ctx)
	if err != nil {
		s.logger.Warn("catalog refetch after write failed",
			"category", model.EventCategoryCatalog, "error", err.Error())
		return
	}
	_ = s.snapshot.Set(ctx, snapshotKey, &projects)
}
