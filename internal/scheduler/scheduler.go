// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic background jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ivision/showcase-go/internal/catalog"
	"github.com/ivision/showcase-go/internal/service"
)

// eventRetention is how long audit events stay in the database.
const eventRetention = 90 * 24 * time.Hour

// jobTimeout caps a single background run.
const jobTimeout = 2 * time.Minute

// Scheduler runs periodic catalog refreshes and event pruning.
type Scheduler struct {
	catalog *catalog.Service
	events  *service.EventService
	cron    *cron.Cron
	logger  *slog.Logger
}

// New creates a new scheduler instance.
func New(cat *catalog.Service, events *service.EventService, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		catalog: cat,
		events:  events,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start registers the jobs and begins the cron loop. The catalog
// snapshot refreshes every ten minutes so the fallback copy stays
// fresh even without admin activity; old events are pruned nightly.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("*/10 * * * *", s.refreshCatalog); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("30 3 * * *", s.pruneEvents); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// refreshCatalog re-reads the backend into the snapshot cache.
func (s *Scheduler) refreshCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.catalog.Resync(ctx); err != nil {
		s.logger.Warn("scheduled catalog refresh failed", "error", err)
		return
	}
	s.logger.Debug("catalog snapshot refreshed")
}

// pruneEvents removes audit events past the retention window.
func (s *Scheduler) pruneEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	deleted, err := s.events.DeleteOldEvents(ctx, eventRetention)
	if err != nil {
		s.logger.Error("event pruning failed", "error", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("pruned old events", "deleted", deleted)
	}
}
