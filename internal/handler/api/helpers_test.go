// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/ivision/showcase-go/internal/cache"
	"github.com/ivision/showcase-go/internal/catalog"
	"github.com/ivision/showcase-go/internal/chat"
	"github.com/ivision/showcase-go/internal/media"
	"github.com/ivision/showcase-go/internal/model"
	"github.com/ivision/showcase-go/internal/service"
	"github.com/ivision/showcase-go/internal/testutil"
	"github.com/ivision/showcase-go/internal/viewport"
)

// okProber accepts every image URL without touching the network.
type okProber struct{}

func (okProber) ProbeImage(_ context.Context, _ string) error { return nil }

// newTestHandler wires an API handler over an in-memory catalog and a
// throwaway SQLite database.
func newTestHandler(t *testing.T, seed []model.Project) (*Handler, *sql.DB) {
	t.Helper()

	db := testutil.DB(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := catalog.NewService(
		catalog.NewMemoryDataSource(seed),
		cache.NewSimpleMemoryCache(time.Minute),
		media.NewValidator(okProber{}),
		logger,
	)

	// No API key: the assistant degrades to canned replies
	assistant := chat.NewAssistant(chat.Options{}, logger)

	h := NewHandler(svc, assistant, viewport.NewGate(), scs.New(), service.NewEventService(db))
	return h, db
}
