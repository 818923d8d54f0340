// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/ivision/showcase-go/internal/middleware"
	"github.com/ivision/showcase-go/internal/render"
	"github.com/ivision/showcase-go/internal/store"
)

const eventsPerPage = 50

// EventsHandler shows the audit log in the admin area.
type EventsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(db *sql.DB, renderer *render.Renderer) *EventsHandler {
	return &EventsHandler{queries: store.New(db), renderer: renderer}
}

// eventListData feeds the events template.
type eventListData struct {
	Events []store.Event
	Page   int
	Pages  int
}

// List renders a page of recent events, newest first.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	total, err := h.queries.CountEvents(r.Context())
	if err != nil {
		logAndInternalError(w, "count events", "error", err)
		return
	}

	pages := int((total + eventsPerPage - 1) / eventsPerPage)
	if pages < 1 {
		pages = 1
	}
	if page > pages {
		page = pages
	}

	events, err := h.queries.ListEvents(r.Context(), store.ListEventsParams{
		Limit:  eventsPerPage,
		Offset: int64(page-1) * eventsPerPage,
	})
	if err != nil {
		logAndInternalError(w, "list events", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/events", render.TemplateData{
		Title: "Journal",
		User:  middleware.GetUser(r),
		Data: eventListData{
			Events: events,
			Page:   page,
			Pages:  pages,
		},
	}); err != nil {
		logAndInternalError(w, "render events", "error", err)
	}
}
