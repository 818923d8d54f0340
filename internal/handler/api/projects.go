// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ivision/showcase-go/internal/catalog"
	"github.com/ivision/showcase-go/internal/media"
	"github.com/ivision/showcase-go/internal/middleware"
	"github.com/ivision/showcase-go/internal/model"
)

// projectPayload is the request body for creating or updating a project.
type projectPayload struct {
	Title       string         `json:"title"`
	Category    string         `json:"category"`
	ImageURL    string         `json:"image_url"`
	VideoURL    string         `json:"video_url"`
	Client      string         `json:"client"`
	Description string         `json:"description"`
	Size        string         `json:"size"`
	Metrics     []model.Metric `json:"metrics"`
	Force       bool           `json:"force"`
}

func (p projectPayload) toModel() model.Project {
	return model.Project{
		Title:       p.Title,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		VideoURL:    p.VideoURL,
		Client:      p.Client,
		Description: p.Description,
		Size:        p.Size,
		Metrics:     p.Metrics,
	}
}

// ListProjects handles GET /api/projects. When the catalog backend is
// unreachable the previous snapshot (or the demo set) is returned with
// meta.degraded set.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, degraded, err := h.service.List(r.Context())
	if err != nil {
		slog.Error("list projects", "error", err)
		WriteInternalError(w)
		return
	}

	WriteSuccess(w, projects, &Meta{Total: len(projects), Degraded: degraded})
}

// GetProject handles GET /api/projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			WriteNotFound(w, "Project not found")
			return
		}
		slog.Error("get project", "error", err, "id", id)
		WriteInternalError(w)
		return
	}

	WriteSuccess(w, project, nil)
}

// CreateProject handles POST /api/projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var payload projectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	created, err := h.service.Create(r.Context(), payload.toModel(), payload.Force)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	_ = h.eventService.LogCatalogEvent(r.Context(), model.EventLevelInfo,
		"Project created", middleware.GetUserIDPtr(r), r.RemoteAddr,
		map[string]any{"project_id": created.ID, "title": created.Title})

	WriteCreated(w, created)
}

// UpdateProject handles PUT /api/projects/{id}.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload projectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	project := payload.toModel()
	project.ID = id

	updated, err := h.service.Update(r.Context(), project, payload.Force)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	_ = h.eventService.LogCatalogEvent(r.Context(), model.EventLevelInfo,
		"Project updated", middleware.GetUserIDPtr(r), r.RemoteAddr,
		map[string]any{"project_id": updated.ID, "title": updated.Title})

	WriteSuccess(w, updated, nil)
}

// DeleteProject handles DELETE /api/projects/{id}. Deleting an absent
// project succeeds.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		slog.Error("delete project", "error", err, "id", id)
		WriteInternalError(w)
		return
	}

	_ = h.eventService.LogCatalogEvent(r.Context(), model.EventLevelInfo,
		"Project deleted", middleware.GetUserIDPtr(r), r.RemoteAddr,
		map[string]any{"project_id": id})

	w.WriteHeader(http.StatusNoContent)
}

// writeCatalogError maps catalog service failures to API errors.
func (h *Handler) writeCatalogError(w http.ResponseWriter, err error) {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		// Advisory media warnings: the client may retry with force set
		WriteError(w, http.StatusUnprocessableEntity, "media_unverified",
			"Media could not be verified", verr.Warnings)
	case errors.Is(err, catalog.ErrTitleRequired),
		errors.Is(err, catalog.ErrInvalidCategory),
		errors.Is(err, catalog.ErrInvalidSize),
		errors.Is(err, media.ErrNoMedia):
		WriteBadRequest(w, err.Error(), nil)
	case errors.Is(err, catalog.ErrNotFound):
		WriteNotFound(w, "Project not found")
	default:
		slog.Error("catalog write failed", "error", err)
		WriteInternalError(w)
	}
}
