// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ivision/showcase-go/internal/catalog"
	"github.com/ivision/showcase-go/internal/media"
	"github.com/ivision/showcase-go/internal/middleware"
	"github.com/ivision/showcase-go/internal/model"
	"github.com/ivision/showcase-go/internal/render"
	"github.com/ivision/showcase-go/internal/service"
)

// AdminHandler handles project management in the admin area.
type AdminHandler struct {
	service      *catalog.Service
	renderer     *render.Renderer
	eventService *service.EventService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc *catalog.Service, renderer *render.Renderer, events *service.EventService) *AdminHandler {
	return &AdminHandler{service: svc, renderer: renderer, eventService: events}
}

// projectListData feeds the admin project table.
type projectListData struct {
	Projects   []model.Project
	Persistent bool
}

// projectFormData feeds the create/edit form.
type projectFormData struct {
	Project    model.Project
	Categories []string
	Sizes      []string
	Action     string
	Warnings   []string
}

// ProjectList renders the admin project table.
func (h *AdminHandler) ProjectList(w http.ResponseWriter, r *http.Request) {
	projects, _, err := h.service.List(r.Context())
	if err != nil {
		logAndInternalError(w, "list projects", "error", err)
		return
	}

	h.render(w, r, "admin/projects", "Projets", projectListData{
		Projects:   projects,
		Persistent: h.service.Persistent(),
	})
}

// ProjectNew renders the empty creation form.
func (h *AdminHandler) ProjectNew(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/project_form", "Nouveau projet", projectFormData{
		Project:    model.Project{Category: model.CategoryReels},
		Categories: model.Categories,
		Sizes:      model.Sizes,
		Action:     RouteAdminProjects,
	})
}

// ProjectCreate handles the creation form submission.
func (h *AdminHandler) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	project, force, err := parseProjectForm(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminProjects+"/new", "Formulaire invalide.")
		return
	}

	created, err := h.service.Create(r.Context(), project, force)
	if err != nil {
		h.handleWriteError(w, r, err, projectFormData{
			Project:    project,
			Categories: model.Categories,
			Sizes:      model.Sizes,
			Action:     RouteAdminProjects,
		}, "Nouveau projet")
		return
	}

	_ = h.eventService.LogCatalogEvent(r.Context(), model.EventLevelInfo,
		"Project created", middleware.GetUserIDPtr(r), clientIP(r),
		map[string]any{"project_id": created.ID, "title": created.Title})

	h.renderer.SetFlash(r, "Projet créé.", "success")
	http.Redirect(w, r, RouteAdminProjects, http.StatusSeeOther)
}

// ProjectEdit renders the edit form for an existing project.
func (h *AdminHandler) ProjectEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		logAndInternalError(w, "get project", "error", err, "id", id)
		return
	}

	h.render(w, r, "admin/project_form", "Modifier le projet", projectFormData{
		Project:    project,
		Categories: model.Categories,
		Sizes:      model.Sizes,
		Action:     RouteAdminProjects + "/" + id,
	})
}

// ProjectUpdate handles the edit form submission.
func (h *AdminHandler) ProjectUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, force, err := parseProjectForm(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminProjects+"/"+id, "Formulaire invalide.")
		return
	}
	project.ID = id

	updated, err := h.service.Update(r.Context(), project, force)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.handleWriteError(w, r, err, projectFormData{
			Project:    project,
			Categories: model.Categories,
			Sizes:      model.Sizes,
			Action:     RouteAdminProjects + "/" + id,
		}, "Modifier le projet")
		return
	}

	_ = h.eventService.LogCatalogEvent(r.Context(), model.EventLevelInfo,
		"Project updated", middleware.GetUserIDPtr(r), clientIP(r),
		map[string]any{"project_id": updated.ID, "title": updated.Title})

	h.renderer.SetFlash(r, "Projet mis à jour.", "success")
	http.Redirect(w, r, RouteAdminProjects, http.StatusSeeOther)
}

// ProjectDelete removes a project. Deleting an already-removed project
// is not an error.
func (h *AdminHandler) ProjectDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		logAndInternalError(w, "delete project", "error", err, "id", id)
		return
	}

	_ = h.eventService.LogCatalogEvent(r.Context(), model.EventLevelInfo,
		"Project deleted", middleware.GetUserIDPtr(r), clientIP(r),
		map[string]any{"project_id": id})

	h.renderer.SetFlash(r, "Projet supprimé.", "success")
	http.Redirect(w, r, RouteAdminProjects, http.StatusSeeOther)
}

// handleWriteError maps catalog write failures onto the form.
func (h *AdminHandler) handleWriteError(w http.ResponseWriter, r *http.Request, err error, form projectFormData, title string) {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		// Media could not be verified: re-render with warnings and the
		// force checkbox
		form.Warnings = verr.Warnings
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.render(w, r, "admin/project_form", title, form)
	case errors.Is(err, catalog.ErrTitleRequired),
		errors.Is(err, catalog.ErrInvalidCategory),
		errors.Is(err, catalog.ErrInvalidSize),
		errors.Is(err, media.ErrNoMedia):
		flashError(w, r, h.renderer, form.Action, "Saisie invalide : "+err.Error())
	default:
		logAndInternalError(w, "save project", "error", err)
	}
}

func (h *AdminHandler) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	if err := h.renderer.Render(w, r, name, render.TemplateData{
		Title: title,
		Data:  data,
		User:  middleware.GetUser(r),
	}); err != nil {
		logAndInternalError(w, "render "+name, "error", err)
	}
}

// parseProjectForm builds a project from form values. Metric label and
// value inputs are paired by position, blank pairs are skipped.
func parseProjectForm(r *http.Request) (model.Project, bool, error) {
	if err := r.ParseForm(); err != nil {
		return model.Project{}, false, err
	}

	p := model.Project{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Category:    r.FormValue("category"),
		Size:        r.FormValue("size"),
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
		VideoURL:    strings.TrimSpace(r.FormValue("video_url")),
		Client:      strings.TrimSpace(r.FormValue("client")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}

	labels := r.Form["metric_label"]
	values := r.Form["metric_value"]
	for i := 0; i < len(labels) && i < len(values); i++ {
		label := strings.TrimSpace(labels[i])
		value := strings.TrimSpace(values[i])
		if label == "" && value == "" {
			continue
		}
		p.Metrics = append(p.Metrics, model.Metric{Label: label, Value: value})
	}

	return p, r.FormValue("force") == "1", nil
}
