// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/ivision/showcase-go/internal/catalog"
	"github.com/ivision/showcase-go/internal/model"
	"github.com/ivision/showcase-go/internal/render"
	"github.com/ivision/showcase-go/internal/service"
)

// FrontendHandler serves the public showcase pages.
type FrontendHandler struct {
	service      *catalog.Service
	renderer     *render.Renderer
	eventService *service.EventService
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(svc *catalog.Service, renderer *render.Renderer, events *service.EventService) *FrontendHandler {
	return &FrontendHandler{service: svc, renderer: renderer, eventService: events}
}

// homeData feeds the landing page template.
type homeData struct {
	Projects   []model.Project
	Categories []string
	Stats      []model.AdMetric
	Headline   model.AdsSummary
}

// Home renders the landing page with the project gallery and the ads
// performance section.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	projects, degraded, err := h.service.List(r.Context())
	if err != nil {
		logAndInternalError(w, "list projects", "error", err)
		return
	}

	data := homeData{
		Projects:   projects,
		Categories: model.Categories,
		Stats:      model.AdsStats(),
		Headline:   model.AdsHeadline(),
	}

	if err := h.renderer.Render(w, r, "public/home", render.TemplateData{
		Title:    "Nos réalisations",
		Data:     data,
		Degraded: degraded,
	}); err != nil {
		logAndInternalError(w, "render home", "error", err)
	}
}

// maxContactMessageLen bounds the stored contact message.
const maxContactMessageLen = 5000

// Contact records a contact form submission in the event log and
// confirms with a flash. There is no outbound mail pipeline; the team
// reads submissions from the admin journal.
func (h *FrontendHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	message := strings.TrimSpace(r.FormValue("message"))

	if name == "" || message == "" || !strings.Contains(email, "@") {
		flashError(w, r, h.renderer, RouteRoot+"#contact", "Veuillez remplir tous les champs du formulaire.")
		return
	}
	if len(message) > maxContactMessageLen {
		message = message[:maxContactMessageLen]
	}

	if err := h.eventService.LogContactEvent(r.Context(), model.EventLevelInfo,
		"Contact form submission", clientIP(r), map[string]any{
			"name":    name,
			"email":   email,
			"message": message,
		}); err != nil {
		logAndInternalError(w, "record contact submission", "error", err)
		return
	}

	h.renderer.SetFlash(r, "Merci ! Votre message a bien été envoyé.", "success")
	http.Redirect(w, r, RouteRoot+"#contact", http.StatusSeeOther)
}
