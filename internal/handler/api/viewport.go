// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ivision/showcase-go/internal/catalog"
	"github.com/ivision/showcase-go/internal/media"
	"github.com/ivision/showcase-go/internal/viewport"
)

type viewportRequest struct {
	Event string `json:"event"`
	ID    string `json:"id"`
}

type viewportResponse struct {
	viewport.Decision
	EmbedURL string `json:"embed_url,omitempty"`
}

// Viewport handles POST /api/viewport. The browser reports tile
// visibility and hover transitions; the response tells it whether to
// mount the player and whether playback may start. The embed URL is
// resolved server side so raw share links never reach the page.
func (h *Handler) Viewport(w http.ResponseWriter, r *http.Request) {
	var req viewportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if req.ID == "" {
		WriteBadRequest(w, "Tile id is required", nil)
		return
	}

	var decision viewport.Decision
	switch req.Event {
	case "enter":
		decision = h.gate.Enter(req.ID)
	case "leave":
		decision = h.gate.Leave(req.ID)
	case "hover_start":
		decision = h.gate.HoverStart(req.ID)
	case "hover_held":
		decision = h.gate.HoverHeld(req.ID)
	case "hover_end":
		decision = h.gate.HoverEnd(req.ID)
	default:
		WriteBadRequest(w, "Unknown viewport event", nil)
		return
	}

	resp := viewportResponse{Decision: decision}
	if decision.Load {
		resp.EmbedURL = h.embedURL(r, req.ID)
	}

	WriteJSON(w, http.StatusOK, resp)
}

// embedURL resolves the playable URL for a tile's video, or empty when
// the tile has none.
func (h *Handler) embedURL(r *http.Request, id string) string {
	project, err := h.service.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			slog.Error("resolve tile media", "error", err, "id", id)
		}
		return ""
	}
	if project.VideoURL == "" {
		return ""
	}

	switch media.Classify(project.VideoURL) {
	case media.KindYouTube:
		return media.YouTubeEmbedURL(project.VideoURL, media.EmbedOptions{
			Autoplay: true,
			Mute:     true,
			Loop:     true,
		})
	case media.KindDrive:
		return media.DrivePreviewURL(project.VideoURL)
	case media.KindDirect:
		return project.VideoURL
	default:
		return ""
	}
}
