// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ivision/showcase-go/internal/model"
	"github.com/ivision/showcase-go/internal/viewport"
)

func postViewport(t *testing.T, h *Handler, event, id string) (int, viewportResponse) {
	t.Helper()

	body, _ := json.Marshal(viewportRequest{Event: event, ID: id})
	rec := httptest.NewRecorder()
	h.Viewport(rec, httptest.NewRequest(http.MethodPost, "/api/viewport", bytes.NewReader(body)))

	var resp viewportResponse
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rec.Code, resp
}

func TestViewportEnterLoadsYouTubeEmbed(t *testing.T) {
	seed := []model.Project{{
		ID:       "reel-1",
		Title:    "Clip",
		Category: model.CategoryReels,
		VideoURL: "https://youtu.be/dQw4w9WgXcQ",
	}}
	h, _ := newTestHandler(t, seed)
	id := firstProjectID(t, h)

	code, resp := postViewport(t, h, "enter", id)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !resp.Load || resp.Play {
		t.Errorf("enter decision = %+v, want load without play", resp.Decision)
	}
	if !strings.Contains(resp.EmbedURL, "youtube.com/embed/dQw4w9WgXcQ") {
		t.Errorf("embed_url = %q", resp.EmbedURL)
	}
	if !strings.Contains(resp.EmbedURL, "autoplay=1") || !strings.Contains(resp.EmbedURL, "mute=1") {
		t.Errorf("embed_url should autoplay muted: %q", resp.EmbedURL)
	}
}

func TestViewportHoverFlow(t *testing.T) {
	seed := []model.Project{{
		ID:       "reel-1",
		Title:    "Clip",
		Category: model.CategoryReels,
		VideoURL: "https://youtu.be/dQw4w9WgXcQ",
	}}
	h, _ := newTestHandler(t, seed)
	id := firstProjectID(t, h)

	postViewport(t, h, "enter", id)

	_, resp := postViewport(t, h, "hover_start", id)
	if resp.Play {
		t.Error("hover_start alone must not start playback")
	}

	// The client reports hover_held once the debounce elapses
	time.Sleep(viewport.DefaultHoverDebounce + 20*time.Millisecond)
	_, resp = postViewport(t, h, "hover_held", id)
	if !resp.Play {
		t.Errorf("hover_held decision = %+v, want play", resp.Decision)
	}

	_, resp = postViewport(t, h, "hover_end", id)
	if resp.Play {
		t.Error("hover_end should stop playback")
	}
	if !resp.Load {
		t.Error("tile still visible should stay loaded")
	}
}

func TestViewportLeaveUnloads(t *testing.T) {
	seed := []model.Project{{
		ID:       "reel-1",
		Title:    "Clip",
		Category: model.CategoryReels,
		VideoURL: "https://youtu.be/dQw4w9WgXcQ",
	}}
	h, _ := newTestHandler(t, seed)
	id := firstProjectID(t, h)

	postViewport(t, h, "enter", id)
	_, resp := postViewport(t, h, "leave", id)

	if resp.Load || resp.Play {
		t.Errorf("leave decision = %+v, want unloaded", resp.Decision)
	}
}

func TestViewportRejectsUnknownEvent(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	code, _ := postViewport(t, h, "teleport", "x")
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
}

// firstProjectID fetches the id assigned by the catalog to the seeded
// project.
func firstProjectID(t *testing.T, h *Handler) string {
	t.Helper()

	projects, _, err := h.service.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) == 0 {
		t.Fatal("no seeded projects")
	}
	return projects[0].ID
}
