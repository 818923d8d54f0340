// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTML page handlers.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ivision/showcase-go/internal/render"
)

// Common route targets.
const (
	RouteRoot          = "/"
	RouteLogin         = "/login"
	RouteAdminProjects = "/admin/projects"
)

// flashError sets an error flash and redirects.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, target, message string) {
	renderer.SetFlash(r, message, "error")
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// logAndInternalError logs the error and responds with a plain 500.
func logAndInternalError(w http.ResponseWriter, msg string, args ...any) {
	slog.Error(msg, args...)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// clientIP extracts the client IP for audit logging.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// formatDuration renders a lockout duration for user-facing messages.
func formatDuration(d time.Duration) string {
	if d >= time.Hour {
		return fmt.Sprintf("%dh%02d", int(d.Hours()), int(d.Minutes())%60)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%d min", int(d.Minutes()))
	}
	return fmt.Sprintf("%d s", int(d.Seconds()))
}
