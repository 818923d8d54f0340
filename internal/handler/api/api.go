// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON endpoints consumed by the public site.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/ivision/showcase-go/internal/catalog"
	"github.com/ivision/showcase-go/internal/chat"
	"github.com/ivision/showcase-go/internal/service"
	"github.com/ivision/showcase-go/internal/viewport"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	service        *catalog.Service
	assistant      *chat.Assistant
	gate           *viewport.Gate
	sessionManager *scs.SessionManager
	eventService   *service.EventService
}

// NewHandler creates a new API handler.
func NewHandler(svc *catalog.Service, assistant *chat.Assistant, gate *viewport.Gate, sm *scs.SessionManager, events *service.EventService) *Handler {
	return &Handler{
		service:        svc,
		assistant:      assistant,
		gate:           gate,
		sessionManager: sm,
		eventService:   events,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries response metadata alongside the data payload.
type Meta struct {
	Total    int  `json:"total,omitempty"`
	Degraded bool `json:"degraded,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details []string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details []string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
}
