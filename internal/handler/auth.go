// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/ivision/showcase-go/internal/auth"
	"github.com/ivision/showcase-go/internal/middleware"
	"github.com/ivision/showcase-go/internal/model"
	"github.com/ivision/showcase-go/internal/render"
	"github.com/ivision/showcase-go/internal/service"
	"github.com/ivision/showcase-go/internal/session"
	"github.com/ivision/showcase-go/internal/store"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	eventService    *service.EventService
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		eventService:    service.NewEventService(db),
		loginProtection: lp,
	}
}

// loginFormData carries state back into the login template.
type loginFormData struct {
	Email string
	Error string
}

// LoginForm renders the login page. Authenticated users are sent
// straight to the admin area.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if session.UserID(r.Context(), h.sessionManager) > 0 {
		http.Redirect(w, r, RouteAdminProjects, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: "Connexion",
		Data:  loginFormData{},
	}); err != nil {
		logAndInternalError(w, "render login form", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, RouteLogin, "Formulaire invalide.")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	ip := clientIP(r)

	if email == "" || password == "" {
		h.renderLoginError(w, r, email, "Email et mot de passe requis.")
		return
	}

	if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
		_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning,
			"Login attempt on locked account", nil, ip, map[string]any{"email": email})
		h.renderLoginError(w, r, email,
			fmt.Sprintf("Compte temporairement bloqué. Réessayez dans %s.", formatDuration(remaining)))
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for non-existent user", "email", email)
			_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning,
				"Login failed: user not found", nil, ip, map[string]any{"email": email})
		} else {
			slog.Error("database error during login", "error", err)
		}
		// Count the failure even for unknown accounts to avoid enumeration
		h.recordFailure(w, r, email, nil, ip)
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		h.renderLoginError(w, r, email, "Identifiants invalides.")
		return
	}
	if !valid {
		slog.Debug("invalid password attempt", "email", email)
		_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning,
			"Login failed: invalid password", &user.ID, ip, map[string]any{"email": email})
		h.recordFailure(w, r, email, &user.ID, ip)
		return
	}

	h.loginProtection.RecordSuccessfulLogin(email)

	// Upgrade hashes produced with older parameters
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), user.ID, newHash); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			}
		}
	}

	if err := session.Login(r.Context(), h.sessionManager, user.ID); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelInfo,
		"User logged in", &user.ID, ip, map[string]any{"email": user.Email})

	h.renderer.SetFlash(r, fmt.Sprintf("Bon retour, %s !", user.Name), "success")
	http.Redirect(w, r, RouteAdminProjects, http.StatusSeeOther)
}

// recordFailure records a failed attempt and renders the matching error.
func (h *AuthHandler) recordFailure(w http.ResponseWriter, r *http.Request, email string, userID *int64, ip string) {
	if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
		_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning,
			"Account locked due to failed attempts", userID, ip,
			map[string]any{"email": email, "duration": lockDuration.String()})
		h.renderLoginError(w, r, email,
			fmt.Sprintf("Trop de tentatives. Compte bloqué pendant %s.", formatDuration(lockDuration)))
		return
	}

	if remaining := h.loginProtection.GetRemainingAttempts(email); remaining > 0 && remaining <= 3 {
		h.renderLoginError(w, r, email,
			fmt.Sprintf("Identifiants invalides. Il reste %d tentative(s).", remaining))
		return
	}

	h.renderLoginError(w, r, email, "Identifiants invalides.")
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, email, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: "Connexion",
		Data:  loginFormData{Email: email, Error: message},
	}); err != nil {
		slog.Error("render login error", "error", err)
	}
}

// Logout destroys the session and returns to the public site.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDPtr(r)

	if err := session.Logout(r.Context(), h.sessionManager); err != nil {
		logAndInternalError(w, "session destroy error", "error", err)
		return
	}

	_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelInfo,
		"User logged out", userID, clientIP(r), nil)

	http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
}
