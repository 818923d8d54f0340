// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/ivision/showcase-go/internal/cache"
	"github.com/ivision/showcase-go/internal/catalog"
	"github.com/ivision/showcase-go/internal/media"
	"github.com/ivision/showcase-go/internal/middleware"
	"github.com/ivision/showcase-go/internal/model"
	"github.com/ivision/showcase-go/internal/render"
	"github.com/ivision/showcase-go/internal/service"
	"github.com/ivision/showcase-go/internal/store"
	"github.com/ivision/showcase-go/internal/testutil"
	"github.com/ivision/showcase-go/web"
)

type okProber struct{}

func (okProber) ProbeImage(_ context.Context, _ string) error { return nil }

// testEnv bundles the pieces most handler tests need.
type testEnv struct {
	db       *sql.DB
	sm       *scs.SessionManager
	renderer *render.Renderer
	service  *catalog.Service
	events   *service.EventService
}

func newTestEnv(t *testing.T, seed []model.Project) *testEnv {
	t.Helper()

	db := testutil.DB(t)

	sm := scs.New()

	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("sub templates: %v", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templates, SessionManager: sm, IsDev: true})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := catalog.NewService(
		catalog.NewMemoryDataSource(seed),
		cache.NewSimpleMemoryCache(time.Minute),
		media.NewValidator(okProber{}),
		logger,
	)

	return &testEnv{
		db:       db,
		sm:       sm,
		renderer: renderer,
		service:  svc,
		events:   service.NewEventService(db),
	}
}

// fastLoginProtection avoids throttling consecutive test requests.
func fastLoginProtection() *middleware.LoginProtection {
	return middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       1000,
		IPBurst:           1000,
		MaxFailedAttempts: 5,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
}

func TestHomeRendersGallery(t *testing.T) {
	env := newTestEnv(t, catalog.FallbackProjects())
	h := NewFrontendHandler(env.service, env.renderer, env.events)

	rec := httptest.NewRecorder()
	env.sm.LoadAndSave(http.HandlerFunc(h.Home)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Neon Energy Drink", "Reels &amp; TikTok", "Résultats Ads"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestContactFormRecordsSubmission(t *testing.T) {
	env := newTestEnv(t, nil)
	h := NewFrontendHandler(env.service, env.renderer, env.events)

	form := url.Values{
		"name":    {"Camille"},
		"email":   {"camille@example.fr"},
		"message": {"Nous aimerions une vidéo de lancement."},
	}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.sm.LoadAndSave(http.HandlerFunc(h.Contact)).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	events, err := env.events.List(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("List events: %v", err)
	}
	if len(events) != 1 || events[0].Category != model.EventCategoryContact {
		t.Fatalf("events = %+v, want one contact event", events)
	}
	if !strings.Contains(events[0].Metadata, "camille@example.fr") {
		t.Errorf("metadata = %q, missing sender email", events[0].Metadata)
	}
}

func TestContactFormRejectsIncomplete(t *testing.T) {
	env := newTestEnv(t, nil)
	h := NewFrontendHandler(env.service, env.renderer, env.events)

	form := url.Values{"name": {"Camille"}, "email": {"pas-un-email"}, "message": {"Bonjour"}}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.sm.LoadAndSave(http.HandlerFunc(h.Contact)).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	events, err := env.events.List(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("List events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events = %+v, invalid submission must not be recorded", events)
	}
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t, nil)
	if err := store.Seed(context.Background(), env.db, "studio@ivision.fr", "tres-long-secret", "Studio"); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	h := NewAuthHandler(env.db, env.renderer, env.sm, fastLoginProtection())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /login", h.LoginForm)
	mux.HandleFunc("POST /login", h.Login)
	handler := env.sm.LoadAndSave(mux)

	// Wrong password is rejected
	form := url.Values{"email": {"studio@ivision.fr"}, "password": {"wrong-password"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", rec.Code)
	}

	// Correct password logs in and redirects to the admin area
	form = url.Values{"email": {"studio@ivision.fr"}, "password": {"tres-long-secret"}}
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != RouteAdminProjects {
		t.Errorf("Location = %q, want %q", loc, RouteAdminProjects)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie after login")
	}
}

func TestLoginUnknownUserStaysGeneric(t *testing.T) {
	env := newTestEnv(t, nil)
	h := NewAuthHandler(env.db, env.renderer, env.sm, fastLoginProtection())

	form := url.Values{"email": {"nobody@ivision.fr"}, "password": {"whatever-long"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.sm.LoadAndSave(http.HandlerFunc(h.Login)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "nobody") && strings.Contains(rec.Body.String(), "existe") {
		t.Error("response must not reveal whether the account exists")
	}
}

func TestAdminProjectCreate(t *testing.T) {
	env := newTestEnv(t, nil)
	h := NewAdminHandler(env.service, env.renderer, env.events)

	form := url.Values{
		"title":        {"Minimalist Furniture"},
		"category":     {model.CategoryPhoto},
		"image_url":    {"https://images.example.com/furniture.jpg"},
		"client":       {"Maison Nord"},
		"metric_label": {"Engagement", ""},
		"metric_value": {"+32%", ""},
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/projects", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.sm.LoadAndSave(http.HandlerFunc(h.ProjectCreate)).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	projects, _, err := env.service.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "Minimalist Furniture" {
		t.Fatalf("projects = %+v", projects)
	}
	if len(projects[0].Metrics) != 1 || projects[0].Metrics[0].Label != "Engagement" {
		t.Errorf("metrics = %+v, blank rows should be dropped", projects[0].Metrics)
	}
}

func TestAdminProjectCreateWithoutMedia(t *testing.T) {
	env := newTestEnv(t, nil)
	h := NewAdminHandler(env.service, env.renderer, env.events)

	form := url.Values{
		"title":    {"Sans média"},
		"category": {model.CategoryDesign},
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/projects", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.sm.LoadAndSave(http.HandlerFunc(h.ProjectCreate)).ServeHTTP(rec, req)

	// Hard validation failure redirects back with a flash
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	projects, _, _ := env.service.List(context.Background())
	if len(projects) != 0 {
		t.Errorf("projects = %+v, want none", projects)
	}
}
