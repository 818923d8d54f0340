// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		wantHSTS bool
	}{
		{name: "production mode enables HSTS", isDev: false, wantHSTS: true},
		{name: "development mode disables HSTS", isDev: true, wantHSTS: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSecurityHeadersConfig(tt.isDev)
			handler := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			hsts := rec.Header().Get("Strict-Transport-Security")
			if tt.wantHSTS && hsts == "" {
				t.Error("expected HSTS header but got none")
			}
			if !tt.wantHSTS && hsts != "" {
				t.Errorf("expected no HSTS header but got: %s", hsts)
			}

			if rec.Header().Get("Content-Security-Policy") == "" {
				t.Error("expected CSP header but got none")
			}
			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
			}
			if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
				t.Errorf("X-Frame-Options = %q, want SAMEORIGIN", got)
			}
		})
	}
}

func TestSecurityHeadersCSPAllowsEmbeds(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)

	csp := cfg.ContentSecurityPolicy
	for _, origin := range []string{
		"https://www.youtube.com",
		"https://drive.google.com",
	} {
		if !strings.Contains(csp, origin) {
			t.Errorf("CSP missing %s: %s", origin, csp)
		}
	}

	idx := strings.Index(csp, "frame-src")
	if idx < 0 {
		t.Fatalf("CSP has no frame-src directive: %s", csp)
	}
	frameSrc := csp[idx:]
	if end := strings.Index(frameSrc, ";"); end >= 0 {
		frameSrc = frameSrc[:end]
	}
	if !strings.Contains(frameSrc, "https://www.youtube-nocookie.com") {
		t.Errorf("frame-src missing youtube-nocookie: %s", frameSrc)
	}
}

func TestSecurityHeadersExcludePaths(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	cfg.ExcludePaths = []string{"/healthz"}

	handler := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Security-Policy") != "" {
		t.Error("excluded path should not carry CSP header")
	}
}

func TestBuildCSPOrdering(t *testing.T) {
	csp := buildCSP(map[string]string{
		"script-src":  "'self'",
		"default-src": "'self'",
	})
	if !strings.HasPrefix(csp, "default-src") {
		t.Errorf("default-src should come first: %s", csp)
	}
}
