// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLimiterCache(t *testing.T) {
	lc := newLimiterCache[string](1, 2)

	// Same key returns the same limiter
	a := lc.get("10.0.0.1")
	b := lc.get("10.0.0.1")
	if a != b {
		t.Error("expected the same limiter for the same key")
	}

	// Different keys get independent limiters
	c := lc.get("10.0.0.2")
	if a == c {
		t.Error("expected a distinct limiter for a different key")
	}
}

func TestLimiterCacheClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[int](1, 1)
	for i := 0; i < 5; i++ {
		lc.get(i)
	}

	if lc.clearIfExceeds(10) {
		t.Error("cache below the threshold should not be cleared")
	}
	if !lc.clearIfExceeds(3) {
		t.Error("cache above the threshold should be cleared")
	}
	if lc.clearIfExceeds(3) {
		t.Error("freshly cleared cache should not be cleared again")
	}
}

func TestGlobalRateLimiterMiddleware(t *testing.T) {
	rl := NewGlobalRateLimiter(1, 2)
	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Burst of 2 allowed, third request rejected
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set("X-Real-IP", "192.0.2.1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("X-Real-IP", "192.0.2.1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "rate_limit_exceeded" {
		t.Errorf("error code = %q, want rate_limit_exceeded", body.Error.Code)
	}
}

func TestGlobalRateLimiterSeparateIPs(t *testing.T) {
	rl := NewGlobalRateLimiter(1, 1)
	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, ip := range []string{"192.0.2.10", "192.0.2.11"} {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set("X-Real-IP", ip)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("ip %s: status = %d, want 200", ip, rec.Code)
		}
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		realIP     string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{name: "X-Real-IP wins", realIP: "1.2.3.4", forwarded: "5.6.7.8", remoteAddr: "9.9.9.9:1234", want: "1.2.3.4"},
		{name: "X-Forwarded-For next", forwarded: "5.6.7.8", remoteAddr: "9.9.9.9:1234", want: "5.6.7.8"},
		{name: "RemoteAddr fallback", remoteAddr: "9.9.9.9:1234", want: "9.9.9.9:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
