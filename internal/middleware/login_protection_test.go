// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// testLoginProtectionConfig returns a config suitable for fast tests.
func testLoginProtectionConfig(maxAttempts int, lockout, window time.Duration) LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: maxAttempts,
		LockoutDuration:   lockout,
		AttemptWindow:     window,
	}
}

func TestDefaultLoginProtectionConfig(t *testing.T) {
	cfg := DefaultLoginProtectionConfig()

	if cfg.IPRateLimit != 0.5 {
		t.Errorf("IPRateLimit = %v, want 0.5", cfg.IPRateLimit)
	}
	if cfg.MaxFailedAttempts != 5 {
		t.Errorf("MaxFailedAttempts = %d, want 5", cfg.MaxFailedAttempts)
	}
	if cfg.LockoutDuration != 15*time.Minute {
		t.Errorf("LockoutDuration = %v, want 15m", cfg.LockoutDuration)
	}
}

func TestAccountLockout(t *testing.T) {
	lp := NewLoginProtection(testLoginProtectionConfig(3, time.Hour, time.Hour))
	email := "studio@ivision.fr"

	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Fatal("fresh account should not be locked")
	}

	// Two failures keep the account open
	for i := 0; i < 2; i++ {
		if locked, _ := lp.RecordFailedAttempt(email); locked {
			t.Fatalf("attempt %d should not lock the account", i+1)
		}
	}

	// Third failure trips the lock
	locked, dur := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("third failed attempt should lock the account")
	}
	if dur != time.Hour {
		t.Errorf("lockout duration = %v, want 1h", dur)
	}

	if locked, remaining := lp.IsAccountLocked(email); !locked || remaining <= 0 {
		t.Errorf("IsAccountLocked() = (%v, %v), want locked with time remaining", locked, remaining)
	}
}

func TestLockoutExponentialBackoff(t *testing.T) {
	lp := NewLoginProtection(testLoginProtectionConfig(1, time.Minute, time.Hour))
	email := "studio@ivision.fr"

	_, first := lp.RecordFailedAttempt(email)
	if first != time.Minute {
		t.Fatalf("first lockout = %v, want 1m", first)
	}

	// Simulate the lock expiring, then fail again
	lp.attemptsMu.Lock()
	lp.failedAttempts[email].lockedUntil = time.Now().Add(-time.Second)
	lp.attemptsMu.Unlock()

	_, second := lp.RecordFailedAttempt(email)
	if second != 2*time.Minute {
		t.Errorf("second lockout = %v, want 2m", second)
	}
}

func TestRecordSuccessfulLoginClearsAttempts(t *testing.T) {
	lp := NewLoginProtection(testLoginProtectionConfig(5, time.Hour, time.Hour))
	email := "studio@ivision.fr"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	if got := lp.GetRemainingAttempts(email); got != 3 {
		t.Fatalf("GetRemainingAttempts() = %d, want 3", got)
	}

	lp.RecordSuccessfulLogin(email)
	if got := lp.GetRemainingAttempts(email); got != 5 {
		t.Errorf("GetRemainingAttempts() after success = %d, want 5", got)
	}
}

func TestAttemptWindowReset(t *testing.T) {
	lp := NewLoginProtection(testLoginProtectionConfig(3, time.Hour, 50*time.Millisecond))
	email := "studio@ivision.fr"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)

	time.Sleep(60 * time.Millisecond)

	// Window has passed, counter starts over
	if locked, _ := lp.RecordFailedAttempt(email); locked {
		t.Error("attempt after the window should not lock the account")
	}
	if got := lp.GetRemainingAttempts(email); got != 2 {
		t.Errorf("GetRemainingAttempts() = %d, want 2", got)
	}
}

func TestLoginProtectionMiddleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       1,
		IPBurst:           1,
		MaxFailedAttempts: 5,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
	handler := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// GET requests bypass the limiter
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.Header.Set("X-Real-IP", "192.0.2.5")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	// First POST allowed, second throttled
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("X-Real-IP", "192.0.2.5")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first POST: status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("X-Real-IP", "192.0.2.5")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second POST: status = %d, want 429", rec.Code)
	}
}
