// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStats(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Data statsResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Months) != 6 {
		t.Errorf("months = %d, want 6", len(resp.Data.Months))
	}
	if resp.Data.Months[0].Name != "Jan" || resp.Data.Months[0].ROAS != 2.1 {
		t.Errorf("first month = %+v", resp.Data.Months[0])
	}
	if resp.Data.Headline.RevenueGenerated != "2M€+" {
		t.Errorf("headline = %+v", resp.Data.Headline)
	}
}
