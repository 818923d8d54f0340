// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestIsValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !IsValidCategory(c) {
			t.Errorf("IsValidCategory(%q) = false, want true", c)
		}
	}
	if IsValidCategory("Podcasts") {
		t.Error("IsValidCategory accepted an unknown category")
	}
	if IsValidCategory("") {
		t.Error("IsValidCategory accepted the empty string")
	}
}

func TestIsValidSize(t *testing.T) {
	for _, s := range Sizes {
		if !IsValidSize(s) {
			t.Errorf("IsValidSize(%q) = false, want true", s)
		}
	}
	if !IsValidSize("") {
		t.Error("empty size should be valid (defaults to normal)")
	}
	if IsValidSize("huge") {
		t.Error("IsValidSize accepted an unknown size")
	}
}

func TestProjectHasMedia(t *testing.T) {
	tests := []struct {
		name     string
		imageURL string
		videoURL string
		want     bool
	}{
		{"both empty", "", "", false},
		{"image only", "https://example.com/a.jpg", "", true},
		{"video only", "", "https://example.com/a.mp4", true},
		{"both set", "https://example.com/a.jpg", "https://example.com/a.mp4", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project{ImageURL: tt.imageURL, VideoURL: tt.videoURL}
			if got := p.HasMedia(); got != tt.want {
				t.Errorf("HasMedia() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectClone(t *testing.T) {
	p := Project{
		ID:      "1",
		Title:   "Neon Energy Drink",
		Metrics: []Metric{{Label: "Vues", Value: "2.4M"}},
	}

	c := p.Clone()
	c.Metrics[0].Value = "0"

	if p.Metrics[0].Value != "2.4M" {
		t.Error("Clone shares the metrics slice with the original")
	}
}

func TestAdsStats(t *testing.T) {
	stats := AdsStats()
	if len(stats) != 6 {
		t.Fatalf("expected 6 months of data, got %d", len(stats))
	}
	for i := 1; i < len(stats); i++ {
		if stats[i].ROAS <= stats[i-1].ROAS {
			t.Errorf("ROAS series should be increasing, got %v then %v", stats[i-1].ROAS, stats[i].ROAS)
		}
	}
}
