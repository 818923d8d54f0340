// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"
)

// Project categories as shown on the public site. Values are the French
// labels the agency uses; they are stored verbatim in the backend.
const (
	CategoryReels  = "Reels & TikTok"
	CategoryVideo  = "Vidéo 16:9"
	CategoryPhoto  = "Photographie"
	CategoryDesign = "Design"
	CategoryAds    = "Résultats Ads"
)

// Categories lists all valid project categories in display order.
var Categories = []string{
	CategoryReels,
	CategoryVideo,
	CategoryPhoto,
	CategoryDesign,
	CategoryAds,
}

// Grid size hints. These only affect gallery layout, never data semantics.
const (
	SizeNormal   = "normal"
	SizeTall     = "tall"
	SizeWide     = "wide"
	SizeLarge    = "large"
	SizePortrait = "portrait"
)

// Sizes lists all valid grid size hints.
var Sizes = []string{SizeNormal, SizeTall, SizeWide, SizeLarge, SizePortrait}

// Project is a single portfolio entry.
//
// IDs are strings: the hosted backend assigns serial ids, the in-memory
// demo source assigns UUIDs. Either ImageURL or VideoURL may be empty but
// a usable card needs at least one of them; that rule is enforced at
// submit time by the validator, not here.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url,omitempty"`
	VideoURL    string    `json:"video_url,omitempty"`
	Client      string    `json:"client,omitempty"`
	Description string    `json:"description,omitempty"`
	Size        string    `json:"size,omitempty"`
	Metrics     []Metric  `json:"metrics,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Metric is a single headline figure attached to a project ("Vues: 2.4M").
// Order is significant and preserved by the store.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// IsValidCategory reports whether c is one of the known categories.
func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// IsValidSize reports whether s is a known grid size hint.
// The empty string is valid and treated as "normal".
func IsValidSize(s string) bool {
	if s == "" {
		return true
	}
	for _, v := range Sizes {
		if v == s {
			return true
		}
	}
	return false
}

// HasMedia reports whether the project carries at least one media URL.
func (p *Project) HasMedia() bool {
	return p.ImageURL != "" || p.VideoURL != ""
}

// Clone returns a deep copy of the project, including its metrics slice.
func (p *Project) Clone() Project {
	out := *p
	if p.Metrics != nil {
		out.Metrics = make([]Metric, len(p.Metrics))
		copy(out.Metrics, p.Metrics)
	}
	return out
}
