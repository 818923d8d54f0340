// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"time"

	"github.com/ivision/showcase-go/internal/model"
)

// FallbackProjects returns the built-in demo set shown when no
// persistent backend is configured or reachable. IDs are fixed so the
// gallery stays stable across refreshes.
func FallbackProjects() []model.Project {
	base := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	return []model.Project{
		{
			ID:        "1",
			Title:     "Neon Energy Drink",
			Category:  model.CategoryReels,
			ImageURL:  "https://images.unsplash.com/photo-1626806819282-2c1dc01a5e0c?q=80&w=1000&auto=format&fit=crop",
			VideoURL:  "https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerJoyrides.mp4",
			Client:    "NeonEnergy",
			Size:      model.SizeTall,
			Metrics:   []model.Metric{{Label: "Vues", Value: "2.4M"}, {Label: "Likes", Value: "150k"}},
			CreatedAt: base.Add(3 * time.Hour),
		},
		{
			ID:        "2",
			Title:     "Luxe Automotive",
			Category:  model.CategoryVideo,
			ImageURL:  "https://images.unsplash.com/photo-1503376763036-066120622c74?q=80&w=1000&auto=format&fit=crop",
			VideoURL:  "https://storage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
			Client:    "LuxeAuto",
			Size:      model.SizeWide,
			Metrics:   []model.Metric{{Label: "Conversion", Value: "4.2%"}},
			CreatedAt: base.Add(2 * time.Hour),
		},
		{
			ID:        "3",
			Title:     "Minimalist Furniture",
			Category:  model.CategoryPhoto,
			ImageURL:  "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?q=80&w=1000&auto=format&fit=crop",
			Client:    "NordicHome",
			Size:      model.SizeNormal,
			CreatedAt: base.Add(time.Hour),
		},
		{
			ID:        "4",
			Title:     "Tech Startup Brand",
			Category:  model.CategoryDesign,
			ImageURL:  "https://images.unsplash.com/photo-1626785774573-4b799314346d?q=80&w=1000&auto=format&fit=crop",
			Client:    "FlowApp",
			Size:      model.SizeLarge,
			Metrics:   []model.Metric{{Label: "Brand Lift", Value: "+45%"}},
			CreatedAt: base,
		},
	}
}
