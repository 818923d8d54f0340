// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/ivision/showcase-go/internal/model"
)

type statsResponse struct {
	Months   []model.AdMetric `json:"months"`
	Headline model.AdsSummary `json:"headline"`
}

// Stats handles GET /api/stats with the static ads performance data.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, statsResponse{
		Months:   model.AdsStats(),
		Headline: model.AdsHeadline(),
	}, nil)
}
