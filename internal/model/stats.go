// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// AdMetric is one month of advertising performance for the dashboard chart.
type AdMetric struct {
	Name    string  `json:"name"`
	ROAS    float64 `json:"roas"`
	Spend   float64 `json:"spend"`
	Revenue float64 `json:"revenue"`
}

// AdsSummary is the headline block above the chart.
type AdsSummary struct {
	AverageROAS      float64 `json:"average_roas"`
	RevenueGenerated string  `json:"revenue_generated"`
}

// AdsStats returns the static performance data set shown on the dashboard.
// The agency updates these figures by hand between campaigns.
func AdsStats() []AdMetric {
	return []AdMetric{
		{Name: "Jan", ROAS: 2.1, Spend: 7100, Revenue: 15000},
		{Name: "Fév", ROAS: 3.2, Spend: 8750, Revenue: 28000},
		{Name: "Mar", ROAS: 3.8, Spend: 9200, Revenue: 35000},
		{Name: "Avr", ROAS: 4.5, Spend: 11500, Revenue: 52000},
		{Name: "Mai", ROAS: 5.9, Spend: 13200, Revenue: 78000},
		{Name: "Juin", ROAS: 7.2, Spend: 13100, Revenue: 95000},
	}
}

// AdsHeadline returns the aggregate figures shown next to the chart.
func AdsHeadline() AdsSummary {
	return AdsSummary{AverageROAS: 4.8, RevenueGenerated: "2M€+"}
}
