package dashboard

import (
	"time"

	"pulse-insights-go/internal/aggregator"
	"pulse-insights-go/internal/insights"
	"pulse-insights-go/internal/types"
)

// TrendEntries is how many of the newest entries feed the dashboard trend chart.
const TrendEntries = 10

type DashboardView struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Summary     aggregator.Summary      `json:"summary"`
	Metrics     []insights.MetricCard   `json:"metrics"`
	Insights    insights.Card           `json:"insights"`
	Trend       []aggregator.TrendPoint `json:"trend"`
	Recent      []types.PulseEntry      `json:"recent"`
}

type DepartmentOption struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

type AnalyticsView struct {
	GeneratedAt       time.Time                   `json:"generated_at"`
	Window            string                      `json:"window"`
	Department        string                      `json:"department"`
	Summary           aggregator.Summary          `json:"summary"`
	Departments       []aggregator.DepartmentStat `json:"departments"`
	MoodDistribution  []aggregator.MoodCount      `json:"mood_distribution"`
	Daily             []aggregator.DailyPoint     `json:"daily"`
	DepartmentOptions []DepartmentOption          `json:"department_options"`

	entries []types.PulseEntry
}
