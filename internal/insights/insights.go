package insights

import (
	"fmt"
	"strings"

	"pulse-insights-go/internal/aggregator"
	"pulse-insights-go/internal/scale"
)

// NoData is reported when there is nothing to derive an insight from.
const NoData = "N/A"

type Card struct {
	HasData              bool   `json:"has_data"`
	MostActiveDepartment string `json:"most_active_department"`
	OverallTrend         string `json:"overall_trend"`
}

type MetricCard struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	Subtitle string `json:"subtitle"`
	Color    string `json:"color"`
}

// MostActiveDepartment returns the department with the highest count. On a tie
// the department that appears first in stats wins; stats from
// aggregator.ByDepartment are in first-seen order.
func MostActiveDepartment(stats []aggregator.DepartmentStat) string {
	best := -1
	for i, s := range stats {
		if best < 0 || s.Count > stats[best].Count {
			best = i
		}
	}
	if best < 0 || stats[best].Count == 0 {
		return NoData
	}
	return strings.ReplaceAll(string(stats[best].Department), "_", " ")
}

func OverallTrend(avgMood float64) string {
	switch {
	case avgMood >= 3.5:
		return "Positive Workplace Environment"
	case avgMood >= 2.5:
		return "Stable Team Morale"
	default:
		return "Needs Attention"
	}
}

func Derive(summary aggregator.Summary, departments []aggregator.DepartmentStat) Card {
	return Card{
		HasData:              summary.Entries > 0,
		MostActiveDepartment: MostActiveDepartment(departments),
		OverallTrend:         OverallTrend(summary.AverageMood),
	}
}

// MetricCards builds the four headline cards of the dashboard. An average of 0
// means no data.
func MetricCards(s aggregator.Summary) []MetricCard {
	stressColor := "slate"
	if s.AverageStress > 0 {
		stressColor = scale.StressColor(s.AverageStress)
	}
	team := "--"
	if s.UniqueEmployees > 0 {
		team = fmt.Sprint(s.UniqueEmployees)
	}
	return []MetricCard{
		scoreCard("Team Mood", s.AverageMood, scale.MoodLabel, "emerald"),
		scoreCard("Energy Level", s.AverageEnergy, scale.EnergyLabel, "amber"),
		scoreCard("Stress Level", s.AverageStress, scale.StressLabel, stressColor),
		{
			Title:    "Active Team",
			Value:    team,
			Subtitle: fmt.Sprintf("%d check-ins today", s.TodayCount),
			Color:    "blue",
		},
	}
}

func scoreCard(title string, avg float64, label func(float64) string, color string) MetricCard {
	if avg <= 0 {
		return MetricCard{Title: title, Value: "--", Subtitle: "No data", Color: color}
	}
	return MetricCard{
		Title:    title,
		Value:    label(avg),
		Subtitle: fmt.Sprintf("%.1f/5.0", avg),
		Color:    color,
	}
}
