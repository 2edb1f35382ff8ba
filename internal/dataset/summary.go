package dataset

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"pulse-insights-go/internal/aggregator"
	"pulse-insights-go/internal/scale"
	"pulse-insights-go/internal/types"
)

const (
	SheetSummary      = "Summary"
	SheetDepartments  = "Departments"
	SheetDistribution = "Mood Distribution"
	SheetDaily        = "Daily Trends"
	SheetEntries      = "Entries"
)

// Report is everything written to an analytics workbook.
type Report struct {
	Window      string
	Department  string
	GeneratedAt time.Time
	Summary     aggregator.Summary
	Departments []aggregator.DepartmentStat
	Moods       []aggregator.MoodCount
	Daily       []aggregator.DailyPoint
	Entries     []types.PulseEntry
}

// WriteReport renders r as an xlsx workbook into w.
func WriteReport(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetDepartments, SheetDistribution, SheetDaily, SheetEntries} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %s: %w", name, err)
		}
	}

	s := r.Summary
	summary := [][]any{
		{"Metric", "Value"},
		{"Window", r.Window},
		{"Department", r.Department},
		{"Generated", r.GeneratedAt.Format(time.RFC3339)},
		{"Entries", s.Entries},
		{"Unique employees", s.UniqueEmployees},
		{"Check-ins today", s.TodayCount},
		{"Average mood", round1(s.AverageMood)},
		{"Mood", labelOrDash(s.AverageMood, scale.MoodLabel)},
		{"Average energy", round1(s.AverageEnergy)},
		{"Energy", labelOrDash(s.AverageEnergy, scale.EnergyLabel)},
		{"Average stress", round1(s.AverageStress)},
		{"Stress", labelOrDash(s.AverageStress, scale.StressLabel)},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}

	depts := [][]any{{"Department", "Entries", "Average mood"}}
	for _, d := range r.Departments {
		depts = append(depts, []any{d.Name, d.Count, round1(d.AverageMood)})
	}
	if err := writeRows(f, SheetDepartments, depts); err != nil {
		return err
	}

	moods := [][]any{{"Mood", "Entries"}}
	for _, m := range r.Moods {
		moods = append(moods, []any{m.Label, m.Count})
	}
	if err := writeRows(f, SheetDistribution, moods); err != nil {
		return err
	}

	daily := [][]any{{"Date", "Entries", "Mood", "Energy", "Stress"}}
	for _, d := range r.Daily {
		daily = append(daily, []any{d.Date, d.Entries, round1(d.Mood), round1(d.Energy), round1(d.Stress)})
	}
	if err := writeRows(f, SheetDaily, daily); err != nil {
		return err
	}

	entries := [][]any{{"Employee", "Department", "Mood", "Energy", "Stress", "Collaboration", "Productivity", "Notes", "Submitted"}}
	for _, e := range r.Entries {
		entries = append(entries, []any{
			e.EmployeeName, types.DisplayName(e.Department), types.DisplayName(e.OverallMood),
			types.DisplayName(e.EnergyLevel), types.DisplayName(e.StressLevel),
			types.DisplayName(e.CollaborationFeeling), types.DisplayName(e.ProductivityFeeling),
			e.Notes, e.SubmissionTime.Format("2006-01-02 15:04:05"),
		})
	}
	if err := writeRows(f, SheetEntries, entries); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func labelOrDash(avg float64, label func(float64) string) string {
	if avg <= 0 {
		return "--"
	}
	return label(avg)
}
