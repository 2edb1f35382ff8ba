package aggregator

import (
	"fmt"
	"sort"
	"time"

	"pulse-insights-go/internal/scale"
	"pulse-insights-go/internal/types"
)

// DayLayout formats the day buckets of the daily series ("Mar 05").
const DayLayout = "Jan 02"

// MaxDailyPoints bounds the daily series to the most recent days.
const MaxDailyPoints = 7

type Summary struct {
	Entries              int     `json:"entries"`
	AverageMood          float64 `json:"average_mood"`
	AverageEnergy        float64 `json:"average_energy"`
	AverageStress        float64 `json:"average_stress"`
	AverageProductivity  float64 `json:"average_productivity"`
	AverageCollaboration float64 `json:"average_collaboration"`
	UniqueEmployees      int     `json:"unique_employees"`
	TodayCount           int     `json:"today_count"`
}

type DepartmentStat struct {
	Department  types.Department `json:"department"`
	Name        string           `json:"name"`
	Count       int              `json:"count"`
	AverageMood float64          `json:"average_mood"`
}

type MoodCount struct {
	Mood  types.Mood `json:"mood"`
	Label string     `json:"label"`
	Count int        `json:"count"`
}

type DailyPoint struct {
	Date    string  `json:"date"`
	Entries int     `json:"entries"`
	Mood    float64 `json:"mood"`
	Energy  float64 `json:"energy"`
	Stress  float64 `json:"stress"`
}

// TrendPoint is one entry on the trend chart. Stress is inverted so a higher
// line is better for all three series.
type TrendPoint struct {
	Date           string `json:"date"`
	Mood           int    `json:"mood"`
	Energy         int    `json:"energy"`
	StressInverted int    `json:"stress_inverted"`
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v int) {
	m.sum += float64(v)
	m.n++
}

// value is 0 when nothing was added.
func (m mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}

type scores struct {
	mood, energy, stress int
}

func score(e types.PulseEntry) (scores, error) {
	var s scores
	var err error
	if s.mood, err = scale.Mood(e.OverallMood); err != nil {
		return s, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	if s.energy, err = scale.Energy(e.EnergyLevel); err != nil {
		return s, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	if s.stress, err = scale.Stress(e.StressLevel); err != nil {
		return s, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	return s, nil
}

// Summarize computes the global metrics. Today is the calendar date of now in
// now's location.
func Summarize(entries []types.PulseEntry, now time.Time) (Summary, error) {
	var mood, energy, stress, productivity, collaboration mean
	employees := map[string]struct{}{}
	today := 0
	ty, tm, td := now.Date()

	for _, e := range entries {
		s, err := score(e)
		if err != nil {
			return Summary{}, err
		}
		mood.add(s.mood)
		energy.add(s.energy)
		stress.add(s.stress)

		if e.ProductivityFeeling != "" {
			v, err := scale.Productivity(e.ProductivityFeeling)
			if err != nil {
				return Summary{}, fmt.Errorf("entry %s: %w", e.ID, err)
			}
			productivity.add(v)
		}
		if e.CollaborationFeeling != "" {
			v, err := scale.Collaboration(e.CollaborationFeeling)
			if err != nil {
				return Summary{}, fmt.Errorf("entry %s: %w", e.ID, err)
			}
			collaboration.add(v)
		}

		employees[e.EmployeeName] = struct{}{}
		y, m, d := e.SubmissionTime.In(now.Location()).Date()
		if y == ty && m == tm && d == td {
			today++
		}
	}

	return Summary{
		Entries:              len(entries),
		AverageMood:          mood.value(),
		AverageEnergy:        energy.value(),
		AverageStress:        stress.value(),
		AverageProductivity:  productivity.value(),
		AverageCollaboration: collaboration.value(),
		UniqueEmployees:      len(employees),
		TodayCount:           today,
	}, nil
}

// ByDepartment groups by the stored department key and reports departments in
// the order they first appear.
func ByDepartment(entries []types.PulseEntry) ([]DepartmentStat, error) {
	var order []types.Department
	moods := map[types.Department]*mean{}
	for _, e := range entries {
		v, err := scale.Mood(e.OverallMood)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		m, ok := moods[e.Department]
		if !ok {
			m = &mean{}
			moods[e.Department] = m
			order = append(order, e.Department)
		}
		m.add(v)
	}

	out := make([]DepartmentStat, 0, len(order))
	for _, d := range order {
		out = append(out, DepartmentStat{
			Department:  d,
			Name:        types.DisplayName(d),
			Count:       moods[d].n,
			AverageMood: moods[d].value(),
		})
	}
	return out, nil
}

// MoodDistribution counts entries per mood in fixed best-to-worst order,
// including moods with no entries.
func MoodDistribution(entries []types.PulseEntry) ([]MoodCount, error) {
	counts := map[types.Mood]int{}
	for _, e := range entries {
		if !e.OverallMood.Valid() {
			return nil, fmt.Errorf("entry %s: %w", e.ID, &scale.CategoryError{Field: "overall_mood", Value: string(e.OverallMood)})
		}
		counts[e.OverallMood]++
	}
	out := make([]MoodCount, 0, len(types.Moods))
	for _, m := range types.Moods {
		out = append(out, MoodCount{Mood: m, Label: types.DisplayName(m), Count: counts[m]})
	}
	return out, nil
}

type dayBucket struct {
	label                string
	latest               time.Time
	mood, energy, stress mean
}

// DailySeries averages mood, energy and stress per day label in loc. Buckets are
// keyed by the formatted label, so equal labels merge. The result is ascending
// by date and keeps only the newest MaxDailyPoints days.
func DailySeries(entries []types.PulseEntry, loc *time.Location) ([]DailyPoint, error) {
	if loc == nil {
		loc = time.Local
	}
	buckets := map[string]*dayBucket{}
	var order []*dayBucket
	for _, e := range entries {
		s, err := score(e)
		if err != nil {
			return nil, err
		}
		t := e.SubmissionTime.In(loc)
		label := t.Format(DayLayout)
		b, ok := buckets[label]
		if !ok {
			b = &dayBucket{label: label}
			buckets[label] = b
			order = append(order, b)
		}
		if t.After(b.latest) {
			b.latest = t
		}
		b.mood.add(s.mood)
		b.energy.add(s.energy)
		b.stress.add(s.stress)
	}

	sort.SliceStable(order, func(i, j int) bool { return order[i].latest.Before(order[j].latest) })
	if len(order) > MaxDailyPoints {
		order = order[len(order)-MaxDailyPoints:]
	}

	out := make([]DailyPoint, 0, len(order))
	for _, b := range order {
		out = append(out, DailyPoint{
			Date:    b.label,
			Entries: b.mood.n,
			Mood:    b.mood.value(),
			Energy:  b.energy.value(),
			Stress:  b.stress.value(),
		})
	}
	return out, nil
}

// TrendSeries maps each entry to a chart point, in input order.
func TrendSeries(entries []types.PulseEntry, loc *time.Location) ([]TrendPoint, error) {
	if loc == nil {
		loc = time.Local
	}
	out := make([]TrendPoint, 0, len(entries))
	for _, e := range entries {
		s, err := score(e)
		if err != nil {
			return nil, err
		}
		inv, err := scale.StressInverted(e.StressLevel)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		out = append(out, TrendPoint{
			Date:           e.SubmissionTime.In(loc).Format(DayLayout),
			Mood:           s.mood,
			Energy:         s.energy,
			StressInverted: inv,
		})
	}
	return out, nil
}
