// Package scale converts the categorical check-in answers to a 1..5 scale and
// converts averages on that scale back to display labels.
package scale

import (
	"errors"
	"fmt"

	"pulse-insights-go/internal/types"
)

// ErrInvalidCategory is matched by every CategoryError.
var ErrInvalidCategory = errors.New("invalid category")

// CategoryError reports a value outside its enumeration.
type CategoryError struct {
	Field string
	Value string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("invalid category %q for %s", e.Value, e.Field)
}

func (e *CategoryError) Is(target error) bool { return target == ErrInvalidCategory }

var (
	moodScale = map[types.Mood]int{
		types.MoodVeryPositive: 5,
		types.MoodPositive:     4,
		types.MoodNeutral:      3,
		types.MoodNegative:     2,
		types.MoodVeryNegative: 1,
	}
	energyScale = map[types.Energy]int{
		types.EnergyVeryHigh: 5,
		types.EnergyHigh:     4,
		types.EnergyModerate: 3,
		types.EnergyLow:      2,
		types.EnergyVeryLow:  1,
	}
	// lower is better
	stressScale = map[types.Stress]int{
		types.StressVeryLow:  1,
		types.StressLow:      2,
		types.StressModerate: 3,
		types.StressHigh:     4,
		types.StressVeryHigh: 5,
	}
	productivityScale = map[types.Productivity]int{
		types.ProductivityVeryHigh: 5,
		types.ProductivityHigh:     4,
		types.ProductivityModerate: 3,
		types.ProductivityLow:      2,
		types.ProductivityVeryLow:  1,
	}
	collaborationScale = map[types.Collaboration]int{
		types.CollaborationExcellent: 5,
		types.CollaborationGood:      4,
		types.CollaborationFair:      3,
		types.CollaborationPoor:      2,
		types.CollaborationVeryPoor:  1,
	}
)

func lookup[K ~string](field string, table map[K]int, v K) (int, error) {
	n, ok := table[v]
	if !ok {
		return 0, &CategoryError{Field: field, Value: string(v)}
	}
	return n, nil
}

func Mood(m types.Mood) (int, error) { return lookup("overall_mood", moodScale, m) }

func Energy(e types.Energy) (int, error) { return lookup("energy_level", energyScale, e) }

// Stress maps very_low to 1 and very_high to 5. Summaries and labels use this scale.
func Stress(s types.Stress) (int, error) { return lookup("stress_level", stressScale, s) }

// StressInverted maps very_low to 5 and very_high to 1 so that a higher value
// reads as better, matching mood and energy on the per-entry trend chart.
func StressInverted(s types.Stress) (int, error) {
	n, err := Stress(s)
	if err != nil {
		return 0, err
	}
	return 6 - n, nil
}

func Productivity(p types.Productivity) (int, error) {
	return lookup("productivity_feeling", productivityScale, p)
}

func Collaboration(c types.Collaboration) (int, error) {
	return lookup("collaboration_feeling", collaborationScale, c)
}
