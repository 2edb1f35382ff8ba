package scale

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse-insights-go/internal/types"
)

func TestScalesStayInRange(t *testing.T) {
	for _, m := range types.Moods {
		n, err := Mood(m)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 5)
	}
	for _, e := range types.EnergyLevels {
		n, err := Energy(e)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 5)
	}
	for _, s := range types.StressLevels {
		n, err := Stress(s)
		require.NoError(t, err)
		inv, err := StressInverted(s)
		require.NoError(t, err)
		assert.Equal(t, 6, n+inv, "stress %s", s)
	}
	for _, p := range types.ProductivityFeelings {
		n, err := Productivity(p)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
	}
	for _, c := range types.CollaborationFeelings {
		n, err := Collaboration(c)
		require.NoError(t, err)
		assert.LessOrEqual(t, n, 5)
	}
}

func TestKnownValues(t *testing.T) {
	n, _ := Mood(types.MoodVeryPositive)
	assert.Equal(t, 5, n)
	n, _ = Energy(types.EnergyLow)
	assert.Equal(t, 2, n)
	n, _ = Stress(types.StressVeryLow)
	assert.Equal(t, 1, n)
	n, _ = StressInverted(types.StressVeryLow)
	assert.Equal(t, 5, n)
	n, _ = Collaboration(types.CollaborationGood)
	assert.Equal(t, 4, n)
}

func TestInvalidCategory(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (int, error)
	}{
		{"mood empty", func() (int, error) { return Mood("") }},
		{"mood wrong case", func() (int, error) { return Mood("Positive") }},
		{"energy", func() (int, error) { return Energy("extreme") }},
		{"stress", func() (int, error) { return Stress("none") }},
		{"stress inverted", func() (int, error) { return StressInverted("") }},
		{"productivity", func() (int, error) { return Productivity("great") }},
		{"collaboration", func() (int, error) { return Collaboration("high") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.fn()
			require.Error(t, err)
			assert.Zero(t, n)
			assert.True(t, errors.Is(err, ErrInvalidCategory))
			var ce *CategoryError
			assert.True(t, errors.As(err, &ce))
		})
	}
}

func TestLabelBoundaries(t *testing.T) {
	assert.Equal(t, "Excellent", MoodLabel(4.5))
	assert.Equal(t, "Good", MoodLabel(4.49))
	assert.Equal(t, "Good", MoodLabel(3.5))
	assert.Equal(t, "Fair", MoodLabel(2.5))
	assert.Equal(t, "Poor", MoodLabel(1.5))
	assert.Equal(t, "Critical", MoodLabel(1.49))

	assert.Equal(t, "Very High", EnergyLabel(4.5))
	assert.Equal(t, "Very Low", EnergyLabel(1))

	assert.Equal(t, "Very Low", StressLabel(1.5))
	assert.Equal(t, "Low", StressLabel(1.51))
	assert.Equal(t, "Moderate", StressLabel(3.5))
	assert.Equal(t, "High", StressLabel(4.5))
	assert.Equal(t, "Critical", StressLabel(4.51))

	assert.Equal(t, "emerald", StressColor(2.5))
	assert.Equal(t, "amber", StressColor(3.5))
	assert.Equal(t, "red", StressColor(3.6))
}

// Every category, mapped and labelled, lands in the tier of the same name.
func TestRoundTripTiers(t *testing.T) {
	moodTiers := map[types.Mood]string{
		types.MoodVeryPositive: "Excellent",
		types.MoodPositive:     "Good",
		types.MoodNeutral:      "Fair",
		types.MoodNegative:     "Poor",
		types.MoodVeryNegative: "Critical",
	}
	for m, want := range moodTiers {
		n, err := Mood(m)
		require.NoError(t, err)
		assert.Equal(t, want, MoodLabel(float64(n)), "mood %s", m)
	}
	for _, e := range types.EnergyLevels {
		n, err := Energy(e)
		require.NoError(t, err)
		assert.Equal(t, types.DisplayName(e), EnergyLabel(float64(n)))
	}
	stressTiers := map[types.Stress]string{
		types.StressVeryLow:  "Very Low",
		types.StressLow:      "Low",
		types.StressModerate: "Moderate",
		types.StressHigh:     "High",
		types.StressVeryHigh: "Critical",
	}
	for s, want := range stressTiers {
		n, err := Stress(s)
		require.NoError(t, err)
		assert.Equal(t, want, StressLabel(float64(n)), "stress %s", s)
	}
}
