package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"customer_service", "Customer Service"},
		{"hr", "Hr"},
		{"engineering", "Engineering"},
		{"very_positive", "Very Positive"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.in))
		})
	}
}

func TestEnumValid(t *testing.T) {
	assert.True(t, DepartmentCustomerService.Valid())
	assert.False(t, Department("Engineering").Valid())
	assert.True(t, MoodNeutral.Valid())
	assert.False(t, Mood("").Valid())
	assert.True(t, StressVeryHigh.Valid())
	assert.False(t, Energy("extreme").Valid())
	assert.True(t, CollaborationVeryPoor.Valid())
	assert.True(t, ProductivityModerate.Valid())
}
