package types

import "time"

// PulseEntry is one employee's daily check-in as stored by the entry store.
// Entries are append-only; nothing in this module mutates a stored entry.
type PulseEntry struct {
	ID                   string        `json:"id"`
	EmployeeName         string        `json:"employee_name"`
	Department           Department    `json:"department"`
	OverallMood          Mood          `json:"overall_mood"`
	EnergyLevel          Energy        `json:"energy_level"`
	StressLevel          Stress        `json:"stress_level"`
	CollaborationFeeling Collaboration `json:"collaboration_feeling,omitempty"`
	ProductivityFeeling  Productivity  `json:"productivity_feeling,omitempty"`
	Notes                string        `json:"notes,omitempty"`
	SubmissionTime       time.Time     `json:"submission_time"`
}

// EntryForm is the raw check-in form state before validation.
type EntryForm struct {
	EmployeeName         string    `json:"employee_name"`
	Department           string    `json:"department"`
	OverallMood          string    `json:"overall_mood"`
	EnergyLevel          string    `json:"energy_level"`
	StressLevel          string    `json:"stress_level"`
	CollaborationFeeling string    `json:"collaboration_feeling,omitempty"`
	ProductivityFeeling  string    `json:"productivity_feeling,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	SubmissionTime       time.Time `json:"submission_time,omitempty"`
}
