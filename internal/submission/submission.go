package submission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pulse-insights-go/internal/types"
)

// Creator is the part of the entry store a submission needs.
type Creator interface {
	Create(ctx context.Context, entry types.PulseEntry) (types.PulseEntry, error)
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every problem found in a form. It is returned before
// the store is called.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid check-in: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// Validate turns a form into an entry, without ID.
func Validate(form types.EntryForm) (types.PulseEntry, error) {
	verr := &ValidationError{}
	entry := types.PulseEntry{
		EmployeeName:         strings.TrimSpace(form.EmployeeName),
		Department:           types.Department(form.Department),
		OverallMood:          types.Mood(form.OverallMood),
		EnergyLevel:          types.Energy(form.EnergyLevel),
		StressLevel:          types.Stress(form.StressLevel),
		CollaborationFeeling: types.Collaboration(form.CollaborationFeeling),
		ProductivityFeeling:  types.Productivity(form.ProductivityFeeling),
		Notes:                strings.TrimSpace(form.Notes),
		SubmissionTime:       form.SubmissionTime,
	}

	if entry.EmployeeName == "" {
		verr.add("employee_name", "is required")
	}
	required(verr, "department", form.Department, entry.Department.Valid())
	required(verr, "overall_mood", form.OverallMood, entry.OverallMood.Valid())
	required(verr, "energy_level", form.EnergyLevel, entry.EnergyLevel.Valid())
	required(verr, "stress_level", form.StressLevel, entry.StressLevel.Valid())
	if form.CollaborationFeeling != "" && !entry.CollaborationFeeling.Valid() {
		verr.add("collaboration_feeling", fmt.Sprintf("unknown value %q", form.CollaborationFeeling))
	}
	if form.ProductivityFeeling != "" && !entry.ProductivityFeeling.Valid() {
		verr.add("productivity_feeling", fmt.Sprintf("unknown value %q", form.ProductivityFeeling))
	}

	if len(verr.Fields) > 0 {
		return types.PulseEntry{}, verr
	}
	return entry, nil
}

func required(verr *ValidationError, field, raw string, valid bool) {
	switch {
	case raw == "":
		verr.add(field, "is required")
	case !valid:
		verr.add(field, fmt.Sprintf("unknown value %q", raw))
	}
}

// Submit validates the form, stamps the submission time when the form has
// none, and hands the entry to the store. Store failures are returned unchanged.
func Submit(ctx context.Context, c Creator, form types.EntryForm, now time.Time) (types.PulseEntry, error) {
	entry, err := Validate(form)
	if err != nil {
		return types.PulseEntry{}, err
	}
	if entry.SubmissionTime.IsZero() {
		entry.SubmissionTime = now
	}
	return c.Create(ctx, entry)
}
