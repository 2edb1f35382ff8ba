package filter

import (
	"fmt"
	"time"

	"pulse-insights-go/internal/types"
)

// Window is the trailing span used to select entries for analytics.
type Window string

const (
	WindowDay   Window = "1d"
	WindowWeek  Window = "7d"
	WindowMonth Window = "30d"

	DefaultWindow = WindowWeek

	// AllDepartments disables the department predicate.
	AllDepartments = "all"
)

func (w Window) Days() int {
	switch w {
	case WindowDay:
		return 1
	case WindowMonth:
		return 30
	default:
		return 7
	}
}

func ParseWindow(s string) (Window, error) {
	switch w := Window(s); w {
	case WindowDay, WindowWeek, WindowMonth:
		return w, nil
	case "":
		return DefaultWindow, nil
	default:
		return "", fmt.Errorf("unknown window %q (want 1d, 7d or 30d)", s)
	}
}

// Cutoff is now minus the window in calendar days.
func (w Window) Cutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -w.Days())
}

// Filter keeps entries submitted strictly after the window cutoff and, unless
// department is empty or "all", whose stored department key equals department.
// Input order is preserved.
func Filter(entries []types.PulseEntry, window Window, department string, now time.Time) []types.PulseEntry {
	cutoff := window.Cutoff(now)
	out := make([]types.PulseEntry, 0, len(entries))
	for _, e := range entries {
		if !e.SubmissionTime.After(cutoff) {
			continue
		}
		if department != "" && department != AllDepartments && string(e.Department) != department {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Departments returns the distinct departments in first-seen order.
func Departments(entries []types.PulseEntry) []types.Department {
	seen := map[types.Department]bool{}
	var out []types.Department
	for _, e := range entries {
		if seen[e.Department] {
			continue
		}
		seen[e.Department] = true
		out = append(out, e.Department)
	}
	return out
}
