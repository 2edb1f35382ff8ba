package scale

// Tiers are inclusive on their lower bound: exactly 4.5 is Excellent.
func MoodLabel(avg float64) string {
	switch {
	case avg >= 4.5:
		return "Excellent"
	case avg >= 3.5:
		return "Good"
	case avg >= 2.5:
		return "Fair"
	case avg >= 1.5:
		return "Poor"
	default:
		return "Critical"
	}
}

func EnergyLabel(avg float64) string {
	switch {
	case avg >= 4.5:
		return "Very High"
	case avg >= 3.5:
		return "High"
	case avg >= 2.5:
		return "Moderate"
	case avg >= 1.5:
		return "Low"
	default:
		return "Very Low"
	}
}

// StressLabel reads the Stress scale, where lower is better.
func StressLabel(avg float64) string {
	switch {
	case avg <= 1.5:
		return "Very Low"
	case avg <= 2.5:
		return "Low"
	case avg <= 3.5:
		return "Moderate"
	case avg <= 4.5:
		return "High"
	default:
		return "Critical"
	}
}

func StressColor(avg float64) string {
	switch {
	case avg <= 2.5:
		return "emerald"
	case avg <= 3.5:
		return "amber"
	default:
		return "red"
	}
}
