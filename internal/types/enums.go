package types

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Department string

const (
	DepartmentSales           Department = "sales"
	DepartmentMarketing       Department = "marketing"
	DepartmentEngineering     Department = "engineering"
	DepartmentHR              Department = "hr"
	DepartmentOperations      Department = "operations"
	DepartmentFinance         Department = "finance"
	DepartmentCustomerService Department = "customer_service"
	DepartmentManagement      Department = "management"
	DepartmentOther           Department = "other"
)

// Departments lists every accepted department in form order.
var Departments = []Department{
	DepartmentSales, DepartmentMarketing, DepartmentEngineering, DepartmentHR,
	DepartmentOperations, DepartmentFinance, DepartmentCustomerService,
	DepartmentManagement, DepartmentOther,
}

func (d Department) Valid() bool { return contains(Departments, d) }

type Mood string

const (
	MoodVeryPositive Mood = "very_positive"
	MoodPositive     Mood = "positive"
	MoodNeutral      Mood = "neutral"
	MoodNegative     Mood = "negative"
	MoodVeryNegative Mood = "very_negative"
)

// Moods is ordered best to worst; distributions are reported in this order.
var Moods = []Mood{MoodVeryPositive, MoodPositive, MoodNeutral, MoodNegative, MoodVeryNegative}

func (m Mood) Valid() bool { return contains(Moods, m) }

type Energy string

const (
	EnergyVeryHigh Energy = "very_high"
	EnergyHigh     Energy = "high"
	EnergyModerate Energy = "moderate"
	EnergyLow      Energy = "low"
	EnergyVeryLow  Energy = "very_low"
)

var EnergyLevels = []Energy{EnergyVeryHigh, EnergyHigh, EnergyModerate, EnergyLow, EnergyVeryLow}

func (e Energy) Valid() bool { return contains(EnergyLevels, e) }

// Stress is ordered from least to most stressed; low stress is the good end.
type Stress string

const (
	StressVeryLow  Stress = "very_low"
	StressLow      Stress = "low"
	StressModerate Stress = "moderate"
	StressHigh     Stress = "high"
	StressVeryHigh Stress = "very_high"
)

var StressLevels = []Stress{StressVeryLow, StressLow, StressModerate, StressHigh, StressVeryHigh}

func (s Stress) Valid() bool { return contains(StressLevels, s) }

type Collaboration string

const (
	CollaborationExcellent Collaboration = "excellent"
	CollaborationGood      Collaboration = "good"
	CollaborationFair      Collaboration = "fair"
	CollaborationPoor      Collaboration = "poor"
	CollaborationVeryPoor  Collaboration = "very_poor"
)

var CollaborationFeelings = []Collaboration{
	CollaborationExcellent, CollaborationGood, CollaborationFair, CollaborationPoor, CollaborationVeryPoor,
}

func (c Collaboration) Valid() bool { return contains(CollaborationFeelings, c) }

type Productivity string

const (
	ProductivityVeryHigh Productivity = "very_high"
	ProductivityHigh     Productivity = "high"
	ProductivityModerate Productivity = "moderate"
	ProductivityLow      Productivity = "low"
	ProductivityVeryLow  Productivity = "very_low"
)

var ProductivityFeelings = []Productivity{
	ProductivityVeryHigh, ProductivityHigh, ProductivityModerate, ProductivityLow, ProductivityVeryLow,
}

func (p Productivity) Valid() bool { return contains(ProductivityFeelings, p) }

func contains[T comparable](xs []T, v T) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// DisplayName formats a stored key for display: "customer_service" -> "Customer Service".
// A Caser is stateful, so one is built per call.
func DisplayName[T ~string](key T) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(key), "_", " "))
}
