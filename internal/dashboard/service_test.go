package dashboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"

	"pulse-insights-go/internal/dataset"
	"pulse-insights-go/internal/filter"
	"pulse-insights-go/internal/insights"
	"pulse-insights-go/internal/logger"
	"pulse-insights-go/internal/scale"
	"pulse-insights-go/internal/store"
	"pulse-insights-go/internal/store/memory"
	"pulse-insights-go/internal/submission"
	"pulse-insights-go/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type failingStore struct{ err error }

func (f failingStore) List(context.Context, store.ListOptions) ([]types.PulseEntry, error) {
	return nil, store.Wrap("list", f.err)
}

func (f failingStore) Create(context.Context, types.PulseEntry) (types.PulseEntry, error) {
	return types.PulseEntry{}, store.Wrap("create", f.err)
}

func newService(st store.Store, opts ...Option) *Service {
	opts = append([]Option{WithClock(func() time.Time { return now }), WithLocation(time.UTC)}, opts...)
	return New(st, logger.Discard(), opts...)
}

func seeded() *memory.Store {
	mk := func(name string, dept types.Department, mood types.Mood, energy types.Energy, stress types.Stress, ago time.Duration) types.PulseEntry {
		return types.PulseEntry{
			EmployeeName: name, Department: dept, OverallMood: mood, EnergyLevel: energy,
			StressLevel: stress, SubmissionTime: now.Add(-ago),
		}
	}
	return memory.NewStore(
		mk("Alice", types.DepartmentEngineering, types.MoodVeryPositive, types.EnergyHigh, types.StressLow, time.Hour),
		mk("Bob", types.DepartmentSales, types.MoodNeutral, types.EnergyLow, types.StressHigh, 2*time.Hour),
		mk("Cara", types.DepartmentSales, types.MoodPositive, types.EnergyModerate, types.StressModerate, 3*24*time.Hour),
		mk("Dan", types.DepartmentHR, types.MoodNegative, types.EnergyVeryLow, types.StressVeryHigh, 12*24*time.Hour),
	)
}

func TestDashboard(t *testing.T) {
	view, err := newService(seeded()).Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, view.Summary.Entries)
	assert.InDelta(t, 3.5, view.Summary.AverageMood, 1e-9)
	assert.Equal(t, 4, view.Summary.UniqueEmployees)
	assert.Equal(t, 2, view.Summary.TodayCount)
	require.Len(t, view.Metrics, 4)
	assert.Equal(t, "Good", view.Metrics[0].Value)
	assert.Equal(t, "sales", view.Insights.MostActiveDepartment)
	assert.Equal(t, "Positive Workplace Environment", view.Insights.OverallTrend)
	require.Len(t, view.Recent, 4)
	assert.Equal(t, "Alice", view.Recent[0].EmployeeName, "newest first")
	require.Len(t, view.Trend, 4)
	assert.Equal(t, 4, view.Trend[0].StressInverted)
}

func TestDashboardHonoursLimit(t *testing.T) {
	view, err := newService(seeded(), WithLimits(2, 0)).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, view.Summary.Entries)
}

func TestStoreErrorDegradesToEmpty(t *testing.T) {
	svc := newService(failingStore{err: errors.New("service unavailable")})

	view, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, view.Summary.AverageMood)
	assert.Equal(t, insights.NoData, view.Insights.MostActiveDepartment)
	assert.False(t, view.Insights.HasData)
	assert.NotNil(t, view.Recent)
	assert.Equal(t, "--", view.Metrics[0].Value)

	a, err := svc.Analytics(context.Background(), filter.WindowWeek, "all")
	require.NoError(t, err)
	assert.Zero(t, a.Summary.Entries)
	require.Len(t, a.MoodDistribution, 5)
	assert.Empty(t, a.Daily)
	assert.Empty(t, a.DepartmentOptions)

	_, err = svc.Entries(context.Background(), store.ListOptions{})
	var se *store.Error
	assert.True(t, errors.As(err, &se), "raw listing surfaces the store error")
}

func TestAnalyticsFilters(t *testing.T) {
	svc := newService(seeded())

	week, err := svc.Analytics(context.Background(), filter.WindowWeek, "")
	require.NoError(t, err)
	assert.Equal(t, "all", week.Department)
	assert.Equal(t, 3, week.Summary.Entries)
	require.Len(t, week.Departments, 2)
	assert.Equal(t, "Engineering", week.Departments[0].Name)
	assert.Equal(t, 2, week.Departments[1].Count)
	assert.Len(t, week.DepartmentOptions, 3, "options come from the unfiltered snapshot")
	require.Len(t, week.Daily, 2)
	assert.Equal(t, "Mar 12", week.Daily[0].Date)
	assert.Equal(t, "Mar 15", week.Daily[1].Date)

	eng, err := svc.Analytics(context.Background(), filter.WindowMonth, "engineering")
	require.NoError(t, err)
	assert.Equal(t, 1, eng.Summary.Entries)
	assert.Equal(t, 1, eng.MoodDistribution[0].Count)

	day, err := svc.Analytics(context.Background(), filter.WindowDay, "marketing")
	require.NoError(t, err)
	assert.Zero(t, day.Summary.Entries)
}

func TestAnalyticsInvalidCategory(t *testing.T) {
	st := memory.NewStore(types.PulseEntry{
		EmployeeName: "Zed", Department: types.DepartmentOther, OverallMood: "great",
		EnergyLevel: types.EnergyHigh, StressLevel: types.StressLow, SubmissionTime: now.Add(-time.Hour),
	})
	_, err := newService(st).Analytics(context.Background(), filter.WindowWeek, "all")
	assert.ErrorIs(t, err, scale.ErrInvalidCategory)
}

func TestSubmit(t *testing.T) {
	st := memory.NewStore()
	svc := newService(st)

	e, err := svc.Submit(context.Background(), types.EntryForm{
		EmployeeName: "Alice", Department: "engineering", OverallMood: "positive",
		EnergyLevel: "high", StressLevel: "low",
	})
	require.NoError(t, err)
	assert.True(t, now.Equal(e.SubmissionTime))
	assert.Equal(t, 1, st.Len())

	_, err = svc.Submit(context.Background(), types.EntryForm{EmployeeName: "Bob"})
	var verr *submission.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, st.Len())
}

func TestImport(t *testing.T) {
	valid := func(name, dept string) types.EntryForm {
		return types.EntryForm{EmployeeName: name, Department: dept, OverallMood: "neutral", EnergyLevel: "low", StressLevel: "low"}
	}
	st := memory.NewStore()
	res, err := newService(st).Import(context.Background(), []dataset.Row{
		{Line: 2, Form: valid("A", "hr")},
		{Line: 5, Form: types.EntryForm{EmployeeName: "B", Department: "hr"}},
		{Line: 6, Form: valid("C", "finance")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	require.Len(t, res.Failed, 1)
	assert.Contains(t, res.Failed[0], "row 5:")

	_, err = newService(failingStore{err: errors.New("down")}).Import(context.Background(), []dataset.Row{
		{Line: 2, Form: valid("A", "hr")},
	})
	var se *store.Error
	assert.True(t, errors.As(err, &se))
}

func TestImportReportsSheetLines(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := [][]any{
		{"Employee", "Department", "Mood", "Energy", "Stress"},
		{"Ada", "engineering", "positive", "high", "low"},
		{},
		{},
		{"Bob", "nowhere", "neutral", "low", "low"},
	}
	for i, row := range sheet {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := dataset.LoadReader(&buf)
	require.NoError(t, err)
	res, err := newService(memory.NewStore()).Import(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Failed, 1)
	assert.True(t, strings.HasPrefix(res.Failed[0], "row 5: "), res.Failed[0])
}

func TestExportAnalytics(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newService(seeded()).ExportAnalytics(context.Background(), &buf, filter.WindowWeek, "sales"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(dataset.SheetEntries)
	require.NoError(t, err)
	assert.Len(t, rows, 3, "header plus two sales entries")
}
