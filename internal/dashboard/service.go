// Package dashboard loads entry snapshots from the store and runs the
// aggregation over them for the dashboard and analytics views.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"pulse-insights-go/internal/aggregator"
	"pulse-insights-go/internal/dataset"
	"pulse-insights-go/internal/filter"
	"pulse-insights-go/internal/insights"
	"pulse-insights-go/internal/store"
	"pulse-insights-go/internal/submission"
	"pulse-insights-go/internal/types"
)

type Service struct {
	store          store.Store
	log            logrus.FieldLogger
	now            func() time.Time
	loc            *time.Location
	dashboardLimit int
	analyticsLimit int
}

type Option func(*Service)

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLimits(dashboard, analytics int) Option {
	return func(s *Service) {
		if dashboard > 0 {
			s.dashboardLimit = dashboard
		}
		if analytics > 0 {
			s.analyticsLimit = analytics
		}
	}
}

func New(st store.Store, log logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		store:          st,
		log:            log.WithField("component", "dashboard"),
		now:            time.Now,
		loc:            time.Local,
		dashboardLimit: store.DashboardLimit,
		analyticsLimit: store.AnalyticsLimit,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) clock() time.Time { return s.now().In(s.loc) }

// snapshot fetches the newest entries. A store failure is logged and yields an
// empty snapshot so the views fall back to their no-data values.
func (s *Service) snapshot(ctx context.Context, limit int) []types.PulseEntry {
	entries, err := s.store.List(ctx, store.ListOptions{Sort: store.SortNewestFirst, Limit: limit})
	if err != nil {
		s.log.WithError(err).WithField("limit", limit).Warn("entry fetch failed, using empty snapshot")
		return nil
	}
	return entries
}

func (s *Service) Dashboard(ctx context.Context) (DashboardView, error) {
	now := s.clock()
	entries := s.snapshot(ctx, s.dashboardLimit)

	summary, err := aggregator.Summarize(entries, now)
	if err != nil {
		return DashboardView{}, fmt.Errorf("summarize: %w", err)
	}
	depts, err := aggregator.ByDepartment(entries)
	if err != nil {
		return DashboardView{}, fmt.Errorf("departments: %w", err)
	}
	recent := entries
	if len(recent) > TrendEntries {
		recent = recent[:TrendEntries]
	}
	trend, err := aggregator.TrendSeries(recent, s.loc)
	if err != nil {
		return DashboardView{}, fmt.Errorf("trend: %w", err)
	}

	return DashboardView{
		GeneratedAt: now,
		Summary:     summary,
		Metrics:     insights.MetricCards(summary),
		Insights:    insights.Derive(summary, depts),
		Trend:       trend,
		Recent:      nonNil(entries),
	}, nil
}

func (s *Service) Analytics(ctx context.Context, window filter.Window, department string) (AnalyticsView, error) {
	now := s.clock()
	if department == "" {
		department = filter.AllDepartments
	}
	all := s.snapshot(ctx, s.analyticsLimit)
	entries := filter.Filter(all, window, department, now)

	summary, err := aggregator.Summarize(entries, now)
	if err != nil {
		return AnalyticsView{}, fmt.Errorf("summarize: %w", err)
	}
	depts, err := aggregator.ByDepartment(entries)
	if err != nil {
		return AnalyticsView{}, fmt.Errorf("departments: %w", err)
	}
	moods, err := aggregator.MoodDistribution(entries)
	if err != nil {
		return AnalyticsView{}, fmt.Errorf("mood distribution: %w", err)
	}
	daily, err := aggregator.DailySeries(entries, s.loc)
	if err != nil {
		return AnalyticsView{}, fmt.Errorf("daily series: %w", err)
	}

	// the selector offers every department in the snapshot, not just the filtered set
	options := []DepartmentOption{}
	for _, d := range filter.Departments(all) {
		options = append(options, DepartmentOption{Value: string(d), Name: types.DisplayName(d)})
	}

	return AnalyticsView{
		GeneratedAt:       now,
		Window:            string(window),
		Department:        department,
		Summary:           summary,
		Departments:       depts,
		MoodDistribution:  moods,
		Daily:             daily,
		DepartmentOptions: options,
		entries:           entries,
	}, nil
}

// ExportAnalytics writes the analytics view as an xlsx workbook.
func (s *Service) ExportAnalytics(ctx context.Context, w io.Writer, window filter.Window, department string) error {
	view, err := s.Analytics(ctx, window, department)
	if err != nil {
		return err
	}
	return dataset.WriteReport(w, dataset.Report{
		Window:      view.Window,
		Department:  view.Department,
		GeneratedAt: view.GeneratedAt,
		Summary:     view.Summary,
		Departments: view.Departments,
		Moods:       view.MoodDistribution,
		Daily:       view.Daily,
		Entries:     view.entries,
	})
}

// Entries lists raw entries. Unlike the views, store failures are returned.
func (s *Service) Entries(ctx context.Context, opts store.ListOptions) ([]types.PulseEntry, error) {
	entries, err := s.store.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	return nonNil(entries), nil
}

func (s *Service) Submit(ctx context.Context, form types.EntryForm) (types.PulseEntry, error) {
	entry, err := submission.Submit(ctx, s.store, form, s.now())
	if err != nil {
		var verr *submission.ValidationError
		if errors.As(err, &verr) {
			s.log.WithField("fields", len(verr.Fields)).Info("check-in rejected")
		} else {
			s.log.WithError(err).Error("check-in not stored")
		}
		return types.PulseEntry{}, err
	}
	s.log.WithFields(logrus.Fields{
		"entry_id":   entry.ID,
		"department": entry.Department,
	}).Info("check-in stored")
	return entry, nil
}

// ImportResult reports a bulk submission.
type ImportResult struct {
	Created int      `json:"created"`
	Failed  []string `json:"failed,omitempty"`
}

// Import submits each row in turn. Invalid rows are recorded by sheet line and
// skipped; a store failure stops the import.
func (s *Service) Import(ctx context.Context, rows []dataset.Row) (ImportResult, error) {
	var res ImportResult
	for _, r := range rows {
		if _, err := s.Submit(ctx, r.Form); err != nil {
			var verr *submission.ValidationError
			if errors.As(err, &verr) {
				res.Failed = append(res.Failed, fmt.Sprintf("row %d: %v", r.Line, err))
				continue
			}
			return res, err
		}
		res.Created++
	}
	return res, nil
}

func nonNil(entries []types.PulseEntry) []types.PulseEntry {
	if entries == nil {
		return []types.PulseEntry{}
	}
	return entries
}
