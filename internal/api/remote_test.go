package api

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse-insights-go/internal/dashboard"
	"pulse-insights-go/internal/dataset"
	"pulse-insights-go/internal/logger"
	"pulse-insights-go/internal/store"
	"pulse-insights-go/internal/store/memory"
	"pulse-insights-go/internal/store/remote"
	"pulse-insights-go/internal/types"
)

// upstream serves a pulse API over real HTTP and returns a remote store client
// pointed at it.
func upstream(t *testing.T, st store.Store) *remote.Client {
	t.Helper()
	s := newTestServer(t, st, Config{})
	hs := httptest.NewServer(adaptor.FiberApp(s.App()))
	t.Cleanup(hs.Close)

	c, err := remote.New(remote.Options{BaseURL: hs.URL, Log: logger.Discard()})
	require.NoError(t, err)
	return c
}

func TestImportThroughRemoteStoreKeepsSubmissionTime(t *testing.T) {
	st := memory.NewStore()
	downstream := dashboard.New(upstream(t, st), logger.Discard(),
		dashboard.WithClock(func() time.Time { return now }),
	)

	imported := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	res, err := downstream.Import(context.Background(), []dataset.Row{
		{Line: 2, Form: types.EntryForm{
			EmployeeName: "Ada", Department: "engineering", OverallMood: "positive",
			EnergyLevel: "high", StressLevel: "low", SubmissionTime: imported,
		}},
		{Line: 3, Form: types.EntryForm{
			EmployeeName: "Bob", Department: "sales", OverallMood: "neutral",
			EnergyLevel: "low", StressLevel: "moderate",
		}},
	})
	require.NoError(t, err)
	require.Equal(t, 2, res.Created)

	stored, err := st.List(context.Background(), store.ListOptions{Sort: store.SortOldestFirst})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Ada", stored[0].EmployeeName)
	assert.True(t, imported.Equal(stored[0].SubmissionTime), "stored %s", stored[0].SubmissionTime)
	assert.True(t, now.Equal(stored[1].SubmissionTime), "an unset time is stamped with the clock")
}

func TestRemoteListWithoutLimitReturnsEverything(t *testing.T) {
	seed := make([]types.PulseEntry, 0, 60)
	for i := 0; i < 60; i++ {
		seed = append(seed, types.PulseEntry{
			EmployeeName: fmt.Sprintf("emp-%02d", i), Department: types.DepartmentHR,
			OverallMood: types.MoodNeutral, EnergyLevel: types.EnergyLow, StressLevel: types.StressLow,
			SubmissionTime: now.Add(-time.Duration(i) * time.Minute),
		})
	}
	c := upstream(t, memory.NewStore(seed...))

	all, err := c.List(context.Background(), store.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 60)

	page, err := c.List(context.Background(), store.ListOptions{Limit: 5})
	require.NoError(t, err)
	require.Len(t, page, 5)
	assert.Equal(t, "emp-00", page[0].EmployeeName)
}
