package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse-insights-go/internal/config"
	"pulse-insights-go/internal/logger"
	"pulse-insights-go/internal/store"
	"pulse-insights-go/internal/store/memory"
	"pulse-insights-go/internal/store/remote"
	"pulse-insights-go/internal/store/sqlite"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	log := logger.Discard()

	t.Run("memory", func(t *testing.T) {
		cfg := config.Default()
		st, closeFn, err := OpenStore(ctx, cfg, log)
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, st)
		assert.NoError(t, closeFn())
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.Driver = config.DriverSQLite
		cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "pulse.db")
		st, closeFn, err := OpenStore(ctx, cfg, log)
		require.NoError(t, err)
		assert.IsType(t, &sqlite.Store{}, st)
		assert.NoError(t, closeFn())
	})

	t.Run("remote waits for readiness", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 2 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		defer srv.Close()

		cfg := config.Default()
		cfg.Store.Driver = config.DriverRemote
		cfg.Store.RemoteURL = srv.URL
		cfg.Store.WaitReady = 5 * time.Second
		st, _, err := OpenStore(ctx, cfg, log)
		require.NoError(t, err)
		assert.IsType(t, &remote.Client{}, st)
		assert.EqualValues(t, 2, calls.Load())

		entries, err := st.List(ctx, store.ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.Driver = "postgres"
		_, closeFn, err := OpenStore(ctx, cfg, log)
		assert.ErrorContains(t, err, "postgres")
		assert.NotNil(t, closeFn)
	})
}
