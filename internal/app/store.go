// Package app builds the runtime dependencies shared by the api and pulsectl binaries.
package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"pulse-insights-go/internal/config"
	"pulse-insights-go/internal/store"
	"pulse-insights-go/internal/store/memory"
	"pulse-insights-go/internal/store/remote"
	"pulse-insights-go/internal/store/sqlite"
)

// OpenStore opens the entry store named by cfg.Store.Driver. The returned
// close func is never nil.
func OpenStore(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Driver {
	case config.DriverMemory, "":
		log.Info("using in-memory entry store")
		return memory.NewStore(), noop, nil

	case config.DriverSQLite:
		st, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite store: %w", err)
		}
		log.WithField("path", cfg.Store.SQLitePath).Info("using sqlite entry store")
		return st, st.Close, nil

	case config.DriverRemote:
		c, err := remote.New(remote.Options{
			BaseURL:    cfg.Store.RemoteURL,
			EntityPath: cfg.Store.RemotePath,
			APIKey:     cfg.Store.APIKey,
			Timeout:    cfg.Store.Timeout,
			Log:        log,
		})
		if err != nil {
			return nil, noop, err
		}
		if cfg.Store.WaitReady > 0 {
			if err := c.WaitReady(ctx, cfg.Store.WaitReady); err != nil {
				return nil, noop, fmt.Errorf("entry store at %s not ready: %w", cfg.Store.RemoteURL, err)
			}
		}
		log.WithField("url", cfg.Store.RemoteURL).Info("using remote entry store")
		return c, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
