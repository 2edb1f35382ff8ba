package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"pulse-insights-go/internal/api"
	"pulse-insights-go/internal/app"
	"pulse-insights-go/internal/config"
	"pulse-insights-go/internal/dashboard"
	"pulse-insights-go/internal/logger"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "pulse-insights-go").Info("starting service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	if err := run(ctx, log); err != nil {
		stop()
		log.WithError(err).Error("server terminated")
		os.Exit(1)
	}
	stop()
}

// run serves until ctx is cancelled or the listener fails. The entry store is
// closed before run returns on every path.
func run(ctx context.Context, log *logger.Logger) (err error) {
	cfg, err := config.Load(os.Getenv("PULSE_CONFIG"))
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log = logger.NewWith(cfg.Environment, cfg.LogLevel, os.Stdout)

	st, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open entry store: %w", err)
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			log.WithError(cerr).Warn("closing entry store")
			if err == nil {
				err = cerr
			}
		}
	}()

	loc, _ := cfg.Location() // validated by config.Load
	svc := dashboard.New(st, log,
		dashboard.WithLocation(loc),
		dashboard.WithLimits(cfg.Views.DashboardLimit, cfg.Views.AnalyticsLimit),
	)

	srv := api.NewServer(api.Config{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		SubmitRate:   cfg.HTTP.SubmitRatePerSec,
		SubmitBurst:  cfg.HTTP.SubmitBurst,
	}, svc, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Listen)
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
