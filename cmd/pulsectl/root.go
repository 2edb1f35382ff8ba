package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pulse-insights-go/internal/app"
	"pulse-insights-go/internal/config"
	"pulse-insights-go/internal/dashboard"
	"pulse-insights-go/internal/logger"
)

// cli carries the state shared by every subcommand.
type cli struct {
	cfgFile    string
	svc        *dashboard.Service
	closeStore func() error
}

// newRootCmd builds the command tree around c. The caller closes c once the
// command has run, whether it succeeded or not.
func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "pulsectl",
		Short: "Employee pulse check-ins and team mood analytics",
		Long: `pulsectl records daily check-ins and reports team mood from the entry store.

Commands:
  dashboard   Headline metrics, insights and recent check-ins
  analytics   Filtered summary, department stats and daily trends
  log         Record a check-in
  import      Submit check-ins from an xlsx sheet
  export      Write the analytics view to an xlsx workbook`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "Config file (default: $PULSE_CONFIG)")

	root.AddCommand(
		c.dashboardCmd(),
		c.analyticsCmd(),
		c.logCmd(),
		c.importCmd(),
		c.exportCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	path := strings.TrimSpace(c.cfgFile)
	if path == "" {
		path = os.Getenv("PULSE_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	log := logger.NewWith(cfg.Environment, cfg.LogLevel, cmd.ErrOrStderr())

	st, closeStore, err := app.OpenStore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	loc, _ := cfg.Location()
	c.closeStore = closeStore
	c.svc = dashboard.New(st, log,
		dashboard.WithLocation(loc),
		dashboard.WithLimits(cfg.Views.DashboardLimit, cfg.Views.AnalyticsLimit),
	)
	return nil
}

// close releases the store opened by setup. It is safe to call more than once.
func (c *cli) close() error {
	if c.closeStore == nil {
		return nil
	}
	err := c.closeStore()
	c.closeStore = nil
	return err
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
