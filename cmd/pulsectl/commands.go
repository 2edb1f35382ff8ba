package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pulse-insights-go/internal/dataset"
	"pulse-insights-go/internal/filter"
	"pulse-insights-go/internal/types"
)

func (c *cli) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show headline metrics, insights and recent check-ins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := c.svc.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		},
	}
}

func (c *cli) analyticsCmd() *cobra.Command {
	var window, department string
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show the analytics view for a window and department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := filter.ParseWindow(window)
			if err != nil {
				return err
			}
			view, err := c.svc.Analytics(cmd.Context(), w, department)
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		},
	}
	cmd.Flags().StringVarP(&window, "window", "w", string(filter.DefaultWindow), "Time window (1d, 7d, 30d)")
	cmd.Flags().StringVarP(&department, "department", "d", filter.AllDepartments, "Department key or all")
	return cmd
}

func (c *cli) logCmd() *cobra.Command {
	var form types.EntryForm
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a check-in",
		Example: `  pulsectl log --name "Ada" --department engineering --mood positive \
    --energy high --stress low`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry, err := c.svc.Submit(cmd.Context(), form)
			if err != nil {
				return err
			}
			return printJSON(cmd, entry)
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.EmployeeName, "name", "", "Employee name")
	f.StringVar(&form.Department, "department", "", "Department key")
	f.StringVar(&form.OverallMood, "mood", "", "Overall mood (very_positive .. very_negative)")
	f.StringVar(&form.EnergyLevel, "energy", "", "Energy level (very_high .. very_low)")
	f.StringVar(&form.StressLevel, "stress", "", "Stress level (very_low .. very_high)")
	f.StringVar(&form.CollaborationFeeling, "collaboration", "", "Collaboration feeling (excellent .. very_poor)")
	f.StringVar(&form.ProductivityFeeling, "productivity", "", "Productivity feeling (very_high .. very_low)")
	f.StringVar(&form.Notes, "notes", "", "Free-text notes")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Submit check-ins from the first sheet of an xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := dataset.Load(args[0])
			if err != nil {
				return err
			}
			res, err := c.svc.Import(cmd.Context(), rows)
			if err != nil {
				return fmt.Errorf("import stopped after %d entries: %w", res.Created, err)
			}
			return printJSON(cmd, res)
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var window, department, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the analytics view to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := filter.ParseWindow(window)
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := c.svc.ExportAnalytics(cmd.Context(), f, w, department); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&window, "window", "w", string(filter.DefaultWindow), "Time window (1d, 7d, 30d)")
	cmd.Flags().StringVarP(&department, "department", "d", filter.AllDepartments, "Department key or all")
	cmd.Flags().StringVarP(&out, "out", "o", "pulse-analytics.xlsx", "Output path")
	return cmd
}
