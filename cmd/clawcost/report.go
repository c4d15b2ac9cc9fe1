package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"clawcost/internal/report"
	"clawcost/internal/workload"

	"github.com/spf13/cobra"
)

// reportOptions holds the root command's report flags.
type reportOptions struct {
	root *rootOptions

	tasks              int
	heartbeatInterval  int
	heartbeatSchedule  string
	customDistribution string
	format             string
}

func (o *reportOptions) bindFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&o.tasks, "tasks", 100, "total tasks per month, excluding heartbeats")
	f.IntVar(&o.heartbeatInterval, "heartbeat-interval", 30, "heartbeat polling interval in minutes")
	f.StringVar(&o.heartbeatSchedule, "heartbeat-schedule", "", "heartbeat cron schedule; overrides --heartbeat-interval")
	f.StringVar(&o.customDistribution, "custom-distribution", "", `task distribution as JSON, e.g. '{"chat": 0.5, "editorial": 0.5}'`)
	f.StringVar(&o.format, "format", "text", "output format: text or json")
}

func runReport(cmd *cobra.Command, opts *reportOptions) error {
	render, err := rendererFor(opts.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.root)
	if err != nil {
		return err
	}

	// Flags win over the config file only when given explicitly.
	flags := cmd.Flags()
	if flags.Changed("tasks") {
		cfg.Tasks = opts.tasks
	}
	if flags.Changed("heartbeat-interval") {
		cfg.Heartbeat.IntervalMinutes = opts.heartbeatInterval
		cfg.Heartbeat.Schedule = ""
	}
	if flags.Changed("heartbeat-schedule") {
		cfg.Heartbeat.Schedule = opts.heartbeatSchedule
	}
	// An empty value is the same as leaving the flag out.
	if strings.TrimSpace(opts.customDistribution) != "" {
		d, err := workload.ParseJSON(opts.customDistribution)
		if errors.Is(err, workload.ErrMalformedJSON) {
			return fmt.Errorf("invalid JSON for custom distribution: %w", err)
		}
		if err != nil {
			return fmt.Errorf("custom distribution: %w", err)
		}
		cfg.Distribution = d
	}

	dist, normalized, err := cfg.Distribution.Normalize()
	if err != nil {
		return err
	}
	if normalized {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Distribution sums to %g, not 1.0. Normalizing...\n", cfg.Distribution.Total())
	}

	table, err := cfg.CostTable()
	if err != nil {
		return err
	}

	c, err := report.Build(report.Inputs{
		Tasks:        float64(cfg.Tasks),
		Cadence:      cfg.Heartbeat.Cadence(),
		Distribution: dist,
		Costs:        table,
		Strategies:   cfg.Strategies,
		Normalized:   normalized,
	})
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), c)
}

func rendererFor(format string) (func(w io.Writer, c *report.Comparison) error, error) {
	switch format {
	case "text", "":
		return report.RenderText, nil
	case "json":
		return report.RenderJSON, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (must be text or json)", format)
	}
}
