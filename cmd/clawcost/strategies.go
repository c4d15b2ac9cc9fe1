package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStrategiesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "Show how each strategy routes task types to models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			table, err := cfg.CostTable()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			for i, s := range cfg.Strategies.All() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s: %s\n", s.Name, s.Label)

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "  TASK TYPE\tMODEL")
				fmt.Fprintln(w, "  ---------\t-----")
				for _, taskType := range cfg.Distribution.TaskTypes() {
					model, err := s.ModelFor(taskType)
					if err != nil {
						model = "-"
					}
					fmt.Fprintf(w, "  %s\t%s\n", taskType, model)
				}
				heartbeat, err := s.HeartbeatModelIn(table)
				if err != nil {
					heartbeat = "-"
				} else if s.HeartbeatModel == "" {
					heartbeat += " (cheapest)"
				}
				fmt.Fprintf(w, "  (heartbeat overlay)\t%s\n", heartbeat)
				if err := w.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
