package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newModelsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the model cost table",
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
			cheapest, _ := table.Cheapest()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tCOST/CALL\tCOST/1K CALLS\t")
			fmt.Fprintln(w, "-----\t---------\t-------------\t")
			for _, m := range table.Models() {
				marker := ""
				if m.Name == cheapest.Name {
					marker = "(cheapest)"
				}
				fmt.Fprintf(w, "%s\t$%.4f\t$%.2f\t%s\n", m.Name, m.PerCall, m.PerCall*1000, marker)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d models\n", table.Len())
			return nil
		},
	}
}
