package main

import (
	"fmt"

	"clawcost/internal/version"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "clawcost %s\n", version.Full())
			buildInfo := version.GetBuildInfo()

			if buildInfo.GitCommit != "unknown" {
				fmt.Fprintf(out, "Git commit: %s\n", buildInfo.GitCommit)
			}
			if buildInfo.BuildDate != "unknown" {
				fmt.Fprintf(out, "Build date: %s\n", buildInfo.BuildDate)
			}
			fmt.Fprintf(out, "Go version: %s\n", buildInfo.GoVersion)
			return nil
		},
	}
}
