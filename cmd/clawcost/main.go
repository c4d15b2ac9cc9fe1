// Command clawcost estimates the monthly and annual cost of an AI task
// workload under different model routing strategies.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"clawcost/internal/config"
	"clawcost/internal/version"

	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	configPath string
	verbose    bool
}

// newRootCmd builds the command tree. The root command prints the cost
// report; subcommands inspect the tables it is computed from.
func newRootCmd() *cobra.Command {
	root := &rootOptions{}
	opts := &reportOptions{root: root}

	cmd := &cobra.Command{
		Use:   "clawcost",
		Short: "Estimate AI workload cost under different model routing strategies",
		Long: `clawcost compares the monthly and annual cost of a task workload under
three routing strategies: optimized per-task routing, a blanket downgrade to
a cheap model, and a single-model baseline. Heartbeat polling is priced as a
separate overlay.`,
		Example: `  clawcost
  clawcost --tasks 500 --heartbeat-interval 15
  clawcost --custom-distribution '{"chat": 0.5, "editorial": 0.5}'
  clawcost --heartbeat-schedule "*/10 8-18 * * 1-5" --format json`,
		Version:       version.Full(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), root.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&root.configPath, "config", "", "YAML file overriding models, distribution and strategies")
	cmd.PersistentFlags().BoolVarP(&root.verbose, "verbose", "v", false, "enable verbose logging")

	opts.bindFlags(cmd)

	cmd.AddCommand(newModelsCmd(root))
	cmd.AddCommand(newStrategiesCmd(root))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func setupLogging(w io.Writer, verbose bool) {
	if !verbose {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Verbose logging enabled")
}

// loadConfig returns the configuration file's contents, or the reference
// configuration when no file was given.
func loadConfig(root *rootOptions) (*config.Config, error) {
	if root.configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(root.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
