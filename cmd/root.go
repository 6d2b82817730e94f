// Package cmd wires the traintrack CLI.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "traintrack",
		Short: "Training telemetry for machine-learning experiments.",
		Long: `traintrack runs training loops and fans scalar telemetry out to
pluggable sinks: structured logs, dashboard event files, an experiment
database, Prometheus, and a message stream.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a config file")
	cmd.AddCommand(newTrainCmd())
	return cmd
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
