// Package cmd implements the vivarium CLI: a Cobra root command with
// init-project and run subcommands, using package-level flag vars, logrus
// diagnostics, and an os.Exit(1)-on-error Execute().
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	_ "github.com/vivarium-sim/vivarium/sim/script" // registers the Lua-backed ScriptController factory
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "vivarium",
	Short: "Deterministic discrete-event simulator for scripted entity populations",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the root command and exits the process with a non-zero
// status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
}
