package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vivarium-sim/vivarium/project"
)

var initProjectCmd = &cobra.Command{
	Use:   "init-project <target-dir>",
	Short: "Scaffold a new vivarium project directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetDir := args[0]
		if err := project.Scaffold(targetDir); err != nil {
			logrus.Errorf("init-project failed: %v", err)
			return err
		}
		logrus.Infof("scaffolded project at %s", targetDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initProjectCmd)
}
