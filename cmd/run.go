package cmd

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vivarium-sim/vivarium/project"
	"github.com/vivarium-sim/vivarium/sim"
)

var (
	snapshotFlag     string
	saveSnapshotFlag string
)

var runCmd = &cobra.Command{
	Use:   "run <project-dir> <steps>",
	Short: "Load a project and advance its world a fixed number of ticks",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectDir := args[0]
		steps, err := strconv.Atoi(args[1])
		if err != nil || steps < 0 {
			err := fmt.Errorf("invalid steps %q: must be a non-negative integer", args[1])
			logrus.Error(err)
			return err
		}

		config, err := project.Load(projectDir, parseSnapshotSelection(snapshotFlag))
		if err != nil {
			logrus.Errorf("loading project: %v", err)
			return err
		}

		world, err := sim.NewWorld(config)
		if err != nil {
			logrus.Errorf("constructing world: %v", err)
			return err
		}

		for i := 0; i < steps; i++ {
			result, err := world.Update(1)
			if err != nil {
				logrus.Errorf("tick %d failed: %v", world.Clock(), err)
				return err
			}
			logrus.WithFields(logrus.Fields{
				"tick": world.Clock(), "delivered": len(result.Delivered),
			}).Debug("tick complete")
		}
		logrus.Infof("ran %d ticks; clock now at %d", steps, world.Clock())

		if saveSnapshotFlag != "" {
			snap, err := world.Snapshot()
			if err != nil {
				logrus.Errorf("snapshotting world: %v", err)
				return err
			}
			if err := project.Save(projectDir, saveSnapshotFlag, snap); err != nil {
				logrus.Errorf("saving snapshot %q: %v", saveSnapshotFlag, err)
				return err
			}
			logrus.Infof("saved snapshot %q", saveSnapshotFlag)
		}
		return nil
	},
}

func parseSnapshotSelection(flag string) project.SnapshotSelection {
	if flag == "" || flag == "latest" {
		return project.Latest{}
	}
	return project.Name{S: flag}
}

func init() {
	runCmd.Flags().StringVar(&snapshotFlag, "snapshot", "latest", "Snapshot to load: \"latest\" or a snapshot name")
	runCmd.Flags().StringVar(&saveSnapshotFlag, "save-snapshot", "", "Snapshot name to save to after the run completes")
	rootCmd.AddCommand(runCmd)
}
