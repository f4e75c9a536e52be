package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/zulandar/missiondeck/internal/config"
	"github.com/zulandar/missiondeck/internal/mission"
)

func newWatchCmd() *cobra.Command {
	var (
		configPath string
		title      string
	)

	cmd := &cobra.Command{
		Use:   "watch <mission-id>",
		Short: "Attach to a running mission's event stream",
		Long:  "Subscribes to an existing mission's event stream and renders events until the mission completes. The mission itself is unaffected by detaching.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, configPath, args[0], title)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "missiondeck.yaml", "path to Missiondeck config file")
	cmd.Flags().StringVar(&title, "title", "", "display title for the mission")
	return cmd
}

func runWatch(cmd *cobra.Command, configPath, missionID, title string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctrl, err := mission.New(mission.Opts{BackendURL: cfg.BackendURL})
	if err != nil {
		return err
	}

	return followMission(cmd, ctrl, cfg, func(ctx context.Context) (string, error) {
		return missionID, ctrl.Attach(ctx, missionID, title)
	})
}
