package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/zulandar/missiondeck/internal/config"
	"github.com/zulandar/missiondeck/internal/mission"
	"github.com/zulandar/missiondeck/internal/schedule"
)

func newScheduleCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run configured mission schedules",
		Long:  "Starts missions on the cron schedules in the config file and keeps running until interrupted. Scheduled missions run unattended; configure notifiers to hear about completions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "missiondeck.yaml", "path to Missiondeck config file")
	return cmd
}

func runSchedule(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if len(cfg.Schedules) == 0 {
		return fmt.Errorf("no schedules configured in %s", configPath)
	}

	notifier, err := notifiersFromConfig(cfg)
	if err != nil {
		return err
	}
	if notifier != nil {
		defer notifier.Close()
	}

	ctrl, err := mission.New(mission.Opts{
		BackendURL: cfg.BackendURL,
		Notifier:   notifier,
	})
	if err != nil {
		return err
	}

	runner, err := schedule.NewRunner(cfg.Schedules, ctrl)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Running %d schedule(s)... (Ctrl+C to stop)\n", len(cfg.Schedules))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner.Run(ctx)
	return nil
}
