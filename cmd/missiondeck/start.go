package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/zulandar/missiondeck/internal/config"
	"github.com/zulandar/missiondeck/internal/event"
	"github.com/zulandar/missiondeck/internal/mission"
	"github.com/zulandar/missiondeck/internal/telegraph"
	"github.com/zulandar/missiondeck/internal/telegraph/discord"
	"github.com/zulandar/missiondeck/internal/telegraph/slack"
)

func newStartCmd() *cobra.Command {
	var (
		configPath string
		files      []string
	)

	cmd := &cobra.Command{
		Use:   "start <prompt>",
		Short: "Start a mission and stream it to completion",
		Long:  "Creates a mission on the backend from the given prompt, subscribes to its event stream, and renders events until the mission completes. Ctrl+C cancels the mission locally.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(cmd, configPath, strings.Join(args, " "), files)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "missiondeck.yaml", "path to Missiondeck config file")
	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "file to attach to the mission (repeatable)")
	return cmd
}

func runStart(cmd *cobra.Command, configPath, prompt string, files []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
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

	return followMission(cmd, ctrl, cfg, func(ctx context.Context) (string, error) {
		return ctrl.Start(ctx, prompt, files)
	})
}

// syncWriter serializes writes; stream callbacks render from the stream
// goroutine while the command goroutine prints status lines.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// followMission runs connect, renders the stream until the mission finishes,
// and cancels the mission on interrupt.
func followMission(cmd *cobra.Command, ctrl *mission.Controller, cfg *config.Config, connect func(context.Context) (string, error)) error {
	out := &syncWriter{w: cmd.OutOrStdout()}

	finished := make(chan error, 1)
	ctrl.OnEvent = func(evt event.Event) {
		renderEvent(out, evt)
		if _, ok := evt.(event.WorkflowUpdateEvent); ok {
			snap := ctrl.Store().Snapshot()
			if err := renderGraph(out, snap.Nodes, cfg.Layout); err != nil {
				fmt.Fprintf(out, "graph: %v\n", err)
			}
		}
	}
	ctrl.OnFinish = func(err error) {
		finished <- err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	id, err := connect(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Mission %s started. (Ctrl+C to cancel)\n", id)

	select {
	case <-ctx.Done():
		ctrl.Cancel()
		fmt.Fprintln(out, "Mission paused.")
		return nil
	case err := <-finished:
		if err != nil {
			return fmt.Errorf("mission failed: %w", err)
		}
	}

	snap := ctrl.Store().Snapshot()
	fmt.Fprintf(out, "Mission %s completed: %d messages, %d artifacts.\n",
		snap.Mission.ID, len(snap.Messages), len(snap.Artifacts))
	return nil
}

// notifiersFromConfig builds the configured chat notifiers. Returns nil when
// none are enabled.
func notifiersFromConfig(cfg *config.Config) (telegraph.Notifier, error) {
	var multi telegraph.Multi

	if cfg.Notify.Slack.Enabled() {
		n, err := slack.New(slack.Opts{
			BotToken:  cfg.Notify.Slack.BotToken,
			ChannelID: cfg.Notify.Slack.ChannelID,
		})
		if err != nil {
			return nil, err
		}
		multi = append(multi, n)
	}

	if cfg.Notify.Discord.Enabled() {
		n, err := discord.New(discord.Opts{
			BotToken:  cfg.Notify.Discord.BotToken,
			ChannelID: cfg.Notify.Discord.ChannelID,
		})
		if err != nil {
			return nil, err
		}
		multi = append(multi, n)
	}

	if len(multi) == 0 {
		return nil, nil
	}
	return multi, nil
}
