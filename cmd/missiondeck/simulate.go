package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/zulandar/missiondeck/internal/catalog"
	"github.com/zulandar/missiondeck/internal/models"
	"github.com/zulandar/missiondeck/internal/simulator"
)

func newSimulateCmd() *cobra.Command {
	var (
		port       int
		agentsFile string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a mock mission backend",
		Long:  "Serves the backend HTTP and event stream API locally, replaying a scripted mission for every subscriber. Useful for developing against missiondeck without a real backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, port, agentsFile)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")
	cmd.Flags().StringVar(&agentsFile, "agents", "", "roster file for scripted agents (optional)")
	return cmd
}

func runSimulate(cmd *cobra.Command, port int, agentsFile string) error {
	var agents []models.Agent
	if agentsFile != "" {
		cat, err := catalog.Load(agentsFile)
		if err != nil {
			return err
		}
		agents = cat.Agents()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return simulator.Start(ctx, simulator.Opts{
		Port:   port,
		Agents: agents,
		Out:    cmd.OutOrStdout(),
	})
}
