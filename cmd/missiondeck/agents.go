package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/missiondeck/internal/catalog"
	"github.com/zulandar/missiondeck/internal/config"
)

func newAgentsCmd() *cobra.Command {
	var (
		configPath string
		squad      string
	)

	cmd := &cobra.Command{
		Use:   "agents",
		Short: "List agents from the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgents(cmd, configPath, squad)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "missiondeck.yaml", "path to Missiondeck config file")
	cmd.Flags().StringVar(&squad, "squad", "", "only list agents in this squad")
	return cmd
}

func runAgents(cmd *cobra.Command, configPath, squad string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.AgentsFile)
	if err != nil {
		return err
	}

	agents := cat.Agents()
	if squad != "" {
		agents = cat.Squad(squad)
	}

	out := cmd.OutOrStdout()
	if len(agents) == 0 {
		fmt.Fprintln(out, "No agents found.")
		return nil
	}

	for _, a := range agents {
		line := fmt.Sprintf("%-16s %s", a.ID, a.Name)
		if a.Squad != "" {
			line += fmt.Sprintf(" (%s)", a.Squad)
		}
		if a.Role != "" {
			line += " - " + a.Role
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
