package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/zulandar/missiondeck/internal/config"
	"github.com/zulandar/missiondeck/internal/event"
	"github.com/zulandar/missiondeck/internal/layout"
	"github.com/zulandar/missiondeck/internal/models"
)

// renderEvent prints one stream event as a console line. Events with no
// console representation (connected, workflow_update) are skipped; the
// workflow graph is rendered separately via renderGraph.
func renderEvent(out io.Writer, evt event.Event) {
	ts := time.Now().Format("15:04:05")

	switch e := evt.(type) {
	case event.AgentStatusEvent:
		line := fmt.Sprintf("[%s] %s is %s", ts, e.AgentID, e.Status)
		if e.Action != "" {
			line += ": " + e.Action
		}
		fmt.Fprintln(out, line)
	case event.AgentThinkingEvent:
		fmt.Fprintf(out, "[%s] %s thinking: %s\n", ts, e.AgentID, truncate(e.Thought, 120))
	case event.MessageEvent:
		who := e.AgentID
		if who == "" {
			who = "agent"
		}
		fmt.Fprintf(out, "[%s] %s: %s\n", ts, who, e.Content)
	case event.UIComponentEvent:
		fmt.Fprintf(out, "[%s] %s rendered %s\n", ts, e.AgentID, e.ComponentName)
	case event.ArtifactEvent:
		fmt.Fprintf(out, "[%s] artifact %s (%s) from %s\n", ts, e.Name, e.Type, e.AgentID)
	case event.MissionCompleteEvent:
		fmt.Fprintf(out, "[%s] mission complete\n", ts)
	}
}

// renderGraph lays out the workflow nodes and prints them level by level
// with their computed canvas positions.
func renderGraph(out io.Writer, nodes []models.WorkflowNode, cfg config.LayoutConfig) error {
	if len(nodes) == 0 {
		return nil
	}

	res, err := layout.Layout(nodes, layout.Options{
		HorizontalSpacing: cfg.HorizontalSpacing,
		VerticalSpacing:   cfg.VerticalSpacing,
	})
	if err != nil {
		return fmt.Errorf("render graph: %w", err)
	}

	fmt.Fprintln(out, "Workflow:")
	level := -1
	for _, n := range res.Nodes {
		if n.Level != level {
			level = n.Level
			fmt.Fprintf(out, "  level %d:\n", level)
		}
		marker := " "
		if n.Status == models.NodeWorking {
			marker = "*"
		}
		fmt.Fprintf(out, "   %s %s [%s] (%.0f, %.0f) %s\n", marker, n.ID, n.Status, n.X, n.Y, truncate(n.Task, 60))
	}

	animated := 0
	for _, e := range res.Edges {
		if e.Animated {
			animated++
		}
	}
	fmt.Fprintf(out, "  %d edges, %d active\n", len(res.Edges), animated)
	return nil
}

// truncate shortens s to max runes, appending "..." when cut.
func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
