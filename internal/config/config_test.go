package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
backend_url: https://missions.example.com
agents_file: roster/agents.yaml

layout:
  horizontal_spacing: 260
  vertical_spacing: 160

notify:
  slack:
    bot_token: xoxb-test
    channel_id: C012345
  discord:
    bot_token: discord-test
    channel_id: "987654321"

schedules:
  - cron: "0 9 * * 1-5"
    prompt: "Summarize overnight filings"
    files: ["watchlist.json"]
`

const minimalYAML = `
backend_url: http://localhost:8080
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.BackendURL != "https://missions.example.com" {
		t.Errorf("backend_url = %q", cfg.BackendURL)
	}
	if cfg.AgentsFile != "roster/agents.yaml" {
		t.Errorf("agents_file = %q", cfg.AgentsFile)
	}
	if cfg.Layout.HorizontalSpacing != 260 || cfg.Layout.VerticalSpacing != 160 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if !cfg.Notify.Slack.Enabled() || cfg.Notify.Slack.ChannelID != "C012345" {
		t.Errorf("slack = %+v", cfg.Notify.Slack)
	}
	if !cfg.Notify.Discord.Enabled() {
		t.Errorf("discord = %+v", cfg.Notify.Discord)
	}
	if len(cfg.Schedules) != 1 || cfg.Schedules[0].Cron != "0 9 * * 1-5" {
		t.Errorf("schedules = %+v", cfg.Schedules)
	}
}

func TestParse_MinimalDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.AgentsFile != "agents.yaml" {
		t.Errorf("agents_file default = %q", cfg.AgentsFile)
	}
	if cfg.Notify.Slack.Enabled() || cfg.Notify.Discord.Enabled() {
		t.Error("notifiers enabled without configuration")
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing backend", `agents_file: a.yaml`, "backend_url is required"},
		{"slack half-configured", "backend_url: x\nnotify:\n  slack:\n    bot_token: xoxb\n", "channel_id is required"},
		{"discord half-configured", "backend_url: x\nnotify:\n  discord:\n    channel_id: \"123\"\n", "bot_token is required"},
		{"schedule missing prompt", "backend_url: x\nschedules:\n  - cron: \"* * * * *\"\n", "prompt is required"},
		{"schedule missing cron", "backend_url: x\nschedules:\n  - prompt: hi\n", "cron is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want to contain %q", err, tt.want)
			}
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("backend_url: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missiondeck.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "http://localhost:8080" {
		t.Errorf("backend_url = %q", cfg.BackendURL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
