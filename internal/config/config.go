// Package config provides YAML-based configuration loading for Missiondeck.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Missiondeck configuration, loaded from
// missiondeck.yaml. The backend base URL is the only required setting.
type Config struct {
	BackendURL string           `yaml:"backend_url"`
	AgentsFile string           `yaml:"agents_file"`
	Layout     LayoutConfig     `yaml:"layout"`
	Notify     NotifyConfig     `yaml:"notify"`
	Schedules  []ScheduleConfig `yaml:"schedules"`
}

// LayoutConfig overrides the graph layout spacing. Zero values fall back to
// the layout engine's defaults.
type LayoutConfig struct {
	HorizontalSpacing float64 `yaml:"horizontal_spacing"`
	VerticalSpacing   float64 `yaml:"vertical_spacing"`
}

// NotifyConfig holds the chat notification targets for mission lifecycle
// events. Both platforms are optional.
type NotifyConfig struct {
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
}

// SlackConfig configures the Slack notifier.
type SlackConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// Enabled reports whether the Slack notifier is configured.
func (c SlackConfig) Enabled() bool { return c.BotToken != "" || c.ChannelID != "" }

// DiscordConfig configures the Discord notifier.
type DiscordConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// Enabled reports whether the Discord notifier is configured.
func (c DiscordConfig) Enabled() bool { return c.BotToken != "" || c.ChannelID != "" }

// ScheduleConfig defines a recurring mission start.
type ScheduleConfig struct {
	Cron   string   `yaml:"cron"` // 5-field cron expression
	Prompt string   `yaml:"prompt"`
	Files  []string `yaml:"files"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.AgentsFile == "" {
		c.AgentsFile = "agents.yaml"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.BackendURL == "" {
		errs = append(errs, "backend_url is required")
	}
	if c.Notify.Slack.Enabled() {
		if c.Notify.Slack.BotToken == "" {
			errs = append(errs, "notify.slack.bot_token is required when slack is configured")
		}
		if c.Notify.Slack.ChannelID == "" {
			errs = append(errs, "notify.slack.channel_id is required when slack is configured")
		}
	}
	if c.Notify.Discord.Enabled() {
		if c.Notify.Discord.BotToken == "" {
			errs = append(errs, "notify.discord.bot_token is required when discord is configured")
		}
		if c.Notify.Discord.ChannelID == "" {
			errs = append(errs, "notify.discord.channel_id is required when discord is configured")
		}
	}
	for i, s := range c.Schedules {
		if s.Cron == "" {
			errs = append(errs, fmt.Sprintf("schedules[%d].cron is required", i))
		}
		if s.Prompt == "" {
			errs = append(errs, fmt.Sprintf("schedules[%d].prompt is required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
