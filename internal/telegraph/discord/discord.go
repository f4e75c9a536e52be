// Package discord implements the telegraph Notifier for Discord using embeds.
package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/zulandar/missiondeck/internal/telegraph"
)

// session abstracts the discordgo methods we use, enabling test mocks.
type session interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Close() error
}

// Notifier implements telegraph.Notifier for Discord.
type Notifier struct {
	session   session
	channelID string
}

// Opts holds parameters for creating a Discord Notifier.
type Opts struct {
	BotToken  string
	ChannelID string
}

// New creates a Discord notifier. The underlying session uses the REST API
// only, no gateway connection is opened.
func New(opts Opts) (*Notifier, error) {
	if opts.BotToken == "" {
		return nil, fmt.Errorf("discord: bot token is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("discord: channel id is required")
	}

	s, err := discordgo.New("Bot " + opts.BotToken)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}

	return &Notifier{session: s, channelID: opts.ChannelID}, nil
}

// Notify posts the event as an embed to the configured channel.
func (n *Notifier) Notify(ctx context.Context, evt telegraph.FormattedEvent) error {
	embed := eventToEmbed(evt)
	_, err := n.session.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord: send embed: %w", err)
	}
	return nil
}

// Close releases the underlying session.
func (n *Notifier) Close() error {
	return n.session.Close()
}

// eventToEmbed converts a FormattedEvent to a Discord embed.
func eventToEmbed(evt telegraph.FormattedEvent) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       evt.Title,
		Description: evt.Body,
		Color:       hexToColor(evt.Color),
	}

	for _, f := range evt.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Short,
		})
	}

	return embed
}

// hexToColor parses a "#rrggbb" color into the integer Discord expects.
// Unparseable values fall back to 0 (no color bar).
func hexToColor(hex string) int {
	hex = strings.TrimPrefix(hex, "#")
	v, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0
	}
	return int(v)
}
