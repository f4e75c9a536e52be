package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/zulandar/missiondeck/internal/telegraph"
)

type mockSession struct {
	channelID string
	embed     *discordgo.MessageEmbed
	sendErr   error
	closed    bool
}

func (m *mockSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.channelID = channelID
	m.embed = embed
	return &discordgo.Message{}, m.sendErr
}

func (m *mockSession) Close() error {
	m.closed = true
	return nil
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Opts
	}{
		{"missing token", Opts{ChannelID: "123"}},
		{"missing channel", Opts{BotToken: "token"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestNotifySendsEmbed(t *testing.T) {
	mock := &mockSession{}
	n := &Notifier{session: mock, channelID: "123"}

	evt := telegraph.FormattedEvent{
		Title: "Mission completed",
		Body:  "All agents done",
		Color: "#36a64f",
		Fields: []telegraph.Field{
			{Name: "Mission ID", Value: "msn-ab12c", Short: true},
			{Name: "Artifacts", Value: "2", Short: true},
		},
	}

	if err := n.Notify(context.Background(), evt); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if mock.channelID != "123" {
		t.Errorf("channelID = %q, want %q", mock.channelID, "123")
	}
	if mock.embed.Title != evt.Title || mock.embed.Description != evt.Body {
		t.Errorf("embed = %+v", mock.embed)
	}
	if mock.embed.Color != 0x36a64f {
		t.Errorf("Color = %#x, want 0x36a64f", mock.embed.Color)
	}
	if len(mock.embed.Fields) != 2 || !mock.embed.Fields[0].Inline {
		t.Errorf("Fields = %+v", mock.embed.Fields)
	}
}

func TestNotifySendError(t *testing.T) {
	mock := &mockSession{sendErr: errors.New("unknown channel")}
	n := &Notifier{session: mock, channelID: "123"}

	if err := n.Notify(context.Background(), telegraph.FormattedEvent{Title: "t"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestCloseClosesSession(t *testing.T) {
	mock := &mockSession{}
	n := &Notifier{session: mock, channelID: "123"}

	if err := n.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !mock.closed {
		t.Fatal("session not closed")
	}
}

func TestHexToColor(t *testing.T) {
	tests := []struct {
		hex  string
		want int
	}{
		{"#36a64f", 0x36a64f},
		{"e53935", 0xe53935},
		{"", 0},
		{"#nothex", 0},
	}

	for _, tt := range tests {
		if got := hexToColor(tt.hex); got != tt.want {
			t.Errorf("hexToColor(%q) = %#x, want %#x", tt.hex, got, tt.want)
		}
	}
}
