package telegraph

import (
	"testing"
	"time"

	"github.com/zulandar/missiondeck/internal/models"
	"github.com/zulandar/missiondeck/internal/store"
)

func TestFormatMissionCompleted(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	snap := store.Snapshot{
		Mission: models.Mission{
			ID:        "msn-ab12c",
			Title:     "Review contract",
			Status:    models.MissionCompleted,
			CreatedAt: created,
			UpdatedAt: created.Add(90 * time.Second),
		},
		Messages:  make([]models.ChatMessage, 4),
		Artifacts: make([]models.Artifact, 2),
	}

	evt := FormatMissionCompleted(snap)
	if evt.Title != "Mission completed: Review contract" {
		t.Errorf("Title = %q", evt.Title)
	}
	if evt.Color != ColorSuccess {
		t.Errorf("Color = %q, want %q", evt.Color, ColorSuccess)
	}

	want := map[string]string{
		"Mission":   "msn-ab12c",
		"Messages":  "4",
		"Artifacts": "2",
		"Duration":  "1m30s",
	}
	got := make(map[string]string, len(evt.Fields))
	for _, f := range evt.Fields {
		got[f.Name] = f.Value
	}
	for name, value := range want {
		if got[name] != value {
			t.Errorf("field %q = %q, want %q", name, got[name], value)
		}
	}
}

func TestFormatMissionFailed(t *testing.T) {
	snap := store.Snapshot{
		Mission: models.Mission{
			ID:     "msn-ab12c",
			Title:  "Review contract",
			Status: models.MissionFailed,
		},
		LastError: "stream: unexpected end of event stream",
	}

	evt := FormatMissionFailed(snap)
	if evt.Title != "Mission failed: Review contract" {
		t.Errorf("Title = %q", evt.Title)
	}
	if evt.Body != snap.LastError {
		t.Errorf("Body = %q, want %q", evt.Body, snap.LastError)
	}
	if evt.Color != ColorError {
		t.Errorf("Color = %q, want %q", evt.Color, ColorError)
	}
}

func TestSeverityColor(t *testing.T) {
	tests := []struct {
		severity string
		want     string
	}{
		{"success", ColorSuccess},
		{"info", ColorInfo},
		{"warning", ColorWarning},
		{"error", ColorError},
		{"unknown", ColorInfo},
	}

	for _, tt := range tests {
		if got := severityColor(tt.severity); got != tt.want {
			t.Errorf("severityColor(%q) = %q, want %q", tt.severity, got, tt.want)
		}
	}
}
