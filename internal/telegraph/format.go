package telegraph

import (
	"fmt"
	"time"

	"github.com/zulandar/missiondeck/internal/store"
)

// Color constants for event severity.
const (
	ColorSuccess = "#36a64f"
	ColorInfo    = "#2196f3"
	ColorWarning = "#ff9800"
	ColorError   = "#e53935"
)

// severityColor maps a severity string to a sidebar color.
func severityColor(severity string) string {
	switch severity {
	case "success":
		return ColorSuccess
	case "info":
		return ColorInfo
	case "warning":
		return ColorWarning
	case "error":
		return ColorError
	default:
		return ColorInfo
	}
}

// FormatMissionCompleted formats a mission completion notification from the
// final projection snapshot.
func FormatMissionCompleted(snap store.Snapshot) FormattedEvent {
	severity := "success"
	return FormattedEvent{
		Title:    fmt.Sprintf("Mission completed: %s", snap.Mission.Title),
		Severity: severity,
		Color:    severityColor(severity),
		Fields: []Field{
			{Name: "Mission", Value: snap.Mission.ID, Short: true},
			{Name: "Messages", Value: fmt.Sprintf("%d", len(snap.Messages)), Short: true},
			{Name: "Artifacts", Value: fmt.Sprintf("%d", len(snap.Artifacts)), Short: true},
			{Name: "Duration", Value: snap.Mission.UpdatedAt.Sub(snap.Mission.CreatedAt).Round(time.Second).String(), Short: true},
		},
	}
}

// FormatMissionFailed formats a mission failure notification.
func FormatMissionFailed(snap store.Snapshot) FormattedEvent {
	severity := "error"
	return FormattedEvent{
		Title:    fmt.Sprintf("Mission failed: %s", snap.Mission.Title),
		Body:     snap.LastError,
		Severity: severity,
		Color:    severityColor(severity),
		Fields: []Field{
			{Name: "Mission", Value: snap.Mission.ID, Short: true},
			{Name: "Messages", Value: fmt.Sprintf("%d", len(snap.Messages)), Short: true},
		},
	}
}
