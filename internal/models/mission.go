package models

import "time"

// MissionStatus is the lifecycle status of a mission.
type MissionStatus string

// Mission statuses.
const (
	MissionActive    MissionStatus = "active"
	MissionCompleted MissionStatus = "completed"
	MissionPaused    MissionStatus = "paused"
	MissionFailed    MissionStatus = "failed"
)

// Mission is the unit of work the backend executor runs. Exactly one mission
// is current at a time; starting a new one resets every projected collection.
type Mission struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Status    MissionStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
