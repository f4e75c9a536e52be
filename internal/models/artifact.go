package models

import "time"

// ArtifactType tags the kind of artifact an agent produced.
type ArtifactType string

// Artifact types.
const (
	ArtifactPDF   ArtifactType = "pdf"
	ArtifactJSON  ArtifactType = "json"
	ArtifactText  ArtifactType = "text"
	ArtifactEmail ArtifactType = "email"
)

// Artifact is a file or document produced by an agent during a mission.
// Artifacts are append-only; the list is cleared only when a new mission
// starts. Content is inline for small artifacts, URL references the rest.
type Artifact struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      ArtifactType `json:"type"`
	AgentID   string       `json:"agent_id"`
	Content   string       `json:"content,omitempty"`
	URL       string       `json:"url,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
