// Package event defines the closed set of mission events carried on the
// backend push stream. Frames are decoded and validated here, at the wire
// boundary, so nothing downstream ever handles untyped payloads.
package event

import (
	"github.com/zulandar/missiondeck/internal/models"
)

// Name identifies a wire frame type.
type Name string

// Recognized frame names.
const (
	NameConnected       Name = "connected"
	NameAgentStatus     Name = "agent_status"
	NameAgentThinking   Name = "agent_thinking"
	NameWorkflowUpdate  Name = "workflow_update"
	NameMessage         Name = "message"
	NameUIComponent     Name = "ui_component"
	NameArtifact        Name = "artifact"
	NameMissionComplete Name = "mission_complete"
)

// Event is one decoded mission event. The concrete types below are the only
// implementations; the set is closed at the decode boundary.
type Event interface {
	// EventName returns the wire frame name this event was decoded from.
	EventName() Name
}

// ConnectedEvent acknowledges a freshly opened stream connection. It is a
// transport-level ack, never projected into mission state.
type ConnectedEvent struct{}

// EventName implements Event.
func (ConnectedEvent) EventName() Name { return NameConnected }

// AgentStatusEvent reports an agent's runtime status transition.
type AgentStatusEvent struct {
	AgentID string             `json:"agentId"`
	Status  models.AgentStatus `json:"status"`
	Action  string             `json:"action,omitempty"`
}

// EventName implements Event.
func (AgentStatusEvent) EventName() Name { return NameAgentStatus }

// AgentThinkingEvent carries an agent's intermediate reasoning snapshot,
// attached to the agent's workflow node as free-form memory.
type AgentThinkingEvent struct {
	AgentID string `json:"agentId"`
	Thought string `json:"thought"`
}

// EventName implements Event.
func (AgentThinkingEvent) EventName() Name { return NameAgentThinking }

// WorkflowUpdateEvent replaces the entire workflow graph. The backend is the
// authority on graph shape each time it emits this event; the projection
// performs a full replace, never a merge. Edges are accepted on the wire but
// the projection re-derives them from node dependencies.
type WorkflowUpdateEvent struct {
	Nodes []models.WorkflowNode `json:"nodes"`
	Edges []models.WorkflowEdge `json:"edges"`
}

// EventName implements Event.
func (WorkflowUpdateEvent) EventName() Name { return NameWorkflowUpdate }

// MessageEvent appends an assistant message to the transcript.
type MessageEvent struct {
	Content string `json:"content"`
	AgentID string `json:"agentId,omitempty"`
}

// EventName implements Event.
func (MessageEvent) EventName() Name { return NameMessage }

// UIComponentEvent appends a generative-UI message to the transcript.
type UIComponentEvent struct {
	ComponentName string         `json:"componentName"`
	Props         map[string]any `json:"props"`
	AgentID       string         `json:"agentId,omitempty"`
}

// EventName implements Event.
func (UIComponentEvent) EventName() Name { return NameUIComponent }

// ArtifactEvent reports an artifact produced by an agent.
type ArtifactEvent struct {
	ID      string              `json:"id"`
	Name    string              `json:"name"`
	Type    models.ArtifactType `json:"type"`
	AgentID string              `json:"agentId"`
	Content string              `json:"content,omitempty"`
	URL     string              `json:"url,omitempty"`
}

// EventName implements Event.
func (ArtifactEvent) EventName() Name { return NameArtifact }

// MissionCompleteEvent marks the mission finished. It also terminates the
// stream connection that delivered it.
type MissionCompleteEvent struct{}

// EventName implements Event.
func (MissionCompleteEvent) EventName() Name { return NameMissionComplete }
