package models

import "time"

// MessageRole identifies who authored a chat message.
type MessageRole string

// Chat message roles.
const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// Attachment is a file reference carried by a chat message.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size,omitempty"`
}

// UIComponent is a generative-UI payload rendered inline in the transcript
// instead of plain text.
type UIComponent struct {
	ComponentName string         `json:"component_name"`
	Props         map[string]any `json:"props"`
}

// ChatMessage is one entry in the mission transcript. Messages are
// append-only: once created they are never mutated, and the transcript is
// cleared only when a new mission starts. Ordering is arrival order.
type ChatMessage struct {
	ID          string       `json:"id"`
	Role        MessageRole  `json:"role"`
	Content     string       `json:"content"`
	AgentID     string       `json:"agent_id,omitempty"`
	UI          *UIComponent `json:"ui,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
