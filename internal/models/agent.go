// Package models defines the entity records shared across Missiondeck.
package models

// Agent is a static catalog entry describing one mission agent.
// The catalog is loaded once at process start and never mutated at runtime.
type Agent struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Squad string `json:"squad" yaml:"squad"`
	Role  string `json:"role" yaml:"role"`
}

// AgentStatus is the runtime status of an agent within the current mission.
type AgentStatus string

// Agent runtime statuses.
const (
	AgentIdle     AgentStatus = "idle"
	AgentThinking AgentStatus = "thinking"
	AgentWorking  AgentStatus = "working"
	AgentWaiting  AgentStatus = "waiting"
	AgentDone     AgentStatus = "done"
	AgentError    AgentStatus = "error"
)

// Valid reports whether s is one of the recognized agent statuses.
func (s AgentStatus) Valid() bool {
	switch s {
	case AgentIdle, AgentThinking, AgentWorking, AgentWaiting, AgentDone, AgentError:
		return true
	}
	return false
}

// Busy reports whether s counts the agent as actively occupied. Busy agents
// are tracked in the projection's active-agent set.
func (s AgentStatus) Busy() bool {
	return s == AgentThinking || s == AgentWorking
}
