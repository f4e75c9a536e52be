// Package store holds the single authoritative projection of mission state.
// All mutation goes through the documented commands and the event reducer;
// reads go through Snapshot. A mutex serializes every entry point so the
// store behaves as a single-owner state container on a multi-threaded
// runtime.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/zulandar/missiondeck/internal/event"
	"github.com/zulandar/missiondeck/internal/models"
)

// ErrNoMission is returned by commands that require a current mission.
var ErrNoMission = errors.New("store: no mission started")

// Store folds mission events and local commands into the current projection.
type Store struct {
	mu sync.Mutex

	mission    models.Mission
	hasMission bool
	messages   []models.ChatMessage
	statuses   map[string]models.AgentStatus
	active     map[string]struct{}
	nodes      []models.WorkflowNode
	artifacts  []models.Artifact
	lastError  string

	// UI-focus state, deliberately outside the mission lifecycle so a
	// mission reset does not disturb unrelated UI chrome.
	selectedAgent string
	panelOpen     bool

	seq uint64
	now func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		statuses: make(map[string]models.AgentStatus),
		active:   make(map[string]struct{}),
		now:      time.Now,
	}
}

// nextID generates a prefixed id for locally created records. The
// crypto/rand path is effectively infallible; the counter fallback keeps
// reducers total regardless.
func (s *Store) nextID(prefix string) string {
	id, err := models.GenerateID(prefix)
	if err != nil {
		s.seq++
		return fmt.Sprintf("%s-%06d", prefix, s.seq)
	}
	return id
}

// Apply folds one decoded event into the projection. Events are applied
// strictly in delivery order; there is no reordering or buffering.
func (s *Store) Apply(evt event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := evt.(type) {
	case event.ConnectedEvent:
		// Connection ack only, not projected.
	case event.AgentStatusEvent:
		s.applyAgentStatus(e)
	case event.AgentThinkingEvent:
		s.applyAgentThinking(e)
	case event.WorkflowUpdateEvent:
		s.applyWorkflowUpdate(e)
	case event.MessageEvent:
		s.applyMessage(e)
	case event.UIComponentEvent:
		s.applyUIComponent(e)
	case event.ArtifactEvent:
		s.applyArtifact(e)
	case event.MissionCompleteEvent:
		s.applyMissionComplete()
	}
}

// applyAgentStatus upserts the status mapping, maintains the active-agent
// set, and mirrors the status onto the agent's workflow node so the graph
// and the status panel stay consistent.
func (s *Store) applyAgentStatus(e event.AgentStatusEvent) {
	s.statuses[e.AgentID] = e.Status
	if e.Status.Busy() {
		s.active[e.AgentID] = struct{}{}
	} else {
		delete(s.active, e.AgentID)
	}

	mirrored := nodeStatusFor(e.Status)
	for i := range s.nodes {
		if s.nodes[i].AgentID == e.AgentID {
			s.nodes[i].Status = mirrored
		}
	}
}

// nodeStatusFor maps an agent runtime status onto the workflow node status
// vocabulary for the mirror write.
func nodeStatusFor(status models.AgentStatus) models.NodeStatus {
	switch status {
	case models.AgentThinking:
		return models.NodePlanning
	case models.AgentWorking:
		return models.NodeWorking
	case models.AgentDone:
		return models.NodeDone
	case models.AgentError:
		return models.NodeBlocked
	default:
		return models.NodePending
	}
}

// applyAgentThinking attaches the thought to the agent's workflow node.
// Thoughts may arrive before the first workflow_update; then this is a no-op.
func (s *Store) applyAgentThinking(e event.AgentThinkingEvent) {
	for i := range s.nodes {
		if s.nodes[i].AgentID == e.AgentID {
			s.nodes[i].Memory = e.Thought
		}
	}
}

// applyWorkflowUpdate replaces the node collection wholesale. The backend is
// the authority on graph shape; this is never a merge.
func (s *Store) applyWorkflowUpdate(e event.WorkflowUpdateEvent) {
	s.nodes = cloneNodes(e.Nodes)
}

func (s *Store) applyMessage(e event.MessageEvent) {
	s.messages = append(s.messages, models.ChatMessage{
		ID:        s.nextID("msg"),
		Role:      models.RoleAssistant,
		Content:   e.Content,
		AgentID:   e.AgentID,
		CreatedAt: s.now(),
	})
}

func (s *Store) applyUIComponent(e event.UIComponentEvent) {
	s.messages = append(s.messages, models.ChatMessage{
		ID:      s.nextID("msg"),
		Role:    models.RoleAssistant,
		AgentID: e.AgentID,
		UI: &models.UIComponent{
			ComponentName: e.ComponentName,
			Props:         e.Props,
		},
		CreatedAt: s.now(),
	})
}

func (s *Store) applyArtifact(e event.ArtifactEvent) {
	id := e.ID
	if id == "" {
		id = s.nextID("art")
	}
	s.artifacts = append(s.artifacts, models.Artifact{
		ID:        id,
		Name:      e.Name,
		Type:      e.Type,
		AgentID:   e.AgentID,
		Content:   e.Content,
		URL:       e.URL,
		CreatedAt: s.now(),
	})
}

// applyMissionComplete marks the mission completed and clears the
// currently-busy signal. Agent statuses keep their last value.
func (s *Store) applyMissionComplete() {
	if s.hasMission {
		s.mission.Status = models.MissionCompleted
		s.mission.UpdatedAt = s.now()
	}
	s.active = make(map[string]struct{})
}

// StartMission resets every mission collection and begins a new active
// mission with a locally generated id. UI-focus state is left untouched.
func (s *Store) StartMission(title string) models.Mission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startMissionLocked(s.nextID("msn"), title)
}

// AdoptMission starts a mission under an id assigned by the backend, keeping
// the reset semantics of StartMission. Used when the initiating request
// returns the authoritative mission id.
func (s *Store) AdoptMission(id, title string) models.Mission {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		id = s.nextID("msn")
	}
	return s.startMissionLocked(id, title)
}

func (s *Store) startMissionLocked(id, title string) models.Mission {
	now := s.now()
	s.mission = models.Mission{
		ID:        id,
		Title:     title,
		Status:    models.MissionActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.hasMission = true
	s.messages = nil
	s.statuses = make(map[string]models.AgentStatus)
	s.active = make(map[string]struct{})
	s.nodes = nil
	s.artifacts = nil
	s.lastError = ""

	return s.mission
}

// AddMessage appends a locally authored message, assigning its id and
// timestamp. The role defaults to user. It is a precondition failure to add
// a message before any mission has started.
func (s *Store) AddMessage(msg models.ChatMessage) (models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasMission {
		return models.ChatMessage{}, ErrNoMission
	}

	msg.ID = s.nextID("msg")
	msg.CreatedAt = s.now()
	if msg.Role == "" {
		msg.Role = models.RoleUser
	}
	s.messages = append(s.messages, msg)
	return msg, nil
}

// FailMission reflects a transport-level failure into the projection.
func (s *Store) FailMission(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastError = err.Error()
	}
	if s.hasMission {
		s.mission.Status = models.MissionFailed
		s.mission.UpdatedAt = s.now()
	}
	s.active = make(map[string]struct{})
}

// PauseMission reflects a local cancel: the stream is gone but the backend
// may still be running, so the mission is paused rather than failed.
func (s *Store) PauseMission() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasMission && s.mission.Status == models.MissionActive {
		s.mission.Status = models.MissionPaused
		s.mission.UpdatedAt = s.now()
	}
	s.active = make(map[string]struct{})
}

// SelectAgent sets the UI-focused agent. An empty id clears the selection.
func (s *Store) SelectAgent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedAgent = id
}

// TogglePanel flips the side-panel visibility flag.
func (s *Store) TogglePanel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panelOpen = !s.panelOpen
}

// Snapshot is a read-only copy of the projection handed to observers.
type Snapshot struct {
	Mission       models.Mission
	HasMission    bool
	Messages      []models.ChatMessage
	AgentStatuses map[string]models.AgentStatus
	ActiveAgents  []string
	Nodes         []models.WorkflowNode
	Artifacts     []models.Artifact
	LastError     string
	SelectedAgent string
	PanelOpen     bool
}

// Snapshot returns a consistent copy of the current projection. Mutating the
// returned value never affects the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make(map[string]models.AgentStatus, len(s.statuses))
	for id, st := range s.statuses {
		statuses[id] = st
	}

	active := make([]string, 0, len(s.active))
	for id := range s.active {
		active = append(active, id)
	}
	sort.Strings(active)

	return Snapshot{
		Mission:       s.mission,
		HasMission:    s.hasMission,
		Messages:      append([]models.ChatMessage(nil), s.messages...),
		AgentStatuses: statuses,
		ActiveAgents:  active,
		Nodes:         cloneNodes(s.nodes),
		Artifacts:     append([]models.Artifact(nil), s.artifacts...),
		LastError:     s.lastError,
		SelectedAgent: s.selectedAgent,
		PanelOpen:     s.panelOpen,
	}
}

// cloneNodes deep-copies workflow nodes, including dependency slices.
func cloneNodes(nodes []models.WorkflowNode) []models.WorkflowNode {
	if nodes == nil {
		return nil
	}
	out := make([]models.WorkflowNode, len(nodes))
	for i, n := range nodes {
		out[i] = n
		out[i].Dependencies = append([]string(nil), n.Dependencies...)
	}
	return out
}
