package models

// NodeStatus is the execution status of a workflow node.
type NodeStatus string

// Workflow node statuses.
const (
	NodePlanning NodeStatus = "planning"
	NodeWorking  NodeStatus = "working"
	NodeDone     NodeStatus = "done"
	NodeBlocked  NodeStatus = "blocked"
	NodePending  NodeStatus = "pending"
)

// WorkflowNode is one task in the mission's dependency graph. Dependencies
// reference other node ids in the same graph and must form a DAG; a node
// must never list itself, directly or transitively, as its own dependency.
type WorkflowNode struct {
	ID           string     `json:"id"`
	AgentID      string     `json:"agent_id"`
	Task         string     `json:"task"`
	Status       NodeStatus `json:"status"`
	Dependencies []string   `json:"dependencies,omitempty"`
	Result       string     `json:"result,omitempty"`
	Memory       string     `json:"memory,omitempty"`
}

// WorkflowEdge is a derived dependency edge: one exists for every
// dependency of every node in the current graph. It is never stored; the
// layout engine recomputes edges from node dependencies on every pass.
type WorkflowEdge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Animated bool   `json:"animated"`
}
