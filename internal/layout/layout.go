// Package layout converts the workflow dependency graph into a renderable
// leveled layout. Layout is a pure function: it holds no state across calls
// and identical input always yields identical output, which the UI relies on
// to avoid spurious re-renders.
package layout

import (
	"errors"
	"fmt"

	"github.com/zulandar/missiondeck/internal/models"
)

// Default spacing between positioned nodes, in render units.
const (
	DefaultHorizontalSpacing = 220.0
	DefaultVerticalSpacing   = 140.0
)

// ErrCycle is reported when the dependency relation contains a cycle. The
// graph contract is a DAG; a cycle is a structural error, never a hang.
var ErrCycle = errors.New("layout: dependency cycle")

// Options holds spacing parameters for the layout pass.
type Options struct {
	HorizontalSpacing float64
	VerticalSpacing   float64
}

// applyDefaults fills in default spacing for zero or negative values.
func (o *Options) applyDefaults() {
	if o.HorizontalSpacing <= 0 {
		o.HorizontalSpacing = DefaultHorizontalSpacing
	}
	if o.VerticalSpacing <= 0 {
		o.VerticalSpacing = DefaultVerticalSpacing
	}
}

// Node is a workflow node with its computed level and 2-D position.
type Node struct {
	models.WorkflowNode
	Level int     `json:"level"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Result is the renderable output of one layout pass.
type Result struct {
	Nodes []Node
	Edges []models.WorkflowEdge
}

// Layout positions nodes on a leveled grid and derives one edge for each
// dependency of each node. A node's level is the longest dependency chain
// below it: 0 with no dependencies, otherwise 1 + max over its dependencies.
// A dependency id absent from the node set contributes level 0 (partial
// graphs arrive incrementally by design); its edge is still emitted.
func Layout(nodes []models.WorkflowNode, opts Options) (Result, error) {
	opts.applyDefaults()

	byID := make(map[string]models.WorkflowNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	lv := leveler{byID: byID, memo: make(map[string]int), inProgress: make(map[string]bool)}

	// Group node ids by level, preserving input order within each level.
	var maxLevel int
	levels := make(map[string]int, len(nodes))
	for _, n := range nodes {
		level, err := lv.level(n.ID)
		if err != nil {
			return Result{}, err
		}
		levels[n.ID] = level
		if level > maxLevel {
			maxLevel = level
		}
	}

	rows := make([][]models.WorkflowNode, maxLevel+1)
	for _, n := range nodes {
		l := levels[n.ID]
		rows[l] = append(rows[l], n)
	}

	result := Result{Nodes: make([]Node, 0, len(nodes))}
	for level, row := range rows {
		k := float64(len(row))
		for i, n := range row {
			result.Nodes = append(result.Nodes, Node{
				WorkflowNode: n,
				Level:        level,
				X:            float64(i)*opts.HorizontalSpacing - k*opts.HorizontalSpacing/2 + opts.HorizontalSpacing/2,
				Y:            float64(level) * opts.VerticalSpacing,
			})
		}
	}

	for _, n := range nodes {
		for _, dep := range n.Dependencies {
			result.Edges = append(result.Edges, models.WorkflowEdge{
				ID:       dep + "-" + n.ID,
				Source:   dep,
				Target:   n.ID,
				Animated: n.Status == models.NodeWorking,
			})
		}
	}

	return result, nil
}

// leveler computes dependency levels via memoized recursion. The inProgress
// set marks nodes on the current recursion path so a cycle surfaces as
// ErrCycle instead of unbounded recursion.
type leveler struct {
	byID       map[string]models.WorkflowNode
	memo       map[string]int
	inProgress map[string]bool
}

func (l *leveler) level(id string) (int, error) {
	if lvl, ok := l.memo[id]; ok {
		return lvl, nil
	}
	if l.inProgress[id] {
		return 0, fmt.Errorf("%w: involving node %s", ErrCycle, id)
	}

	node, ok := l.byID[id]
	if !ok {
		// Missing dependency target: level 0 for that edge.
		return 0, nil
	}

	l.inProgress[id] = true
	defer delete(l.inProgress, id)

	lvl := 0
	for _, dep := range node.Dependencies {
		depLevel, err := l.level(dep)
		if err != nil {
			return 0, err
		}
		if depLevel+1 > lvl {
			lvl = depLevel + 1
		}
	}

	l.memo[id] = lvl
	return lvl, nil
}
