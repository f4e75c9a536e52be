// Package simulator runs a mock mission backend for local development. It
// serves the same HTTP and event stream API as the real backend, replaying a
// scripted mission for every stream subscriber.
package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/missiondeck/internal/models"
)

// defaultStepDelay paces scripted frames so playback resembles a live run.
const defaultStepDelay = 300 * time.Millisecond

// Opts holds configuration for the simulator server.
type Opts struct {
	Port      int
	Agents    []models.Agent // agents the script animates, defaults applied if empty
	StepDelay time.Duration  // pause between frames, 0 means defaultStepDelay
	Out       io.Writer
}

// Server is a scripted mission backend.
type Server struct {
	agents    []models.Agent
	stepDelay time.Duration

	mu       sync.Mutex
	missions map[string]string // id -> prompt
}

// NewServer creates a simulator with opts applied.
func NewServer(opts Opts) *Server {
	agents := opts.Agents
	if len(agents) == 0 {
		agents = []models.Agent{
			{ID: "researcher", Name: "Researcher", Role: "Finds and summarizes sources"},
			{ID: "drafter", Name: "Drafter", Role: "Writes the deliverable"},
		}
	}
	delay := opts.StepDelay
	if delay <= 0 {
		delay = defaultStepDelay
	}

	return &Server{
		agents:    agents,
		stepDelay: delay,
		missions:  make(map[string]string),
	}
}

// Router builds the gin handler. Exposed separately from Start so tests can
// serve it with httptest.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/api/missions", s.handleCreateMission)
	router.POST("/api/missions/:id/messages", s.handleSendMessage)
	router.GET("/api/missions/:id/events", s.handleEvents)

	return router
}

// Start launches the simulator HTTP server. It blocks until ctx is
// cancelled, then shuts down gracefully.
func Start(ctx context.Context, opts Opts) error {
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewServer(opts).Router(),
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Simulator running at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("simulator: %w", err)
	}
	return nil
}

func (s *Server) handleCreateMission(c *gin.Context) {
	var req struct {
		Prompt string   `json:"prompt"`
		Files  []string `json:"files"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	id, err := models.GenerateID("msn")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.missions[id] = req.Prompt
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"missionId": id})
}

func (s *Server) handleSendMessage(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	_, ok := s.missions[id]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "mission not found"})
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

func (s *Server) handleEvents(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	prompt, ok := s.missions[id]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "mission not found"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	for _, f := range s.script(prompt) {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.stepDelay):
		}
		writeSSE(c.Writer, f.name, f.data)
		c.Writer.Flush()
	}
}

// frame is one scripted stream event.
type frame struct {
	name string
	data any
}

// script builds the frame sequence for one mission playback: the workflow
// plan, each agent thinking then working then reporting, an artifact, and
// completion.
func (s *Server) script(prompt string) []frame {
	frames := []frame{
		{"connected", map[string]string{"type": "connected"}},
	}

	// Workflow plan: agents form a dependency chain in roster order.
	nodes := make([]models.WorkflowNode, len(s.agents))
	for i, a := range s.agents {
		node := models.WorkflowNode{
			ID:      "node-" + a.ID,
			AgentID: a.ID,
			Task:    fmt.Sprintf("%s: %s", a.Name, prompt),
			Status:  models.NodePending,
		}
		if i > 0 {
			node.Dependencies = []string{"node-" + s.agents[i-1].ID}
		}
		nodes[i] = node
	}
	frames = append(frames, frame{"workflow_update", map[string]any{
		"nodes": nodes,
		"edges": []models.WorkflowEdge{},
	}})

	for _, a := range s.agents {
		frames = append(frames,
			frame{"agent_status", map[string]string{
				"agentId": a.ID, "status": "thinking", "action": "Planning approach",
			}},
			frame{"agent_thinking", map[string]string{
				"agentId": a.ID, "thought": fmt.Sprintf("Breaking down: %s", prompt),
			}},
			frame{"agent_status", map[string]string{
				"agentId": a.ID, "status": "working", "action": "Executing task",
			}},
			frame{"message", map[string]string{
				"agentId": a.ID, "content": fmt.Sprintf("%s finished its part of %q.", a.Name, prompt),
			}},
			frame{"agent_status", map[string]string{
				"agentId": a.ID, "status": "done", "action": "",
			}},
		)
	}

	last := s.agents[len(s.agents)-1]
	frames = append(frames,
		frame{"ui_component", map[string]any{
			"componentName": "summary_card",
			"agentId":       last.ID,
			"props":         map[string]any{"title": prompt, "agents": len(s.agents)},
		}},
		frame{"artifact", map[string]any{
			"id":      "art-sim01",
			"name":    "result.txt",
			"type":    "text",
			"agentId": last.ID,
			"content": fmt.Sprintf("Simulated result for: %s", prompt),
		}},
		frame{"mission_complete", map[string]string{}},
	)

	return frames
}

// writeSSE writes a single SSE event to the writer.
func writeSSE(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData))
}
