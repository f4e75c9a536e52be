package main

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zulandar/missiondeck/internal/simulator"
)

// writeTestConfig writes a minimal config pointing at the given backend URL
// and returns its path.
func writeTestConfig(t *testing.T, backendURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "missiondeck.yaml")
	content := fmt.Sprintf("backend_url: %s\n", backendURL)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestStartAgainstSimulator(t *testing.T) {
	sim := simulator.NewServer(simulator.Opts{StepDelay: time.Millisecond})
	srv := httptest.NewServer(sim.Router())
	defer srv.Close()

	cfgPath := writeTestConfig(t, srv.URL)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"start", "-c", cfgPath, "summarize", "the", "filings"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("start command failed: %v\noutput:\n%s", err, buf.String())
	}

	out := buf.String()
	for _, want := range []string{
		"started",
		"Workflow:",
		"mission complete",
		"completed: 3 messages, 1 artifacts",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStartMissingConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"start", "-c", "/nonexistent/missiondeck.yaml", "prompt"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestStartRequiresPrompt(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"start"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing prompt")
	}
}

func TestWatchAgainstSimulator(t *testing.T) {
	sim := simulator.NewServer(simulator.Opts{StepDelay: time.Millisecond})
	srv := httptest.NewServer(sim.Router())
	defer srv.Close()

	cfgPath := writeTestConfig(t, srv.URL)

	// Create the mission directly, then watch it by id.
	startBuf := new(bytes.Buffer)
	startCmd := newRootCmd()
	startCmd.SetOut(startBuf)
	startCmd.SetArgs([]string{"start", "-c", cfgPath, "watchable", "mission"})
	if err := startCmd.Execute(); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Extract the mission id from "Mission msn-xxxxx started."
	var id string
	for _, line := range strings.Split(startBuf.String(), "\n") {
		if strings.HasPrefix(line, "Mission ") && strings.Contains(line, "started") {
			id = strings.Fields(line)[1]
			break
		}
	}
	if id == "" {
		t.Fatalf("mission id not found in output:\n%s", startBuf.String())
	}

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"watch", "-c", cfgPath, id})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("watch command failed: %v\noutput:\n%s", err, buf.String())
	}
	if !strings.Contains(buf.String(), "mission complete") {
		t.Errorf("output missing completion:\n%s", buf.String())
	}
}
