package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const rosterYAML = `
agents:
  - id: contract-guardian
    name: Contract Guardian
    squad: legal
    role: Reviews contracts for risky clauses

  - id: researcher
    name: Researcher
    squad: analysis
    role: Gathers and verifies sources

  - id: drafter
    name: Drafter
    squad: legal
    role: Produces revised document drafts
`

func TestParse_Roster(t *testing.T) {
	c, err := Parse([]byte(rosterYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	agents := c.Agents()
	if len(agents) != 3 {
		t.Fatalf("agents = %d, want 3", len(agents))
	}
	if agents[0].ID != "contract-guardian" {
		t.Errorf("roster order not preserved: %q first", agents[0].ID)
	}

	a, ok := c.Get("researcher")
	if !ok {
		t.Fatal("researcher not found")
	}
	if a.Squad != "analysis" {
		t.Errorf("squad = %q", a.Squad)
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty roster", `agents: []`, "at least one agent"},
		{"missing id", "agents:\n  - name: Nameless\n", "id is required"},
		{"missing name", "agents:\n  - id: a1\n", "name is required"},
		{"duplicate id", "agents:\n  - id: a1\n    name: One\n  - id: a1\n    name: Two\n", "duplicated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want to contain %q", err, tt.want)
			}
		})
	}
}

func TestSquad(t *testing.T) {
	c, err := Parse([]byte(rosterYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	legal := c.Squad("legal")
	if len(legal) != 2 {
		t.Fatalf("legal squad = %d, want 2", len(legal))
	}
	if legal[0].ID != "contract-guardian" || legal[1].ID != "drafter" {
		t.Errorf("squad order = %s, %s", legal[0].ID, legal[1].ID)
	}
	if got := c.Squad("nonexistent"); len(got) != 0 {
		t.Errorf("nonexistent squad = %v", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agents.yaml")
	if err := os.WriteFile(path, []byte(rosterYAML), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Agents()) != 3 {
		t.Errorf("agents = %d", len(c.Agents()))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
