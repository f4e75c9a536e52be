// Package catalog provides the static agent roster, loaded once at process
// start from YAML and never mutated at runtime.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/zulandar/missiondeck/internal/models"
	"gopkg.in/yaml.v3"
)

// Catalog is the immutable agent roster.
type Catalog struct {
	agents []models.Agent
	byID   map[string]models.Agent
}

// file is the on-disk YAML shape.
type file struct {
	Agents []models.Agent `yaml:"agents"`
}

// Load reads a YAML roster file from path and returns a validated Catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Catalog.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}

	if err := validate(f.Agents); err != nil {
		return nil, err
	}

	byID := make(map[string]models.Agent, len(f.Agents))
	for _, a := range f.Agents {
		byID[a.ID] = a
	}
	return &Catalog{agents: f.Agents, byID: byID}, nil
}

// validate checks that every agent entry is complete and ids are unique.
func validate(agents []models.Agent) error {
	var errs []string
	if len(agents) == 0 {
		errs = append(errs, "at least one agent is required")
	}
	seen := make(map[string]bool, len(agents))
	for i, a := range agents {
		if a.ID == "" {
			errs = append(errs, fmt.Sprintf("agents[%d].id is required", i))
			continue
		}
		if seen[a.ID] {
			errs = append(errs, fmt.Sprintf("agents[%d].id %q is duplicated", i, a.ID))
		}
		seen[a.ID] = true
		if a.Name == "" {
			errs = append(errs, fmt.Sprintf("agents[%d].name is required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Agents returns all agents in roster order.
func (c *Catalog) Agents() []models.Agent {
	return append([]models.Agent(nil), c.agents...)
}

// Get looks up an agent by id.
func (c *Catalog) Get(id string) (models.Agent, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Squad returns the agents belonging to the named squad, in roster order.
func (c *Catalog) Squad(name string) []models.Agent {
	var out []models.Agent
	for _, a := range c.agents {
		if a.Squad == name {
			out = append(out, a)
		}
	}
	return out
}
