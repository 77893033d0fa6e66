// Package roster defines the company staff: who exists, what they do,
// and which of them wake up in each project phase.
package roster

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RoleCategory groups agents by the kind of work they do. Activation
// decisions key off the category, never off the agent ID.
type RoleCategory string

const (
	RoleDevelopment    RoleCategory = "development"
	RoleDesign         RoleCategory = "design"
	RoleManagement     RoleCategory = "management"
	RoleAdministration RoleCategory = "administration"
	RoleExecutive      RoleCategory = "executive"
	RoleBoard          RoleCategory = "board"
)

// Status is an agent's current working state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusWorking Status = "working"
	StatusBlocked Status = "blocked"
)

// memoryCap bounds each agent's rolling memory buffer.
const memoryCap = 50

// AgentRecord is one staffed seat in the company.
type AgentRecord struct {
	ID          string       `yaml:"id"`
	Title       string       `yaml:"title"`
	Seniority   string       `yaml:"seniority"`
	Category    RoleCategory `yaml:"category"`
	Personality string       `yaml:"personality"`
	Tools       []string     `yaml:"tools"`

	Status      Status `yaml:"-"`
	CurrentTask string `yaml:"-"`
	memory      []string
}

// Remember appends a note to the agent's rolling memory, evicting the
// oldest notes once the buffer is full.
func (a *AgentRecord) Remember(note string) {
	a.memory = append(a.memory, note)
	if len(a.memory) > memoryCap {
		a.memory = a.memory[len(a.memory)-memoryCap:]
	}
}

// Memory returns a copy of the agent's memory buffer, oldest first.
func (a *AgentRecord) Memory() []string {
	out := make([]string, len(a.memory))
	copy(out, a.memory)
	return out
}

func (a *AgentRecord) normalize() error {
	a.ID = strings.TrimSpace(a.ID)
	if a.ID == "" {
		return fmt.Errorf("roster: agent missing id")
	}
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return fmt.Errorf("roster: agent %s missing title", a.ID)
	}
	a.Category = RoleCategory(strings.ToLower(strings.TrimSpace(string(a.Category))))
	switch a.Category {
	case RoleDevelopment, RoleDesign, RoleManagement, RoleAdministration, RoleExecutive, RoleBoard:
	default:
		return fmt.Errorf("roster: agent %s has unknown category %q", a.ID, a.Category)
	}
	if a.Status == "" {
		a.Status = StatusIdle
	}
	return nil
}

// Roster holds the full staff indexed by agent ID. Construction
// normalizes and validates every record once; afterwards the set of
// agents never changes, only their status and memory do.
type Roster struct {
	agents []*AgentRecord
	byID   map[string]*AgentRecord
}

// New builds a roster from the given records.
func New(records []AgentRecord) (*Roster, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("roster: no agents defined")
	}
	r := &Roster{
		agents: make([]*AgentRecord, 0, len(records)),
		byID:   make(map[string]*AgentRecord, len(records)),
	}
	for i := range records {
		agent := records[i]
		if err := agent.normalize(); err != nil {
			return nil, err
		}
		if _, exists := r.byID[agent.ID]; exists {
			return nil, fmt.Errorf("roster: duplicate agent id %s", agent.ID)
		}
		copied := agent
		r.agents = append(r.agents, &copied)
		r.byID[copied.ID] = &copied
	}
	return r, nil
}

// Default builds the standard company roster.
func Default() *Roster {
	r, err := New(defaultCatalog())
	if err != nil {
		panic(err)
	}
	return r
}

// Load reads a roster override file. A missing file falls back to the
// default staff.
func Load(path string) (*Roster, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("roster: read %s: %w", path, err)
	}
	var doc struct {
		Agents []AgentRecord `yaml:"agents"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("roster: parse %s: %w", path, err)
	}
	r, err := New(doc.Agents)
	if err != nil {
		return nil, fmt.Errorf("roster: %s: %w", path, err)
	}
	return r, nil
}

// Get returns the agent with the given ID.
func (r *Roster) Get(id string) (*AgentRecord, bool) {
	agent, ok := r.byID[id]
	return agent, ok
}

// All returns every agent in declaration order.
func (r *Roster) All() []*AgentRecord {
	out := make([]*AgentRecord, len(r.agents))
	copy(out, r.agents)
	return out
}

// Len reports the staff headcount.
func (r *Roster) Len() int {
	return len(r.agents)
}

// ByCategory returns the agents in one role category, in declaration
// order.
func (r *Roster) ByCategory(cat RoleCategory) []*AgentRecord {
	var out []*AgentRecord
	for _, agent := range r.agents {
		if agent.Category == cat {
			out = append(out, agent)
		}
	}
	return out
}
