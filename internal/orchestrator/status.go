package orchestrator

import (
	"github.com/blackrab369/Versaas-ai/internal/company"
	"github.com/blackrab369/Versaas-ai/internal/msglog"
	"github.com/blackrab369/Versaas-ai/internal/roster"
)

// recentWindow bounds how much of the transcript a status snapshot carries.
const recentWindow = 20

// AgentStatus is a point-in-time view of one agent.
type AgentStatus struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Category    roster.RoleCategory `json:"category"`
	Status      roster.Status       `json:"status"`
	CurrentTask string              `json:"current_task,omitempty"`
}

// Status is a point-in-time view of the whole project. It shares no
// memory with the orchestrator; callers may hold it as long as they
// like.
type Status struct {
	Project         string         `json:"project"`
	Running         bool           `json:"running"`
	Company         company.State  `json:"company_state"`
	Agents          []AgentStatus  `json:"agents"`
	MessagesTotal   int            `json:"messages_total"`
	MessagesPending int            `json:"messages_pending"`
	RecentMessages  []msglog.Entry `json:"recent_messages"`

	// Completion fraction per lifecycle stage, keyed by phase label.
	Progress map[string]float64 `json:"project_progress"`
}

// Status captures a consistent snapshot of the run.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()

	agents := make([]AgentStatus, 0, o.staff.Len())
	for _, agent := range o.staff.All() {
		agents = append(agents, AgentStatus{
			ID:          agent.ID,
			Title:       agent.Title,
			Category:    agent.Category,
			Status:      agent.Status,
			CurrentTask: agent.CurrentTask,
		})
	}
	return Status{
		Project:         o.project,
		Running:         o.running,
		Company:         o.state,
		Agents:          agents,
		MessagesTotal:   o.log.Len(),
		MessagesPending: o.log.Pending(),
		RecentMessages:  o.log.Recent(recentWindow),
		Progress:        company.PhaseProgress(o.state.DaysElapsed),
	}
}
