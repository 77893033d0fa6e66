// Package orchestrator runs one project's virtual company: it accepts
// owner requests through the CEO, routes agent messages on each tick,
// and advances the company metrics over simulated time.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/blackrab369/Versaas-ai/internal/audit"
	"github.com/blackrab369/Versaas-ai/internal/company"
	"github.com/blackrab369/Versaas-ai/internal/docs"
	"github.com/blackrab369/Versaas-ai/internal/msglog"
	"github.com/blackrab369/Versaas-ai/internal/roster"
	"github.com/blackrab369/Versaas-ai/internal/textgen"
)

const (
	ownerID = "OWNER"
	ceoID   = "CEO-001"
	cooID   = "MGT-001"

	defaultBatchSize    = 10
	defaultHoursPerStep = 1.0
)

// Orchestrator owns the mutable state of one project run. A single
// mutex guards company state, roster status, and the running flag.
// The message log carries its own lock, so reply rules can append
// while the orchestrator lock is held.
type Orchestrator struct {
	project string
	staff   *roster.Roster
	log     *msglog.Log
	gen     textgen.Generator
	writer  *docs.Writer
	trail   *audit.Trail
	logger  *zap.Logger

	mu      sync.Mutex
	state   company.State
	running bool

	batchSize    int
	hoursPerStep float64
	fin          company.Finance
}

// Option customizes Orchestrator construction.
type Option func(*Orchestrator)

// WithRoster replaces the default staff.
func WithRoster(r *roster.Roster) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.staff = r
		}
	}
}

// WithGenerator injects the text generator used for agent replies and
// documents. Without one, replies use the built-in canned lines.
func WithGenerator(gen textgen.Generator) Option {
	return func(o *Orchestrator) { o.gen = gen }
}

// WithDocWriter injects the document writer. Without one, no artifact
// files are produced.
func WithDocWriter(w *docs.Writer) Option {
	return func(o *Orchestrator) { o.writer = w }
}

// WithAuditTrail injects the audit trail.
func WithAuditTrail(t *audit.Trail) Option {
	return func(o *Orchestrator) { o.trail = t }
}

// WithLogger injects the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithState resumes from a previously persisted company state.
func WithState(s company.State) Option {
	return func(o *Orchestrator) { o.state = s }
}

// WithBatchSize bounds how many pending messages one Step drains.
func WithBatchSize(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

// WithHoursPerStep sets how much simulated time one running Step
// advances.
func WithHoursPerStep(h float64) Option {
	return func(o *Orchestrator) {
		if h > 0 {
			o.hoursPerStep = h
		}
	}
}

// WithFinance overrides the financial model constants.
func WithFinance(fin company.Finance) Option {
	return func(o *Orchestrator) {
		if fin.DailyBurn > 0 {
			o.fin.DailyBurn = fin.DailyBurn
		}
		if fin.BudgetDays > 0 {
			o.fin.BudgetDays = fin.BudgetDays
		}
		if fin.RevenueGraceDays >= 0 {
			o.fin.RevenueGraceDays = fin.RevenueGraceDays
		}
	}
}

// WithMessageLog replaces the message log, mainly so tests can bound
// or clock it.
func WithMessageLog(l *msglog.Log) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.log = l
		}
	}
}

// New constructs an orchestrator for one project.
func New(project string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		project:      project,
		staff:        roster.Default(),
		log:          msglog.New(),
		logger:       zap.NewNop(),
		state:        company.NewState(),
		batchSize:    defaultBatchSize,
		hoursPerStep: defaultHoursPerStep,
		fin:          company.DefaultFinance(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// Project returns the project name this orchestrator runs.
func (o *Orchestrator) Project() string {
	return o.project
}

// Messages exposes the project's message log.
func (o *Orchestrator) Messages() *msglog.Log {
	return o.log
}

// ProcessRequest routes an owner request through the CEO. Requests
// that read like a product idea produce an intake brief and kick off
// discovery; every request costs one simulated day.
func (o *Orchestrator) ProcessRequest(ctx context.Context, request string) error {
	request = strings.TrimSpace(request)

	o.mu.Lock()
	defer o.mu.Unlock()

	o.trail.Recordf(audit.KindRequest, "%s: %s", ownerID, truncate(request, 120))
	o.log.Append(ownerID, ceoID, request, msglog.KindRequest)
	if ceo, ok := o.staff.Get(ceoID); ok {
		ceo.Remember("Owner request: " + request)
	}

	lower := strings.ToLower(request)
	if strings.Contains(lower, "idea") || strings.Contains(lower, "product") {
		if o.writer != nil {
			if path, err := o.writer.IdeaBrief(request); err != nil {
				o.logger.Warn("idea brief not written", zap.String("project", o.project), zap.Error(err))
			} else {
				o.logger.Info("idea brief written", zap.String("project", o.project), zap.String("path", path))
			}
		}
		o.log.Append(ceoID, msglog.Broadcast, "New project idea received: "+request, msglog.KindChat)
		o.log.Append(ceoID, cooID, "Please review new project idea and initiate discovery phase", msglog.KindChat)
		o.trail.Recordf(audit.KindDelegation, "%s -> %s: initiate discovery", ceoID, cooID)
	}

	before := o.state.Phase
	o.state.AdvanceDays(1, o.fin)
	o.notePhaseChange(before)
	return nil
}

// Step is the periodic tick: drain a bounded batch of pending
// messages, wake agents whose role matches the current phase, and,
// when running, advance simulated time.
func (o *Orchestrator) Step(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, msg := range o.log.Drain(o.batchSize) {
		o.route(ctx, msg)
	}
	o.activateForPhase()

	if o.running {
		before := o.state.Phase
		o.state.AdvanceDays(o.hoursPerStep/24, o.fin)
		o.notePhaseChange(before)
	}
}

// route applies the deterministic response rules to one delivered
// message.
func (o *Orchestrator) route(ctx context.Context, msg msglog.Entry) {
	switch {
	case msg.IsBroadcast():
		lower := strings.ToLower(msg.Body)
		switch {
		case strings.Contains(lower, "architecture"):
			o.reply(ctx, "DEV-001", ceoID,
				"I'll review the architecture requirements and provide recommendations within 24 hours.")
		case strings.Contains(lower, "user research"):
			o.reply(ctx, "UX-001", ceoID,
				"Starting user interviews tomorrow. Will have persona profiles ready by end of week.")
		}
	case msg.To == ceoID:
		if ceo, ok := o.staff.Get(ceoID); ok {
			ceo.Remember("Received: " + msg.Body)
		}
	}
}

// reply sends fromID's answer to toID. With a generator configured the
// line is drafted in the agent's voice; any generation failure falls
// back to the canned line so a dead collaborator never stalls the run.
func (o *Orchestrator) reply(ctx context.Context, fromID, toID, canned string) {
	body := canned
	if o.gen != nil {
		agent, ok := o.staff.Get(fromID)
		if ok {
			drafted, err := o.gen.Generate(ctx, agent.ID+", "+agent.Title+". "+agent.Personality, canned)
			if err != nil {
				o.logger.Warn("reply generation failed",
					zap.String("project", o.project),
					zap.String("agent", fromID),
					zap.Error(err))
			} else if strings.TrimSpace(drafted) != "" {
				body = drafted
			}
		}
	}
	o.log.Append(fromID, toID, body, msglog.KindChat)
}

// activateForPhase moves idle agents into working state when their
// role category has work in the current phase.
func (o *Orchestrator) activateForPhase() {
	phase := company.PhaseForDays(o.state.DaysElapsed)
	task := roster.TaskFor(phase)
	for _, agent := range o.staff.All() {
		if agent.Status != roster.StatusIdle {
			continue
		}
		if !roster.ActiveIn(phase, agent.Category) {
			continue
		}
		agent.Status = roster.StatusWorking
		agent.CurrentTask = task
		o.logger.Debug("agent activated",
			zap.String("project", o.project),
			zap.String("agent", agent.ID),
			zap.String("phase", phase.Label))
	}
}

// Start marks the simulation as running and announces it company-wide.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running {
		o.logger.Debug("start ignored, already running", zap.String("project", o.project))
		return
	}
	o.running = true
	o.log.Append(ceoID, msglog.Broadcast,
		"Versaas Virtual Software Inc. is now operational. Mission: Ship a profitable product in 180 days.",
		msglog.KindSystem)
	o.trail.Record(audit.KindLifecycle, "simulation started")
	o.logger.Info("simulation started", zap.String("project", o.project))
}

// Stop halts simulated time. Pending messages stay queued.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.running {
		return
	}
	o.running = false
	o.trail.Record(audit.KindLifecycle, "simulation stopped")
	o.logger.Info("simulation stopped", zap.String("project", o.project))
}

// BusinessPlan drafts the plan document from the current company
// position and returns its path. The CFO announces the draft to the
// CEO once it lands on disk.
func (o *Orchestrator) BusinessPlan(ctx context.Context) (string, error) {
	if o.writer == nil {
		return "", fmt.Errorf("orchestrator: %s has no document writer", o.project)
	}
	o.mu.Lock()
	state := o.state
	o.mu.Unlock()

	path, err := o.writer.BusinessPlan(ctx, o.project, state)
	if err != nil {
		return "", err
	}
	o.log.Append("ADMIN-002", ceoID, "Business plan draft is ready for review.", msglog.KindChat)
	o.trail.Recordf(audit.KindSave, "business plan written: %s", path)
	return path, nil
}

// Running reports whether simulated time is advancing.
func (o *Orchestrator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// State returns a copy of the current company state.
func (o *Orchestrator) State() company.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) notePhaseChange(before string) {
	if o.state.Phase == before {
		return
	}
	o.trail.Recordf(audit.KindPhase, "entered %s", o.state.Phase)
	o.logger.Info("phase change",
		zap.String("project", o.project),
		zap.String("from", before),
		zap.String("to", o.state.Phase))

	if o.writer == nil {
		return
	}
	recent := o.log.Recent(10)
	lines := make([]string, 0, len(recent))
	for _, e := range recent {
		lines = append(lines, e.From+" -> "+e.To+": "+truncate(e.Body, 120))
	}
	if path, err := o.writer.ProgressReport(o.project, o.state, lines); err != nil {
		o.logger.Warn("progress report not written", zap.String("project", o.project), zap.Error(err))
	} else {
		o.logger.Info("progress report written", zap.String("project", o.project), zap.String("path", path))
	}
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
