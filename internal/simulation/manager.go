// Package simulation supervises the background runs: one orchestrator
// per project, each stepped by its own ticker goroutine, with periodic
// persistence of company state and message traffic.
package simulation

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/blackrab369/Versaas-ai/internal/audit"
	"github.com/blackrab369/Versaas-ai/internal/company"
	"github.com/blackrab369/Versaas-ai/internal/config"
	"github.com/blackrab369/Versaas-ai/internal/docs"
	"github.com/blackrab369/Versaas-ai/internal/msglog"
	"github.com/blackrab369/Versaas-ai/internal/orchestrator"
	"github.com/blackrab369/Versaas-ai/internal/roster"
	"github.com/blackrab369/Versaas-ai/internal/store"
	"github.com/blackrab369/Versaas-ai/internal/textgen"
)

// run is one live project simulation. A freshly registered run is a
// placeholder while its orchestrator is built outside the registry
// lock; orc, cancel and err are set before ready closes, so waiters
// may read them after <-ready without further locking.
type run struct {
	orc    *orchestrator.Orchestrator
	cancel context.CancelFunc
	done   chan struct{}
	ready  chan struct{}
	err    error

	mu      sync.Mutex
	lastSeq uint64
}

// Manager owns every live simulation in the process. Request handlers
// share it; all methods are safe for concurrent use.
type Manager struct {
	cfg    *config.Config
	store  store.Store
	gen    textgen.Generator
	logger *zap.Logger

	mu   sync.Mutex
	runs map[string]*run
}

// NewManager builds a manager. gen may be nil for offline runs.
func NewManager(cfg *config.Config, st store.Store, gen textgen.Generator, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		cfg:    cfg,
		store:  st,
		gen:    gen,
		logger: logger,
		runs:   make(map[string]*run),
	}
}

// GetOrStart returns the live orchestrator for a project, starting one
// if needed. A previously saved project resumes from its persisted
// state. Any non-blank initialRequest strings are fed to the new
// orchestrator before it is returned; they are ignored for an already
// running project. Concurrent calls for the same project converge on a
// single run.
func (m *Manager) GetOrStart(ctx context.Context, project string, initialRequest ...string) (*orchestrator.Orchestrator, error) {
	m.mu.Lock()
	if r, ok := m.runs[project]; ok {
		m.mu.Unlock()
		<-r.ready
		if r.err != nil {
			return nil, r.err
		}
		return r.orc, nil
	}
	// Register a placeholder and release the registry lock before the
	// build: store loads, directory creation and the seed request must
	// not block lookups for unrelated projects.
	r := &run{done: make(chan struct{}), ready: make(chan struct{})}
	m.runs[project] = r
	m.mu.Unlock()

	orc, err := m.buildOrchestrator(ctx, project)
	if err != nil {
		r.err = err
		close(r.ready)
		m.mu.Lock()
		delete(m.runs, project)
		m.mu.Unlock()
		return nil, err
	}
	orc.Start()
	for _, req := range initialRequest {
		if strings.TrimSpace(req) == "" {
			continue
		}
		if err := orc.ProcessRequest(ctx, req); err != nil {
			m.logger.Warn("seed request failed",
				zap.String("project", project), zap.Error(err))
		}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	r.orc = orc
	r.cancel = cancel
	go m.loop(runCtx, r)
	close(r.ready)

	m.logger.Info("simulation launched", zap.String("project", project))
	return orc, nil
}

func (m *Manager) buildOrchestrator(ctx context.Context, project string) (*orchestrator.Orchestrator, error) {
	pc := m.cfg.Project

	staff, err := roster.Load(pc.RosterPath)
	if err != nil {
		return nil, fmt.Errorf("simulation: staff for %s: %w", project, err)
	}
	trail, err := audit.New(m.cfg.AuditDir(), project)
	if err != nil {
		return nil, fmt.Errorf("simulation: audit trail for %s: %w", project, err)
	}
	writer, err := docs.NewWriter(filepath.Join(m.cfg.OutputDir(), project), m.gen)
	if err != nil {
		return nil, fmt.Errorf("simulation: doc writer for %s: %w", project, err)
	}

	state := company.NewState()
	blob, err := m.store.LoadState(ctx, project)
	switch err {
	case nil:
		state, err = company.Load(blob)
		if err != nil {
			return nil, fmt.Errorf("simulation: resume %s: %w", project, err)
		}
		m.logger.Info("project resumed",
			zap.String("project", project),
			zap.Float64("days_elapsed", state.DaysElapsed))
	case store.ErrNotFound:
	default:
		return nil, fmt.Errorf("simulation: load %s: %w", project, err)
	}

	return orchestrator.New(project,
		orchestrator.WithRoster(staff),
		orchestrator.WithState(state),
		orchestrator.WithGenerator(m.gen),
		orchestrator.WithDocWriter(writer),
		orchestrator.WithAuditTrail(trail),
		orchestrator.WithLogger(m.logger),
		orchestrator.WithBatchSize(pc.Simulation.BatchSize),
		orchestrator.WithHoursPerStep(pc.Simulation.HoursPerTick),
		orchestrator.WithFinance(company.Finance{
			DailyBurn:        pc.Finance.DailyBurn,
			BudgetDays:       float64(pc.Finance.BudgetDays),
			RevenueGraceDays: float64(pc.Finance.RevenueGraceDays),
		}),
		orchestrator.WithMessageLog(msglog.New(msglog.WithQueueCapacity(pc.Simulation.QueueLimit))),
	), nil
}

// loop steps one run until its context is cancelled, flushing state on
// a save cadence and once more on the way out.
func (m *Manager) loop(ctx context.Context, r *run) {
	defer close(r.done)

	interval := m.cfg.Project.Simulation.TickInterval.AsDuration()
	if interval <= 0 {
		interval = time.Second
	}
	saveEvery := m.cfg.Project.Simulation.SaveEveryTicks
	if saveEvery <= 0 {
		saveEvery = 60
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ticks := 0
	for {
		select {
		case <-ctx.Done():
			m.flush(context.Background(), r)
			return
		case <-ticker.C:
			r.orc.Step(ctx)
			ticks++
			if ticks%saveEvery == 0 {
				m.flush(ctx, r)
			}
		}
	}
}

// flush persists the run's company state and archives any message
// traffic produced since the previous flush.
func (m *Manager) flush(ctx context.Context, r *run) {
	r.mu.Lock()
	defer r.mu.Unlock()

	project := r.orc.Project()
	blob, err := r.orc.State().Snapshot()
	if err != nil {
		m.logger.Error("state snapshot failed", zap.String("project", project), zap.Error(err))
		return
	}
	if err := m.store.SaveState(ctx, project, blob); err != nil {
		m.logger.Error("state save failed", zap.String("project", project), zap.Error(err))
		return
	}

	entries := r.orc.Messages().Since(r.lastSeq)
	if len(entries) > 0 {
		if err := m.store.ArchiveMessages(ctx, project, entries); err != nil {
			m.logger.Error("message archive failed", zap.String("project", project), zap.Error(err))
			return
		}
		r.lastSeq = entries[len(entries)-1].Seq
	}
}

// SaveNow persists a project immediately.
func (m *Manager) SaveNow(ctx context.Context, project string) error {
	m.mu.Lock()
	r, ok := m.runs[project]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("simulation: %s is not running", project)
	}
	<-r.ready
	if r.err != nil {
		return r.err
	}
	m.flush(ctx, r)
	return nil
}

// Status returns the live snapshot for a project.
func (m *Manager) Status(project string) (orchestrator.Status, error) {
	m.mu.Lock()
	r, ok := m.runs[project]
	m.mu.Unlock()
	if !ok {
		return orchestrator.Status{}, fmt.Errorf("simulation: %s is not running", project)
	}
	<-r.ready
	if r.err != nil {
		return orchestrator.Status{}, r.err
	}
	return r.orc.Status(), nil
}

// Plan renders the business-plan document for a live project and
// returns its path.
func (m *Manager) Plan(ctx context.Context, project string) (string, error) {
	m.mu.Lock()
	r, ok := m.runs[project]
	m.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("simulation: %s is not running", project)
	}
	<-r.ready
	if r.err != nil {
		return "", r.err
	}
	return r.orc.BusinessPlan(ctx)
}

// Projects lists the currently live project names.
func (m *Manager) Projects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.runs))
	for name := range m.runs {
		out = append(out, name)
	}
	return out
}

// Stop halts a project's run, waits for its goroutine to finish, and
// leaves its final state persisted. The registry lock is released
// before joining so other projects stay serviceable.
func (m *Manager) Stop(ctx context.Context, project string) error {
	m.mu.Lock()
	r, ok := m.runs[project]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("simulation: %s is not running", project)
	}
	select {
	case <-r.ready:
	case <-ctx.Done():
		return fmt.Errorf("simulation: stop %s: %w", project, ctx.Err())
	}
	if r.err != nil {
		return fmt.Errorf("simulation: %s is not running", project)
	}

	// Pop only after the build finished, so a stopped entry always has
	// a loop to join and a racing Stop sees the registry consistently.
	m.mu.Lock()
	cur, ok := m.runs[project]
	if !ok || cur != r {
		m.mu.Unlock()
		return fmt.Errorf("simulation: %s is not running", project)
	}
	delete(m.runs, project)
	m.mu.Unlock()

	r.orc.Stop()
	r.cancel()
	select {
	case <-r.done:
	case <-ctx.Done():
		return fmt.Errorf("simulation: stop %s: %w", project, ctx.Err())
	}
	m.logger.Info("simulation stopped", zap.String("project", project))
	return nil
}

// Shutdown stops every live run concurrently.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	runs := m.runs
	m.runs = make(map[string]*run)
	m.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	for name, r := range runs {
		name, r := name, r
		g.Go(func() error {
			select {
			case <-r.ready:
			case <-ctx.Done():
				return fmt.Errorf("simulation: shutdown %s: %w", name, ctx.Err())
			}
			if r.err != nil {
				return nil
			}
			r.orc.Stop()
			r.cancel()
			select {
			case <-r.done:
				return nil
			case <-ctx.Done():
				return fmt.Errorf("simulation: shutdown %s: %w", name, ctx.Err())
			}
		})
	}
	return g.Wait()
}
