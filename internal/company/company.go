// Package company models the aggregate business metrics of one project
// run: money, simulated time, lifecycle phase, and the qualitative
// scores the dashboard surfaces.
package company

import (
	"encoding/json"
	"fmt"
	"math"
)

// DailyBurn is the default cost of running the full staff for one
// simulated day.
const DailyBurn = 2500.0

// Finance fixes the financial model constants for a run.
type Finance struct {
	// DailyBurn is spent for every simulated day.
	DailyBurn float64
	// BudgetDays is the funding horizon at the daily rate.
	BudgetDays float64
	// RevenueGraceDays delays revenue until the product has had time
	// to reach users.
	RevenueGraceDays float64
}

// DefaultFinance returns the standard model: 180 days of funding at
// $2500/day, with revenue starting after the first month.
func DefaultFinance() Finance {
	return Finance{DailyBurn: DailyBurn, BudgetDays: 180, RevenueGraceDays: 30}
}

// State holds the company metrics for a single project. It is a plain
// value; callers coordinate concurrent access.
type State struct {
	Revenue              float64 `json:"revenue"`
	CashBurn             float64 `json:"cash_burn"`
	RunwayDays           float64 `json:"runway_days"`
	Phase                string  `json:"phase"`
	DaysElapsed          float64 `json:"days_elapsed"`
	ProductStatus        string  `json:"product_status"`
	TeamMorale           float64 `json:"team_morale"`
	CodeQuality          float64 `json:"code_quality"`
	CustomerSatisfaction float64 `json:"customer_satisfaction"`
}

// NewState returns the starting position of a freshly funded company.
func NewState() State {
	return State{
		Revenue:              0,
		CashBurn:             0,
		RunwayDays:           180,
		Phase:                PhaseIdeaIntake.Label,
		DaysElapsed:          0,
		ProductStatus:        "concept",
		TeamMorale:           100,
		CodeQuality:          85,
		CustomerSatisfaction: 0,
	}
}

// AdvanceDays moves simulated time forward by delta days and recomputes
// every derived field. Negative deltas are ignored so days_elapsed never
// moves backwards.
func (s *State) AdvanceDays(delta float64, fin Finance) {
	if delta <= 0 {
		return
	}
	s.DaysElapsed += delta
	s.CashBurn += fin.DailyBurn * delta
	s.Recompute(fin)
}

// Recompute refreshes runway, revenue, phase, and score clamps from the
// current elapsed time and spend.
func (s *State) Recompute(fin Finance) {
	s.RunwayDays = Runway(s.CashBurn, fin)
	if rev := RevenueAt(s.DaysElapsed, fin); rev > s.Revenue {
		s.Revenue = rev
	}
	s.Phase = PhaseForDays(s.DaysElapsed).Label
	s.TeamMorale = clampScore(s.TeamMorale)
	s.CodeQuality = clampScore(s.CodeQuality)
	s.CustomerSatisfaction = clampScore(s.CustomerSatisfaction)
}

// Runway returns the days of cash remaining given cumulative burn.
func Runway(cashBurn float64, fin Finance) float64 {
	if fin.DailyBurn <= 0 {
		return 0
	}
	return math.Max(0, (fin.BudgetDays*fin.DailyBurn-cashBurn)/fin.DailyBurn)
}

// RevenueAt returns the revenue earned by the given simulated day. The
// grace window earns nothing; afterwards revenue grows with the square
// of elapsed weeks.
func RevenueAt(days float64, fin Finance) float64 {
	if days <= fin.RevenueGraceDays {
		return 0
	}
	weeks := days / 7
	return 100 * weeks * weeks
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Snapshot serializes the state for persistence.
func (s State) Snapshot() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("company: encode state: %w", err)
	}
	return data, nil
}

// Load decodes a persisted state blob. Fields missing from older blobs
// keep their defaults, so new fields can be added without breaking
// existing saves.
func Load(blob []byte) (State, error) {
	s := NewState()
	if len(blob) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(blob, &s); err != nil {
		return State{}, fmt.Errorf("company: decode state: %w", err)
	}
	s.TeamMorale = clampScore(s.TeamMorale)
	s.CodeQuality = clampScore(s.CodeQuality)
	s.CustomerSatisfaction = clampScore(s.CustomerSatisfaction)
	return s, nil
}
