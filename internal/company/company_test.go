package company

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState()
	if s.RunwayDays != 180 {
		t.Fatalf("runway = %v, want 180", s.RunwayDays)
	}
	if s.Phase != "Phase 0 - Idea Intake" {
		t.Fatalf("phase = %q", s.Phase)
	}
	if s.TeamMorale != 100 || s.CodeQuality != 85 || s.CustomerSatisfaction != 0 {
		t.Fatalf("unexpected scores: %+v", s)
	}
	if s.ProductStatus != "concept" {
		t.Fatalf("product status = %q", s.ProductStatus)
	}
}

func TestRunwayIdentity(t *testing.T) {
	s := NewState()
	for i := 0; i < 200; i++ {
		s.AdvanceDays(1, DefaultFinance())
		want := math.Max(0, (180*DailyBurn-s.CashBurn)/DailyBurn)
		if s.RunwayDays != want {
			t.Fatalf("day %d: runway = %v, want %v", i+1, s.RunwayDays, want)
		}
	}
	if s.RunwayDays != 0 {
		t.Fatalf("runway after 200 days = %v, want 0", s.RunwayDays)
	}
}

func TestAdvanceDaysIgnoresNegative(t *testing.T) {
	s := NewState()
	s.AdvanceDays(3, DefaultFinance())
	before := s
	s.AdvanceDays(-1, DefaultFinance())
	if s != before {
		t.Fatalf("negative delta changed state: %+v", s)
	}
}

func TestRevenueAt(t *testing.T) {
	if got := RevenueAt(30, DefaultFinance()); got != 0 {
		t.Fatalf("revenue at day 30 = %v, want 0", got)
	}
	// 35 days is 5 weeks: 100 * 5^2 = 2500.
	if got := RevenueAt(35, DefaultFinance()); got != 2500 {
		t.Fatalf("revenue at day 35 = %v, want 2500", got)
	}
	if RevenueAt(70, DefaultFinance()) <= RevenueAt(35, DefaultFinance()) {
		t.Fatal("revenue should grow with time")
	}
}

func TestRevenueGraceIsConfigurable(t *testing.T) {
	fin := DefaultFinance()
	fin.RevenueGraceDays = 7
	if RevenueAt(7, fin) != 0 {
		t.Fatal("revenue should wait out the grace window")
	}
	if RevenueAt(14, fin) != 400 {
		t.Fatalf("revenue at 2 weeks = %v, want 400", RevenueAt(14, fin))
	}
}

func TestRevenueNeverDecreasesOnRecompute(t *testing.T) {
	s := NewState()
	s.DaysElapsed = 60
	s.Recompute(DefaultFinance())
	high := s.Revenue
	s.Recompute(DefaultFinance())
	if s.Revenue < high {
		t.Fatalf("revenue dropped from %v to %v", high, s.Revenue)
	}
}

func TestPhaseForDays(t *testing.T) {
	cases := []struct {
		days float64
		want Phase
	}{
		{0, PhaseIdeaIntake},
		{0.9, PhaseIdeaIntake},
		{1, PhaseDiscovery},
		{5.9, PhaseDiscovery},
		{6, PhaseArchitecture},
		{9, PhaseMVPSprint},
		{23, PhasePrivateBeta},
		{30, PhaseHardening},
		{44, PhaseLaunch},
		{45, PhaseScale},
		{10000, PhaseScale},
	}
	for _, tc := range cases {
		if got := PhaseForDays(tc.days); got.Label != tc.want.Label {
			t.Errorf("PhaseForDays(%v) = %s, want %s", tc.days, got.Label, tc.want.Label)
		}
	}
}

func TestPhaseProgress(t *testing.T) {
	progress := PhaseProgress(8.5)
	cases := []struct {
		label string
		want  float64
	}{
		{PhaseIdeaIntake.Label, 1},
		{PhaseDiscovery.Label, 1},
		{PhaseArchitecture.Label, 2.5 / 3},
		{PhaseMVPSprint.Label, 0},
		{PhaseScale.Label, 0},
	}
	for _, tc := range cases {
		got, ok := progress[tc.label]
		if !ok {
			t.Fatalf("no progress entry for %s", tc.label)
		}
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("progress[%s] = %v, want %v", tc.label, got, tc.want)
		}
	}

	// The open-ended final stage never reports completion.
	if got := PhaseProgress(10000)[PhaseScale.Label]; got != 0 {
		t.Errorf("scale progress = %v, want 0", got)
	}
	if got := PhaseProgress(10000)[PhaseLaunch.Label]; got != 1 {
		t.Errorf("launch progress = %v, want 1", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewState()
	s.AdvanceDays(12.5, DefaultFinance())
	s.CustomerSatisfaction = 40

	blob, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	loaded, err := Load(blob)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != s {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, s)
	}
}

func TestLoadOlderBlobKeepsDefaults(t *testing.T) {
	// A blob written before qualitative scores existed.
	blob := []byte(`{"revenue":500,"cash_burn":25000,"runway_days":170,"phase":"Phase 2 - Architecture","days_elapsed":8}`)
	s, err := Load(blob)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Revenue != 500 || s.CashBurn != 25000 || s.DaysElapsed != 8 {
		t.Fatalf("persisted fields lost: %+v", s)
	}
	if s.TeamMorale != 100 || s.CodeQuality != 85 || s.ProductStatus != "concept" {
		t.Fatalf("missing fields should default: %+v", s)
	}
}

func TestLoadClampsScores(t *testing.T) {
	blob := []byte(`{"team_morale":250,"customer_satisfaction":-5}`)
	s, err := Load(blob)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.TeamMorale != 100 || s.CustomerSatisfaction != 0 {
		t.Fatalf("scores not clamped: %+v", s)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load([]byte("{not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSnapshotUsesStableKeys(t *testing.T) {
	blob, err := NewState().Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"revenue", "cash_burn", "runway_days", "phase", "days_elapsed", "product_status"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("snapshot missing key %q", key)
		}
	}
}
