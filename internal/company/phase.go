package company

// Phase is one stage of the fixed project lifecycle. Phases advance
// with simulated time; BudgetDays is how long a phase lasts before the
// next one begins. The final phase has no budget and never ends.
type Phase struct {
	Index      int
	Label      string
	BudgetDays float64
}

var (
	PhaseIdeaIntake   = Phase{0, "Phase 0 - Idea Intake", 1}
	PhaseDiscovery    = Phase{1, "Phase 1 - Discovery", 5}
	PhaseArchitecture = Phase{2, "Phase 2 - Architecture", 3}
	PhaseMVPSprint    = Phase{3, "Phase 3 - MVP Sprint 1", 14}
	PhasePrivateBeta  = Phase{4, "Phase 4 - Private Beta", 7}
	PhaseHardening    = Phase{5, "Phase 5 - Hardening & Monetisation", 14}
	PhaseLaunch       = Phase{6, "Phase 6 - Public Launch", 1}
	PhaseScale        = Phase{7, "Phase 7 - Scale-to-$1M", 0}
)

// Phases lists every lifecycle stage in order.
var Phases = []Phase{
	PhaseIdeaIntake,
	PhaseDiscovery,
	PhaseArchitecture,
	PhaseMVPSprint,
	PhasePrivateBeta,
	PhaseHardening,
	PhaseLaunch,
	PhaseScale,
}

// PhaseForDays maps elapsed simulated days onto the lifecycle stage
// active at that point. The mapping is deterministic, so the phase
// label in a persisted state can always be rederived from days alone.
func PhaseForDays(days float64) Phase {
	if days < 0 {
		days = 0
	}
	threshold := 0.0
	for _, phase := range Phases {
		if phase.BudgetDays == 0 {
			return phase
		}
		threshold += phase.BudgetDays
		if days < threshold {
			return phase
		}
	}
	return Phases[len(Phases)-1]
}

// PhaseProgress reports the completion fraction of every lifecycle
// stage after the given number of simulated days, keyed by phase label.
// Finished stages report 1, the active stage reports the elapsed share
// of its day budget, later stages report 0. The open-ended final stage
// reports 0 even while active.
func PhaseProgress(days float64) map[string]float64 {
	if days < 0 {
		days = 0
	}
	out := make(map[string]float64, len(Phases))
	threshold := 0.0
	for _, phase := range Phases {
		switch {
		case phase.BudgetDays == 0:
			out[phase.Label] = 0
		case days >= threshold+phase.BudgetDays:
			out[phase.Label] = 1
		case days > threshold:
			out[phase.Label] = (days - threshold) / phase.BudgetDays
		default:
			out[phase.Label] = 0
		}
		threshold += phase.BudgetDays
	}
	return out
}

// PhaseByLabel looks up a phase by its label.
func PhaseByLabel(label string) (Phase, bool) {
	for _, phase := range Phases {
		if phase.Label == label {
			return phase, true
		}
	}
	return Phase{}, false
}
