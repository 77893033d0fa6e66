package roster

import "github.com/blackrab369/Versaas-ai/internal/company"

// activationTable says which role categories pick up work in each
// lifecycle phase. Board seats are advisory and never activate.
var activationTable = map[int][]RoleCategory{
	company.PhaseDiscovery.Index:    {RoleDesign, RoleManagement},
	company.PhaseArchitecture.Index: {RoleDevelopment},
}

// phaseTasks describes the work an activated agent picks up.
var phaseTasks = map[int]string{
	company.PhaseDiscovery.Index:    "Conducting user research and creating wireframes",
	company.PhaseArchitecture.Index: "Designing system architecture and security model",
}

// ActiveIn reports whether agents in the given category pick up work
// during the given phase.
func ActiveIn(phase company.Phase, cat RoleCategory) bool {
	if cat == RoleBoard {
		return false
	}
	for _, active := range activationTable[phase.Index] {
		if active == cat {
			return true
		}
	}
	return false
}

// TaskFor returns the task description for agents activated in the
// given phase.
func TaskFor(phase company.Phase) string {
	return phaseTasks[phase.Index]
}
