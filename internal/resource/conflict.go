package resource

import (
	"fmt"

	"github.com/anthropics/timeline-engine/internal/domain"
)

// scarceAvailability marks a role as a staffing bottleneck when it is also
// on the critical path.
const scarceAvailability = 0.8

// seniorConcentrationLimit is the number of senior-or-above roles beyond
// which hiring becomes the schedule constraint.
const seniorConcentrationLimit = 3

// detectConflicts evaluates the allocation against the staffing thresholds,
// in the same spirit as a budget governor's warn/halt ratios.
func detectConflicts(requirements []domain.ResourceRequirement) []domain.ResourceConflict {
	var conflicts []domain.ResourceConflict

	for _, req := range requirements {
		if req.Availability < scarceAvailability && req.OnCriticalPath {
			conflicts = append(conflicts, domain.ResourceConflict{
				Role:   req.Role,
				Kind:   "scarce_critical_role",
				Impact: "high",
				Description: fmt.Sprintf("%s is on the critical path with only %.0f%% availability",
					req.Role, req.Availability*100),
			})
		}
	}

	seniorRoles := 0
	for _, req := range requirements {
		if req.Tier.Rank() >= domain.TierSenior.Rank() {
			seniorRoles++
		}
	}
	if seniorRoles > seniorConcentrationLimit {
		conflicts = append(conflicts, domain.ResourceConflict{
			Kind:   "skill_concentration",
			Impact: "medium",
			Description: fmt.Sprintf("%d roles require senior or expert talent; hiring lead time may gate the schedule",
				seniorRoles),
		})
	}

	return conflicts
}

// suggest produces advisory optimization strings. These are human guidance,
// not executable actions.
func suggest(requirements []domain.ResourceRequirement, conflicts []domain.ResourceConflict) []string {
	var suggestions []string

	for _, c := range conflicts {
		switch c.Kind {
		case "scarce_critical_role":
			suggestions = append(suggestions,
				fmt.Sprintf("Start recruiting for %s before kickoff or contract specialists to cover the gap", c.Role))
		case "skill_concentration":
			suggestions = append(suggestions,
				"Phase hiring so senior roles onboard as their phases approach rather than all up front")
		}
	}

	for _, req := range requirements {
		if !req.OnCriticalPath && req.RequiredHours < 80 {
			suggestions = append(suggestions,
				fmt.Sprintf("Consider outsourcing %s work (%.0f hours, off the critical path)", req.Role, req.RequiredHours))
		}
	}

	return suggestions
}
