// Package risk derives probabilistic schedule risks from structural
// signals. Identification is deterministic: the same inputs always yield
// the same risk list.
package risk

import (
	"fmt"
	"strings"

	"github.com/anthropics/timeline-engine/internal/domain"
)

// performanceKeywords in the opportunity description signal latency or
// throughput sensitivity.
var performanceKeywords = []string{"scale", "real-time", "real time", "low latency", "high throughput"}

// externalAPIKeywords in a task description signal third-party coupling.
var externalAPIKeywords = []string{"external", "third-party", "vendor"}

// longDescriptionChars is the scope-creep trigger threshold.
const longDescriptionChars = 600

// Identify derives the risk list from the roadmap, opportunity, and
// decomposed task structure.
func Identify(roadmap domain.Roadmap, opp domain.Opportunity, tasks []domain.TaskEstimate) []domain.TimelineRisk {
	var risks []domain.TimelineRisk
	add := func(r domain.TimelineRisk) {
		r.RiskID = fmt.Sprintf("risk-%03d", len(risks)+1)
		risks = append(risks, r)
	}

	if roadmap.OverallComplexity == domain.ComplexityHigh || roadmap.OverallComplexity == domain.ComplexityVeryHigh {
		add(domain.TimelineRisk{
			Category:          domain.RiskTechnical,
			Description:       "High overall technical complexity may surface unplanned rework",
			Probability:       0.7,
			ImpactDays:        14,
			Mitigation:        "Schedule architecture spikes early and timebox unknowns",
			MitigationCostUSD: 8000,
			Indicators:        []string{"spike tasks overrunning", "design review churn"},
		})
	}

	if anyTaskRequires(tasks, domain.RoleAIMLEngineer) {
		add(domain.TimelineRisk{
			Category:          domain.RiskPerformance,
			Description:       "AI model performance may fall short of acceptance thresholds",
			Probability:       0.5,
			ImpactDays:        21,
			Mitigation:        "Define evaluation baselines and a non-ML fallback path",
			MitigationCostUSD: 12000,
			Indicators:        []string{"evaluation metrics below baseline", "training iterations increasing"},
		})
	}

	if singleRoleTaskCount(tasks) > 5 {
		add(domain.TimelineRisk{
			Category:          domain.RiskResource,
			Description:       "Many tasks depend on a single resource role, creating key-person risk",
			Probability:       0.4,
			ImpactDays:        10,
			Mitigation:        "Cross-train team members and document critical knowledge",
			MitigationCostUSD: 5000,
			Indicators:        []string{"single-owner queues growing", "review latency on one role"},
		})
	}

	if roadmap.ArchitecturePattern == domain.PatternMicroservices {
		add(domain.TimelineRisk{
			Category:          domain.RiskIntegration,
			Description:       "Microservices integration adds cross-service coordination overhead",
			Probability:       0.6,
			ImpactDays:        7,
			Mitigation:        "Contract-test service boundaries and stand up integration environments early",
			MitigationCostUSD: 6000,
			Indicators:        []string{"contract test failures", "cross-team blocking issues"},
		})
	}

	if anyTaskMentions(tasks, externalAPIKeywords) {
		add(domain.TimelineRisk{
			Category:          domain.RiskExternal,
			Description:       "External API dependencies may change or rate-limit unexpectedly",
			Probability:       0.3,
			ImpactDays:        5,
			Mitigation:        "Wrap vendors behind adapters and negotiate SLAs",
			MitigationCostUSD: 3000,
			Indicators:        []string{"vendor deprecation notices", "sandbox instability"},
		})
	}

	if len(opp.Description) > longDescriptionChars {
		add(domain.TimelineRisk{
			Category:          domain.RiskScope,
			Description:       "Broad product scope invites requirement growth during delivery",
			Probability:       0.8,
			ImpactDays:        14,
			Mitigation:        "Lock an MVP definition and run a change-control board",
			MitigationCostUSD: 4000,
			Indicators:        []string{"backlog growth rate", "requirement churn per sprint"},
		})
	}

	if mentionsAny(strings.ToLower(opp.Description), performanceKeywords) {
		add(domain.TimelineRisk{
			Category:          domain.RiskPerformance,
			Description:       "Performance-sensitive requirements may need extra optimization cycles",
			Probability:       0.6,
			ImpactDays:        10,
			Mitigation:        "Budget load testing into every milestone and profile continuously",
			MitigationCostUSD: 7000,
			Indicators:        []string{"latency regression in CI", "load test failures"},
		})
	}

	return risks
}

func anyTaskRequires(tasks []domain.TaskEstimate, role domain.ResourceRole) bool {
	for _, t := range tasks {
		for _, r := range t.RequiredRoles {
			if r == role {
				return true
			}
		}
	}
	return false
}

func singleRoleTaskCount(tasks []domain.TaskEstimate) int {
	n := 0
	for _, t := range tasks {
		if len(t.RequiredRoles) == 1 {
			n++
		}
	}
	return n
}

func anyTaskMentions(tasks []domain.TaskEstimate, keywords []string) bool {
	for _, t := range tasks {
		desc := strings.ToLower(t.Description + " " + t.Name)
		if mentionsAny(desc, keywords) {
			return true
		}
	}
	return false
}

func mentionsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
