// Package resource aggregates task demand into a team composition and
// cost plan.
package resource

import (
	"math"
	"sort"

	"github.com/anthropics/timeline-engine/internal/domain"
)

// defaultRates is the built-in hourly rate table keyed by role then tier.
var defaultRates = map[domain.ResourceRole]map[domain.SkillTier]float64{
	domain.RoleBackendDeveloper:  {domain.TierJunior: 60, domain.TierMid: 85, domain.TierSenior: 120, domain.TierExpert: 160},
	domain.RoleFrontendDeveloper: {domain.TierJunior: 55, domain.TierMid: 80, domain.TierSenior: 110, domain.TierExpert: 145},
	domain.RoleAIMLEngineer:      {domain.TierJunior: 80, domain.TierMid: 115, domain.TierSenior: 160, domain.TierExpert: 210},
	domain.RoleDataEngineer:      {domain.TierJunior: 70, domain.TierMid: 100, domain.TierSenior: 135, domain.TierExpert: 175},
	domain.RoleDevOpsEngineer:    {domain.TierJunior: 65, domain.TierMid: 95, domain.TierSenior: 130, domain.TierExpert: 170},
	domain.RoleQAEngineer:        {domain.TierJunior: 50, domain.TierMid: 70, domain.TierSenior: 95, domain.TierExpert: 125},
	domain.RoleSecurityEngineer:  {domain.TierJunior: 75, domain.TierMid: 110, domain.TierSenior: 150, domain.TierExpert: 195},
	domain.RoleUIUXDesigner:      {domain.TierJunior: 50, domain.TierMid: 75, domain.TierSenior: 100, domain.TierExpert: 130},
}

// availability is the role-specific scarcity discount.
var availability = map[domain.ResourceRole]float64{
	domain.RoleBackendDeveloper:  0.90,
	domain.RoleFrontendDeveloper: 0.90,
	domain.RoleAIMLEngineer:      0.70,
	domain.RoleDataEngineer:      0.80,
	domain.RoleDevOpsEngineer:    0.85,
	domain.RoleQAEngineer:        0.95,
	domain.RoleSecurityEngineer:  0.75,
	domain.RoleUIUXDesigner:      0.90,
}

// baseParallel is the role-specific base parallel-headcount cap.
var baseParallel = map[domain.ResourceRole]int{
	domain.RoleBackendDeveloper:  3,
	domain.RoleFrontendDeveloper: 2,
	domain.RoleAIMLEngineer:      2,
	domain.RoleDataEngineer:      2,
	domain.RoleDevOpsEngineer:    2,
	domain.RoleQAEngineer:        2,
	domain.RoleSecurityEngineer:  1,
	domain.RoleUIUXDesigner:      1,
}

// complexityTier maps overall project complexity to the baseline skill tier.
var complexityTier = map[domain.ComplexityLevel]domain.SkillTier{
	domain.ComplexityLow:      domain.TierMid,
	domain.ComplexityMedium:   domain.TierMid,
	domain.ComplexityHigh:     domain.TierSenior,
	domain.ComplexityVeryHigh: domain.TierExpert,
}

// largeMarketUSD is the addressable-market threshold for the hiring boost.
const largeMarketUSD = 1e9

// criticalRoleShare: a role appearing in more than this fraction of tasks
// is flagged as critical-path.
const criticalRoleShare = 0.30

// Allocator computes resource allocations. Rate overrides come from config.
type Allocator struct {
	RateOverrides map[string]map[string]float64
	WeekHours     float64
}

// NewAllocator returns an allocator with the standard 40-hour week.
func NewAllocator(rateOverrides map[string]map[string]float64) *Allocator {
	return &Allocator{RateOverrides: rateOverrides, WeekHours: 40}
}

// Allocate derives the team plan from the decomposed tasks.
// timelineWeeks is the roadmap's total schedule length.
func (a *Allocator) Allocate(tasks []domain.TaskEstimate, complexity domain.ComplexityLevel, market *domain.MarketContext, timelineWeeks float64, phases []domain.RoadmapPhase) domain.ResourceAllocation {
	hoursByRole := make(map[domain.ResourceRole]float64)
	tasksByRole := make(map[domain.ResourceRole]int)
	for _, t := range tasks {
		if len(t.RequiredRoles) == 0 {
			continue
		}
		share := t.EstimatedHours / float64(len(t.RequiredRoles))
		for _, role := range t.RequiredRoles {
			hoursByRole[role] += share
			tasksByRole[role]++
		}
	}

	roles := make([]domain.ResourceRole, 0, len(hoursByRole))
	for role := range hoursByRole {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	alloc := domain.ResourceAllocation{
		TeamComposition: make(map[domain.ResourceRole]int),
	}

	if timelineWeeks <= 0 {
		timelineWeeks = 1
	}

	marketBoost := market != nil && market.AddressableMarketUSD >= largeMarketUSD

	for _, role := range roles {
		required := hoursByRole[role]
		req := domain.ResourceRequirement{
			Role:           role,
			RequiredHours:  math.Round(required*100) / 100,
			Tier:           tierFor(role, complexity),
			Availability:   availabilityFor(role, marketBoost),
			MaxParallel:    parallelCapacity(role, required),
			OnCriticalPath: len(tasks) > 0 && float64(tasksByRole[role])/float64(len(tasks)) > criticalRoleShare,
		}
		req.HourlyRateUSD = a.rateFor(role, req.Tier)

		headcount := int(math.Ceil((required / req.Availability) / (timelineWeeks * a.WeekHours)))
		if headcount < 1 {
			headcount = 1
		}
		if headcount > req.MaxParallel {
			headcount = req.MaxParallel
		}

		alloc.Requirements = append(alloc.Requirements, req)
		alloc.TeamComposition[role] = headcount
		alloc.TotalCostUSD += required * req.HourlyRateUSD
	}

	alloc.TotalCostUSD = math.Round(alloc.TotalCostUSD*100) / 100
	months := timelineWeeks / 4.33
	if months > 0 {
		alloc.MonthlyCostUSD = math.Round(alloc.TotalCostUSD/months*100) / 100
	}

	alloc.Conflicts = detectConflicts(alloc.Requirements)
	alloc.Suggestions = suggest(alloc.Requirements, alloc.Conflicts)
	alloc.ScalingStrategy = rampPlan(phases, alloc.TeamComposition)

	return alloc
}

// tierFor maps complexity to a baseline tier, upgrading AI and data roles.
func tierFor(role domain.ResourceRole, complexity domain.ComplexityLevel) domain.SkillTier {
	tier, ok := complexityTier[complexity]
	if !ok {
		tier = domain.TierMid
	}
	if role == domain.RoleAIMLEngineer || role == domain.RoleDataEngineer {
		tier = tier.Upgrade()
	}
	return tier
}

func availabilityFor(role domain.ResourceRole, marketBoost bool) float64 {
	avail, ok := availability[role]
	if !ok {
		avail = 0.85
	}
	if marketBoost {
		avail += 0.1
		if avail > 1.0 {
			avail = 1.0
		}
	}
	return avail
}

// parallelCapacity adds one seat per 800-hour band of work, capped at 5.
func parallelCapacity(role domain.ResourceRole, requiredHours float64) int {
	capacity, ok := baseParallel[role]
	if !ok {
		capacity = 1
	}
	capacity += int(requiredHours / 800)
	if capacity > 5 {
		capacity = 5
	}
	return capacity
}

func (a *Allocator) rateFor(role domain.ResourceRole, tier domain.SkillTier) float64 {
	if tiers, ok := a.RateOverrides[string(role)]; ok {
		if rate, ok := tiers[string(tier)]; ok {
			return rate
		}
	}
	if tiers, ok := defaultRates[role]; ok {
		if rate, ok := tiers[tier]; ok {
			return rate
		}
	}
	return 100
}

// rampPlan produces the phase-indexed hiring ramp: start lean, peak through
// the middle, taper at the end.
func rampPlan(phases []domain.RoadmapPhase, team map[domain.ResourceRole]int) []domain.PhaseRampStep {
	if len(phases) == 0 {
		return nil
	}
	total := 0
	for _, n := range team {
		total += n
	}

	steps := make([]domain.PhaseRampStep, 0, len(phases))
	for i, phase := range phases {
		share := 1.0
		switch {
		case i == 0:
			share = 0.6
		case i == len(phases)-1 && len(phases) > 2:
			share = 0.7
		}
		headcount := int(math.Ceil(float64(total) * share))
		if headcount < 1 {
			headcount = 1
		}
		steps = append(steps, domain.PhaseRampStep{
			PhaseID:   phase.PhaseID,
			TeamShare: share,
			Headcount: headcount,
		})
	}
	return steps
}
