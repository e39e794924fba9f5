package timeline

import (
	"testing"

	"github.com/anthropics/timeline-engine/internal/domain"
)

func twoPhaseRoadmap(complexity domain.ComplexityLevel) domain.Roadmap {
	return domain.Roadmap{
		OverallComplexity: complexity,
		Phases: []domain.RoadmapPhase{
			{PhaseID: "foundation", DurationWeeks: 4, EffortHours: 320},
			{PhaseID: "launch", DurationWeeks: 2, EffortHours: 160},
		},
	}
}

func TestPhaseBuffers_Base(t *testing.T) {
	// confidence 0.5 -> base = round(0.5 * 14) = 7 days, medium multiplier 1.0.
	buffers := phaseBuffers(twoPhaseRoadmap(domain.ComplexityMedium), 0.5, nil)

	for _, phase := range []string{"foundation", "launch"} {
		if buffers[phase] != 7 {
			t.Errorf("buffer[%s] = %d, want 7", phase, buffers[phase])
		}
	}
}

func TestPhaseBuffers_ComplexityScaling(t *testing.T) {
	tests := []struct {
		complexity domain.ComplexityLevel
		want       int
	}{
		{domain.ComplexityLow, 6},       // 7 * 0.8 = 5.6 -> 6
		{domain.ComplexityMedium, 7},    // 7 * 1.0
		{domain.ComplexityHigh, 9},      // 7 * 1.3 = 9.1 -> 9
		{domain.ComplexityVeryHigh, 11}, // 7 * 1.6 = 11.2 -> 11
	}

	for _, tt := range tests {
		t.Run(string(tt.complexity), func(t *testing.T) {
			buffers := phaseBuffers(twoPhaseRoadmap(tt.complexity), 0.5, nil)
			if buffers["foundation"] != tt.want {
				t.Errorf("buffer = %d, want %d", buffers["foundation"], tt.want)
			}
		})
	}
}

func TestPhaseBuffers_RiskWeighted(t *testing.T) {
	roadmap := twoPhaseRoadmap(domain.ComplexityMedium)

	risks := []domain.TimelineRisk{
		{Description: "Integration churn during the launch phase", Probability: 0.5, ImpactDays: 10},
	}
	doubled := []domain.TimelineRisk{
		{Description: "Integration churn during the launch phase", Probability: 0.5, ImpactDays: 20},
	}

	base := phaseBuffers(roadmap, 0.5, nil)
	weighted := phaseBuffers(roadmap, 0.5, risks)
	heavier := phaseBuffers(roadmap, 0.5, doubled)

	if weighted["launch"] != base["launch"]+5 {
		t.Errorf("launch buffer = %d, want %d + 5 weighted days", weighted["launch"], base["launch"])
	}
	if weighted["foundation"] != base["foundation"] {
		t.Errorf("unreferenced phase buffer changed: %d", weighted["foundation"])
	}
	if heavier["launch"] <= weighted["launch"] {
		t.Error("doubling risk impact must increase the buffer")
	}
}

func TestPhaseBuffers_Minimum(t *testing.T) {
	// Full confidence still leaves a one-day floor.
	buffers := phaseBuffers(twoPhaseRoadmap(domain.ComplexityLow), 1.0, nil)
	if buffers["foundation"] != 1 {
		t.Errorf("buffer = %d, want floor of 1", buffers["foundation"])
	}
}

func TestBuildCost(t *testing.T) {
	alloc := domain.ResourceAllocation{TotalCostUSD: 10000, MonthlyCostUSD: 5000}
	risks := []domain.TimelineRisk{
		{Probability: 0.5, MitigationCostUSD: 2000},
		{Probability: 0.2, MitigationCostUSD: 1000},
	}

	// Exactly one billing month of schedule.
	cost := buildCost(alloc, risks, workingDaysPerMonth, 500)

	if cost.BaseCostUSD != 10000 {
		t.Errorf("BaseCostUSD = %f, want 10000", cost.BaseCostUSD)
	}
	if cost.RiskContingencyUSD != 1200 {
		t.Errorf("RiskContingencyUSD = %f, want 1200", cost.RiskContingencyUSD)
	}
	// 10% of the schedule at the daily burn rate is 10% of a month's burn.
	if cost.DelayContingencyUSD != 500 {
		t.Errorf("DelayContingencyUSD = %f, want 500", cost.DelayContingencyUSD)
	}
	if cost.InfrastructureUSD != 500 {
		t.Errorf("InfrastructureUSD = %f, want 500", cost.InfrastructureUSD)
	}
	if cost.TotalCostUSD != 12200 {
		t.Errorf("TotalCostUSD = %f, want 12200", cost.TotalCostUSD)
	}
	if cost.MonthlyBurnUSD != 12200 {
		t.Errorf("MonthlyBurnUSD = %f, want 12200 over one month", cost.MonthlyBurnUSD)
	}
}

func TestBuildCost_ZeroDuration(t *testing.T) {
	cost := buildCost(domain.ResourceAllocation{}, nil, 0, 500)
	if cost.TotalCostUSD != 0 || cost.MonthlyBurnUSD != 0 {
		t.Errorf("zero-duration cost should be zero, got %+v", cost)
	}
}
