package timeline

import (
	"math"

	"github.com/anthropics/timeline-engine/internal/domain"
)

// workingDaysPerMonth converts a day-count schedule to billing months
// (4.33 weeks of 5 working days).
const workingDaysPerMonth = 4.33 * 5

// buildCost assembles the cost breakdown: base development cost,
// probability-weighted risk-mitigation contingency, a delay contingency
// covering 10% of the schedule at the daily burn rate, and a flat monthly
// infrastructure estimate.
func buildCost(alloc domain.ResourceAllocation, risks []domain.TimelineRisk, durationDays, infraMonthlyUSD float64) domain.CostAnalysis {
	cost := domain.CostAnalysis{
		BaseCostUSD: alloc.TotalCostUSD,
	}

	for _, r := range risks {
		cost.RiskContingencyUSD += r.Probability * r.MitigationCostUSD
	}

	dailyBurn := alloc.MonthlyCostUSD / workingDaysPerMonth
	cost.DelayContingencyUSD = 0.1 * durationDays * dailyBurn

	months := durationDays / workingDaysPerMonth
	cost.InfrastructureUSD = infraMonthlyUSD * months

	cost.RiskContingencyUSD = round2(cost.RiskContingencyUSD)
	cost.DelayContingencyUSD = round2(cost.DelayContingencyUSD)
	cost.InfrastructureUSD = round2(cost.InfrastructureUSD)
	cost.TotalCostUSD = round2(cost.BaseCostUSD + cost.RiskContingencyUSD + cost.DelayContingencyUSD + cost.InfrastructureUSD)

	if months > 0 {
		cost.MonthlyBurnUSD = round2(cost.TotalCostUSD / months)
	}
	return cost
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
