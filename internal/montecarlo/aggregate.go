package montecarlo

import (
	"math"
	"sort"

	"github.com/anthropics/timeline-engine/internal/domain"
)

// Metric names in MonteCarloSimulation.Metrics.
const (
	MetricTotalDuration = "total_duration_days"
	MetricRiskDelay     = "risk_delay_days"
)

// scenarioSpecs defines how the named risk scenarios are synthesized:
// which percentile of the distribution they read and the probability
// threshold a risk must clear to be listed as contributing.
var scenarioSpecs = []struct {
	name          string
	percentile    float64
	probability   float64
	riskThreshold float64
}{
	{"low", 25, 0.25, 0.7},
	{"medium", 75, 0.50, 0.5},
	{"high", 90, 0.10, 0.3},
}

// confidence interval levels mapped to symmetric tail trims.
var intervalLevels = map[string]float64{
	"50": 25,
	"75": 12.5,
	"90": 5,
	"95": 2.5,
}

// aggregate reduces the merged sample list to distribution statistics.
func aggregate(samples []sample, risks []domain.TimelineRisk) *domain.MonteCarloSimulation {
	totals := make([]float64, len(samples))
	delays := make([]float64, len(samples))
	for i, s := range samples {
		totals[i] = s.total
		delays[i] = s.riskDelay
	}
	sort.Float64s(totals)
	sort.Float64s(delays)

	mean := meanOf(totals)
	result := &domain.MonteCarloSimulation{
		MeanDays:            round2(mean),
		MedianDays:          round2(percentile(totals, 50)),
		StdDevDays:          round2(stdDev(totals, mean)),
		ConfidenceIntervals: make(map[string]domain.Interval, len(intervalLevels)),
		Metrics: map[string]domain.Percentiles{
			MetricTotalDuration: percentilesOf(totals),
			MetricRiskDelay:     percentilesOf(delays),
		},
	}

	for level, trim := range intervalLevels {
		result.ConfidenceIntervals[level] = domain.Interval{
			Low:  round2(percentile(totals, trim)),
			High: round2(percentile(totals, 100-trim)),
		}
	}

	for _, spec := range scenarioSpecs {
		var contributing []string
		for _, r := range risks {
			if r.Probability >= spec.riskThreshold {
				contributing = append(contributing, r.RiskID)
			}
		}
		result.Scenarios = append(result.Scenarios, domain.RiskScenario{
			Name:         spec.name,
			Probability:  spec.probability,
			DurationDays: round2(percentile(totals, spec.percentile)),
			Contributing: contributing,
		})
	}

	return result
}

func percentilesOf(sorted []float64) domain.Percentiles {
	return domain.Percentiles{
		P10: round2(percentile(sorted, 10)),
		P50: round2(percentile(sorted, 50)),
		P90: round2(percentile(sorted, 90)),
	}
}

// percentile reads a sorted slice by linear interpolation between ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation.
func stdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
