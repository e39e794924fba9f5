package timeline

import (
	"math"
	"strings"

	"github.com/anthropics/timeline-engine/internal/domain"
)

// bufferComplexityMultiplier scales the base buffer by roadmap difficulty.
func bufferComplexityMultiplier(c domain.ComplexityLevel) float64 {
	switch c {
	case domain.ComplexityLow:
		return 0.8
	case domain.ComplexityHigh:
		return 1.3
	case domain.ComplexityVeryHigh:
		return 1.6
	default:
		return 1.0
	}
}

// phaseBuffers recommends contingency days per phase. The base buffer grows
// as overall confidence drops, scaled by complexity; phases named by a risk
// description also absorb that risk's probability-weighted impact. Every
// phase gets at least one day.
func phaseBuffers(roadmap domain.Roadmap, confidence float64, risks []domain.TimelineRisk) map[string]int {
	base := math.Round((1 - confidence) * 14)
	mult := bufferComplexityMultiplier(roadmap.OverallComplexity)

	out := make(map[string]int, len(roadmap.Phases))
	for _, phase := range roadmap.Phases {
		days := base * mult
		days += riskWeightedDays(phase.PhaseID, risks)

		buffer := int(math.Round(days))
		if buffer < 1 {
			buffer = 1
		}
		out[phase.PhaseID] = buffer
	}
	return out
}

// riskWeightedDays sums probability-weighted impact over risks whose
// description references the phase.
func riskWeightedDays(phaseID string, risks []domain.TimelineRisk) float64 {
	needle := strings.ToLower(phaseID)
	total := 0.0
	for _, r := range risks {
		if strings.Contains(strings.ToLower(r.Description), needle) {
			total += r.Probability * r.ImpactDays
		}
	}
	return total
}
