package estimate

import "github.com/anthropics/timeline-engine/internal/domain"

// Factor dimension names. These key TaskEstimate.ComplexityFactors.
const (
	FactorTechnical   = "technical"
	FactorIntegration = "integration"
	FactorAI          = "ai"
	FactorData        = "data"
	FactorUI          = "ui"
	FactorSecurity    = "security"
)

// patternTechnical scores the architectural difficulty of each pattern.
var patternTechnical = map[domain.ArchitecturePattern]float64{
	domain.PatternMonolithic:    1.0,
	domain.PatternMicroservices: 1.3,
	domain.PatternServerless:    1.15,
	domain.PatternEdgeComputing: 1.35,
	domain.PatternEventDriven:   1.25,
	domain.PatternPipeline:      1.2,
	domain.PatternHybridCloud:   1.3,
}

// distributedPatterns carry cross-service integration overhead.
var distributedPatterns = map[domain.ArchitecturePattern]bool{
	domain.PatternMicroservices: true,
	domain.PatternEventDriven:   true,
	domain.PatternHybridCloud:   true,
}

// ComputeFactors derives the per-dimension complexity factors from the
// architecture pattern and the parsed opportunity tags. Every factor is
// >= 1.0; 1.0 means no signal for that dimension.
func ComputeFactors(pattern domain.ArchitecturePattern, tags TagProfile) map[string]float64 {
	factors := map[string]float64{
		FactorTechnical:   1.0,
		FactorIntegration: 1.0,
		FactorAI:          1.0,
		FactorData:        1.0,
		FactorUI:          1.0,
		FactorSecurity:    1.0,
	}

	if v, ok := patternTechnical[pattern]; ok {
		factors[FactorTechnical] = v
	}

	if distributedPatterns[pattern] {
		factors[FactorIntegration] = 1.2
	}
	if len(tags.Industries) >= 2 {
		factors[FactorIntegration] *= 1.1
	}

	switch {
	case tags.HasHeavyAI():
		factors[FactorAI] = 1.45
	case tags.HasAI():
		factors[FactorAI] = 1.3
	}

	if pattern == domain.PatternPipeline ||
		tags.AI[TagML] || tags.AI[TagPrediction] || tags.AI[TagRecommendation] {
		factors[FactorData] = 1.2
	}

	if tags.Industries[IndustryRetail] || tags.Industries[IndustryEducation] {
		factors[FactorUI] = 1.15
	}

	if tags.Regulated() {
		factors[FactorSecurity] = 1.25
	}

	return factors
}

// factorProduct multiplies all dimensions together.
func factorProduct(factors map[string]float64) float64 {
	product := 1.0
	for _, v := range factors {
		product *= v
	}
	return product
}

// averageFactor is the arithmetic mean across dimensions, used for
// confidence discounting.
func averageFactor(factors map[string]float64) float64 {
	if len(factors) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, v := range factors {
		sum += v
	}
	return sum / float64(len(factors))
}
