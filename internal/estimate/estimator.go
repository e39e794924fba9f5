// Package estimate decomposes roadmap phases into task estimates under a
// selected estimation method.
package estimate

import (
	"fmt"
	"math"

	"github.com/anthropics/timeline-engine/internal/domain"
	"github.com/anthropics/timeline-engine/internal/template"
)

// fibonacci is the story-point scale.
var fibonacci = []float64{1, 2, 3, 5, 8, 13, 21, 34, 55, 89}

// velocityDivisor converts story points back to hours, keyed by complexity.
var velocityDivisor = map[domain.ComplexityLevel]float64{
	domain.ComplexityLow:      1.2,
	domain.ComplexityMedium:   1.0,
	domain.ComplexityHigh:     0.8,
	domain.ComplexityVeryHigh: 0.6,
}

// historicalVelocity is the per-task-type velocity factor for the
// historical-data method. Values above 1 mean the type lands faster than
// its raw estimate. Absent types fall back to expert judgment.
var historicalVelocity = map[domain.TaskType]float64{
	domain.TaskBackend:        1.1,
	domain.TaskFrontend:       1.05,
	domain.TaskAPI:            1.1,
	domain.TaskInfrastructure: 1.0,
	domain.TaskTesting:        1.15,
	domain.TaskData:           0.95,
	domain.TaskDocumentation:  1.2,
	domain.TaskDeployment:     1.0,
}

// methodSeedConfidence is each method's starting confidence before discounts.
var methodSeedConfidence = map[domain.EstimationMethod]float64{
	domain.MethodHistoricalData: 0.85,
	domain.MethodFunctionPoint:  0.80,
	domain.MethodParametric:     0.78,
	domain.MethodStoryPoint:     0.75,
	domain.MethodExpertJudgment: 0.70,
	domain.MethodMonteCarlo:     0.70,
}

// intraPhaseDeps is the fixed task-type adjacency table: a task of the key
// type depends on earlier same-phase tasks of the listed types.
var intraPhaseDeps = map[domain.TaskType][]domain.TaskType{
	domain.TaskAPI:          {domain.TaskBackend},
	domain.TaskFrontend:     {domain.TaskBackend, domain.TaskAPI},
	domain.TaskAIML:         {domain.TaskData},
	domain.TaskTesting:      {domain.TaskBackend, domain.TaskFrontend},
	domain.TaskSecurity:     {domain.TaskBackend, domain.TaskAPI},
	domain.TaskDeployment:   {domain.TaskTesting},
	domain.TaskOptimization: {domain.TaskBackend},
}

// Estimator turns roadmap phases into task estimates.
type Estimator struct {
	method  domain.EstimationMethod
	roadmap domain.Roadmap
	tags    TagProfile
	factors map[string]float64
}

// New validates the method and prepares an estimator for the given inputs.
// An unknown method is a configuration error naming the offending value.
func New(method domain.EstimationMethod, roadmap domain.Roadmap, opp domain.Opportunity) (*Estimator, error) {
	if !method.IsValid() {
		return nil, domain.NewEngineError(
			domain.ErrUnknownMethod.Code,
			fmt.Sprintf("%s: %q", domain.ErrUnknownMethod.Message, method),
		)
	}
	if roadmap.OverallComplexity != "" && !roadmap.OverallComplexity.IsValid() {
		return nil, domain.NewEngineError(
			domain.ErrInvalidComplexity.Code,
			fmt.Sprintf("%s: %q", domain.ErrInvalidComplexity.Message, roadmap.OverallComplexity),
		)
	}
	if roadmap.ArchitecturePattern != "" && !roadmap.ArchitecturePattern.IsValid() {
		return nil, domain.NewEngineError(
			domain.ErrInvalidPattern.Code,
			fmt.Sprintf("%s: %q", domain.ErrInvalidPattern.Message, roadmap.ArchitecturePattern),
		)
	}

	tags := ParseTags(opp.AISolutionTags, opp.TargetIndustries)
	return &Estimator{
		method:  method,
		roadmap: roadmap,
		tags:    tags,
		factors: ComputeFactors(roadmap.ArchitecturePattern, tags),
	}, nil
}

// Factors exposes the computed complexity factors.
func (e *Estimator) Factors() map[string]float64 {
	return e.factors
}

// Tags exposes the parsed tag profile.
func (e *Estimator) Tags() TagProfile {
	return e.tags
}

// Decompose produces the full ordered task-estimate list for the roadmap.
// Task ids are deterministic so identical inputs yield identical output.
// Phases with no archetype contribute nothing, per the degradation policy.
func (e *Estimator) Decompose() ([]domain.TaskEstimate, error) {
	var all []domain.TaskEstimate
	var prevTail []string
	seq := 0

	for _, phase := range e.roadmap.Phases {
		if phase.DurationWeeks <= 0 || phase.EffortHours <= 0 {
			return nil, domain.NewEngineError(
				domain.ErrInvalidPhase.Code,
				fmt.Sprintf("%s: %q requires positive duration and effort", domain.ErrInvalidPhase.Message, phase.PhaseID),
			)
		}

		phaseTasks := e.decomposePhase(phase, prevTail, &seq)
		if len(phaseTasks) == 0 {
			continue
		}
		all = append(all, phaseTasks...)
		prevTail = tailIDs(phaseTasks, 2)
	}

	return all, nil
}

// decomposePhase instantiates the phase's archetype templates.
func (e *Estimator) decomposePhase(phase domain.RoadmapPhase, prevTail []string, seq *int) []domain.TaskEstimate {
	templates := template.ForPhase(phase.PhaseID)
	if len(templates) == 0 {
		return nil
	}

	complexity := e.roadmap.OverallComplexity
	if complexity == "" {
		complexity = domain.ComplexityMedium
	}

	tasks := make([]domain.TaskEstimate, 0, len(templates))
	for i, tmpl := range templates {
		*seq++
		base := tmpl.BaseHours * complexity.Multiplier()
		opt, nominal, pess, velocity := e.threePoint(base, tmpl.Type, complexity)

		task := domain.TaskEstimate{
			TaskID:            fmt.Sprintf("task-%03d", *seq),
			Name:              tmpl.Name,
			Description:       tmpl.Description,
			PhaseID:           phase.PhaseID,
			Type:              tmpl.Type,
			EstimatedHours:    round2(nominal),
			OptimisticHours:   round2(opt),
			PessimisticHours:  round2(pess),
			Confidence:        e.confidence(tmpl.Type),
			Dependencies:      e.resolveDeps(tmpl.Type, tasks, prevTail, i),
			RequiredRoles:     tmpl.Roles,
			ComplexityFactors: e.factors,
			VelocityFactor:    velocity,
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// threePoint applies the selected method to obtain (optimistic, nominal,
// pessimistic) hours for a complexity-scaled base.
func (e *Estimator) threePoint(base float64, taskType domain.TaskType, complexity domain.ComplexityLevel) (opt, nominal, pess, velocity float64) {
	adjusted := base * factorProduct(e.factors)

	switch e.method {
	case domain.MethodFunctionPoint:
		nominal = adjusted
		return 0.75 * nominal, nominal, 1.25 * nominal, 0

	case domain.MethodStoryPoint:
		points := nearestFibonacci(adjusted / 8)
		divisor := velocityDivisor[complexity]
		if divisor == 0 {
			divisor = 1.0
		}
		nominal = points * 8 / divisor
		return 0.7 * nominal, nominal, 1.5 * nominal, 0

	case domain.MethodHistoricalData:
		v, ok := historicalVelocity[taskType]
		if !ok {
			opt, nominal, pess = pert(adjusted)
			return opt, nominal, pess, 0
		}
		nominal = adjusted / v
		return 0.85 * nominal, nominal, 1.2 * nominal, v

	case domain.MethodParametric:
		// Calibrated function-point variant: larger roadmaps attract a
		// coordination surcharge.
		surcharge := 1 + 0.02*math.Min(float64(len(e.roadmap.Phases)), 8)
		nominal = adjusted * surcharge
		return 0.85 * nominal, nominal, 1.35 * nominal, 0

	default:
		// Expert judgment, also the per-task basis for monte_carlo.
		opt, nominal, pess = pert(adjusted)
		return opt, nominal, pess, 0
	}
}

// pert computes the three-point PERT estimate from an adjusted single value.
func pert(adjusted float64) (opt, nominal, pess float64) {
	opt = 0.6 * adjusted
	pess = 1.8 * adjusted
	nominal = (opt + 4*adjusted + pess) / 6
	return opt, nominal, pess
}

// confidence seeds from the method and discounts for complexity and
// unfamiliar task types.
func (e *Estimator) confidence(taskType domain.TaskType) float64 {
	c := methodSeedConfidence[e.method]

	avg := averageFactor(e.factors)
	switch {
	case avg > 1.3:
		c -= 0.10
	case avg > 1.15:
		c -= 0.05
	}

	if taskType == domain.TaskAIML || taskType == domain.TaskSecurity {
		c -= 0.10
	}
	if e.tags.UnknownCount > 0 {
		c -= 0.05
	}

	return clamp(c, 0.3, 0.95)
}

// resolveDeps applies the dependency heuristic: same-phase adjacency edges
// to earlier tasks, and the previous phase's tail for tasks with no
// same-phase predecessor.
func (e *Estimator) resolveDeps(taskType domain.TaskType, earlier []domain.TaskEstimate, prevTail []string, pos int) []string {
	var deps []string
	for _, wantType := range intraPhaseDeps[taskType] {
		for i := 0; i < pos && i < len(earlier); i++ {
			if earlier[i].Type == wantType {
				deps = append(deps, earlier[i].TaskID)
				break
			}
		}
	}
	if len(deps) == 0 {
		deps = append(deps, prevTail...)
	}
	return deps
}

// tailIDs returns the ids of the last n tasks.
func tailIDs(tasks []domain.TaskEstimate, n int) []string {
	if len(tasks) < n {
		n = len(tasks)
	}
	ids := make([]string, 0, n)
	for _, t := range tasks[len(tasks)-n:] {
		ids = append(ids, t.TaskID)
	}
	return ids
}

func nearestFibonacci(points float64) float64 {
	best := fibonacci[0]
	bestDist := math.Abs(points - best)
	for _, f := range fibonacci[1:] {
		if d := math.Abs(points - f); d < bestDist {
			best, bestDist = f, d
		}
	}
	return best
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
