// Package timeline assembles the full estimate: decomposition, critical
// path, allocation, risks, simulation, and the final aggregate.
package timeline

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anthropics/timeline-engine/internal/config"
	"github.com/anthropics/timeline-engine/internal/domain"
	"github.com/anthropics/timeline-engine/internal/estimate"
	"github.com/anthropics/timeline-engine/internal/montecarlo"
	"github.com/anthropics/timeline-engine/internal/resource"
	"github.com/anthropics/timeline-engine/internal/risk"
	"github.com/anthropics/timeline-engine/internal/schedule"
	"github.com/anthropics/timeline-engine/internal/store"
)

// Engine is the aggregate entry point. One Generate call is a pure batch
// computation over its inputs; the store is only touched to persist the
// finished estimate.
type Engine struct {
	DB          *sql.DB
	Cfg         *config.Config
	Estimates   *store.EstimateRepo
	Simulations *store.SimulationRepo
}

// New creates an engine. A nil db disables persistence, which embedding
// callers use when they only want the computation.
func New(cfg *config.Config, db *sql.DB) *Engine {
	return &Engine{
		DB:          db,
		Cfg:         cfg,
		Estimates:   &store.EstimateRepo{},
		Simulations: &store.SimulationRepo{},
	}
}

// Generate runs the full pipeline and returns a fresh immutable estimate.
// On any fatal error nothing is returned and nothing is persisted.
func (e *Engine) Generate(ctx context.Context, req domain.EstimateRequest) (*domain.TimelineEstimate, error) {
	est, err := estimate.New(req.Method, req.Roadmap, req.Opportunity)
	if err != nil {
		return nil, err
	}

	tasks, err := est.Decompose()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &domain.TimelineEstimate{
		EstimateID:      uuid.NewString(),
		Method:          req.Method,
		Tasks:           tasks,
		Milestones:      make(map[string]time.Time),
		PhaseBufferDays: make(map[string]int),
		GeneratedAt:     time.Now().UTC(),
	}

	// An empty roadmap, or one whose phases all lack archetypes, yields a
	// zero-duration estimate rather than an error.
	if len(tasks) == 0 {
		result.Confidence = 0
		return result, e.persist(ctx, result)
	}

	graph, err := schedule.NewGraph(tasks)
	if err != nil {
		return nil, err
	}
	analysis, err := schedule.Analyze(graph)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timelineWeeks := roadmapWeeks(req.Roadmap.Phases)
	allocator := resource.NewAllocator(e.Cfg.HourlyRates)
	if e.Cfg.WorkWeekHours > 0 {
		allocator.WeekHours = float64(e.Cfg.WorkWeekHours)
	}
	allocation := allocator.Allocate(tasks, req.Roadmap.OverallComplexity, req.Market, timelineWeeks, req.Roadmap.Phases)

	risks := risk.Identify(req.Roadmap, req.Opportunity, tasks)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var simulation *domain.MonteCarloSimulation
	if req.Method == domain.MethodMonteCarlo || req.RunSimulation {
		simulation, err = e.simulate(ctx, req, tasks, analysis.CriticalPath, risks)
		if err != nil {
			return nil, err
		}
	}

	totalDays := analysis.ProjectEndDays
	if simulation != nil {
		totalDays = simulation.MeanDays
	}

	result.TotalDurationDays = round2(totalDays)
	result.Confidence = round2(overallConfidence(tasks, simulation, risks))
	result.Allocation = allocation
	result.Risks = risks
	result.Simulation = simulation
	result.CriticalPath = analysis.CriticalPath
	result.Milestones = milestones(result.GeneratedAt, req.Roadmap.Phases)
	result.PhaseBufferDays = phaseBuffers(req.Roadmap, result.Confidence, risks)
	result.Cost = buildCost(allocation, risks, totalDays, e.Cfg.InfraMonthlyUSD)

	return result, e.persist(ctx, result)
}

// simulate resolves the iteration count and seed from the request and
// config, then runs the sharded Monte Carlo loop.
func (e *Engine) simulate(ctx context.Context, req domain.EstimateRequest, tasks []domain.TaskEstimate, criticalPath []string, risks []domain.TimelineRisk) (*domain.MonteCarloSimulation, error) {
	iterations := req.Iterations
	if iterations == 0 {
		iterations = e.Cfg.DefaultIterations
	}
	if iterations < e.Cfg.MinIterations {
		iterations = e.Cfg.MinIterations
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sim, err := montecarlo.New(iterations, e.Cfg.SimWorkers, seed)
	if err != nil {
		return nil, err
	}
	return sim.Run(ctx, tasks, criticalPath, risks)
}

// persist writes the estimate and, when present, its simulation in one
// transaction. A nil DB skips persistence entirely.
func (e *Engine) persist(ctx context.Context, est *domain.TimelineEstimate) error {
	if e.DB == nil {
		return nil
	}

	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := e.Estimates.SaveTx(ctx, tx, est); err != nil {
		return fmt.Errorf("save estimate: %w", err)
	}
	if est.Simulation != nil {
		if err := e.Simulations.SaveTx(ctx, tx, est.EstimateID, est.Simulation); err != nil {
			return fmt.Errorf("save simulation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// overallConfidence blends simulation spread or per-task confidence, then
// discounts 10% per high-impact risk.
func overallConfidence(tasks []domain.TaskEstimate, sim *domain.MonteCarloSimulation, risks []domain.TimelineRisk) float64 {
	var conf float64
	if sim != nil && sim.MeanDays > 0 {
		conf = clamp(1-sim.StdDevDays/sim.MeanDays, 0.30, 0.95)
	} else {
		sum := 0.0
		for _, t := range tasks {
			sum += t.Confidence
		}
		conf = sum / float64(len(tasks))
	}

	for _, r := range risks {
		if r.HighImpact() {
			conf *= 0.9
		}
	}
	return clamp(conf, 0, 1)
}

// milestones maps each phase to its projected end date, accumulating
// calendar weeks from the generation time.
func milestones(start time.Time, phases []domain.RoadmapPhase) map[string]time.Time {
	out := make(map[string]time.Time, len(phases))
	weeks := 0
	for _, p := range phases {
		weeks += p.DurationWeeks
		out[p.PhaseID] = start.AddDate(0, 0, weeks*7)
	}
	return out
}

func roadmapWeeks(phases []domain.RoadmapPhase) float64 {
	total := 0
	for _, p := range phases {
		total += p.DurationWeeks
	}
	return float64(total)
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
