// Package montecarlo samples the schedule distribution for an estimate's
// critical path under probabilistic risk injection.
package montecarlo

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/anthropics/timeline-engine/internal/domain"
)

// sample is one iteration's outcome, in days.
type sample struct {
	total     float64
	riskDelay float64
}

// Simulator runs the sampling loop. The random source is seeded explicitly
// so runs are reproducible; each worker shard derives its own generator
// from the base seed and shards are merged by concatenation.
type Simulator struct {
	Iterations int
	Workers    int
	Seed       int64
}

// New creates a simulator. Iterations must be positive; workers below 1
// are raised to 1.
func New(iterations, workers int, seed int64) (*Simulator, error) {
	if iterations <= 0 {
		return nil, domain.ErrBadIterations
	}
	if workers < 1 {
		workers = 1
	}
	return &Simulator{Iterations: iterations, Workers: workers, Seed: seed}, nil
}

// Run executes the full simulation: Setup, the sampling loop, and
// aggregation. Tasks off the critical path do not contribute to the
// sampled duration. A run with no critical tasks and no risks still
// completes and reports a degenerate distribution.
func (s *Simulator) Run(ctx context.Context, tasks []domain.TaskEstimate, criticalPath []string, risks []domain.TimelineRisk) (*domain.MonteCarloSimulation, error) {
	critical := indexCritical(tasks, criticalPath)

	shards := make([][]sample, s.Workers)
	errs := make([]error, s.Workers)

	var wg sync.WaitGroup
	for w := 0; w < s.Workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(s.Seed + int64(w)))
			n := shardSize(s.Iterations, s.Workers, w)
			shards[w], errs[w] = runShard(ctx, rng, critical, risks, n)
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	samples := make([]sample, 0, s.Iterations)
	for _, shard := range shards {
		samples = append(samples, shard...)
	}
	if len(samples) == 0 {
		return nil, domain.ErrNoSamples
	}

	result := aggregate(samples, risks)
	result.Iterations = s.Iterations
	result.CriticalPath = pathStats(tasks, critical)
	return result, nil
}

// runShard executes one worker's iterations, checking for cancellation
// periodically.
func runShard(ctx context.Context, rng *rand.Rand, critical []domain.TaskEstimate, risks []domain.TimelineRisk, n int) ([]sample, error) {
	out := make([]sample, 0, n)
	for i := 0; i < n; i++ {
		if i%256 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		total := 0.0
		for _, task := range critical {
			hours := triangular(rng, task.OptimisticHours, task.PessimisticHours, task.EstimatedHours)
			total += hours / 8.0
		}

		delay := 0.0
		for _, r := range risks {
			if rng.Float64() < r.Probability {
				delay += r.ImpactDays
			}
		}

		out = append(out, sample{total: total + delay, riskDelay: delay})
	}
	return out, nil
}

// triangular draws from the triangular distribution over [min, max] with
// the given mode. Degenerate bounds return the mode directly, so a sample
// can never escape the optimistic/pessimistic envelope.
func triangular(rng *rand.Rand, min, max, mode float64) float64 {
	if max <= min {
		return mode
	}
	if mode < min {
		mode = min
	}
	if mode > max {
		mode = max
	}

	u := rng.Float64()
	cut := (mode - min) / (max - min)
	if u < cut {
		return min + math.Sqrt(u*(max-min)*(mode-min))
	}
	return max - math.Sqrt((1-u)*(max-min)*(max-mode))
}

// indexCritical filters the task list down to the critical path, in the
// caller's path order.
func indexCritical(tasks []domain.TaskEstimate, criticalPath []string) []domain.TaskEstimate {
	byID := make(map[string]domain.TaskEstimate, len(tasks))
	for _, t := range tasks {
		byID[t.TaskID] = t
	}
	critical := make([]domain.TaskEstimate, 0, len(criticalPath))
	for _, id := range criticalPath {
		if t, ok := byID[id]; ok {
			critical = append(critical, t)
		}
	}
	return critical
}

func pathStats(tasks []domain.TaskEstimate, critical []domain.TaskEstimate) domain.CriticalPathStats {
	baseDays := 0.0
	for _, t := range critical {
		baseDays += t.DurationDays()
	}
	stats := domain.CriticalPathStats{
		TaskCount: len(critical),
		BaseDays:  math.Round(baseDays*100) / 100,
	}
	if len(tasks) > 0 {
		stats.ShareOfTasks = math.Round(float64(len(critical))/float64(len(tasks))*10000) / 10000
	}
	return stats
}

// shardSize splits iterations across workers, giving remainders to the
// first shards.
func shardSize(total, workers, w int) int {
	n := total / workers
	if w < total%workers {
		n++
	}
	return n
}
