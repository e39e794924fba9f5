package schedule

import "sort"

// slackEpsilon absorbs floating-point error when classifying zero-slack tasks.
const slackEpsilon = 0.1

// TaskSchedule is the computed CPM timing for one task, in days.
type TaskSchedule struct {
	TaskID        string  `json:"task_id"`
	DurationDays  float64 `json:"duration_days"`
	EarliestStart float64 `json:"earliest_start"`
	LatestStart   float64 `json:"latest_start"`
	Slack         float64 `json:"slack"`
}

// Analysis is the full critical-path result.
type Analysis struct {
	// Schedules maps task id to its computed timing.
	Schedules map[string]TaskSchedule
	// CriticalPath holds the zero-slack task ids ordered by earliest start.
	CriticalPath []string
	// ProjectEndDays is the earliest possible completion time.
	ProjectEndDays float64
}

// Analyze runs the critical path method over the graph: iterative forward
// and backward passes in topological order. The cycle pre-pass inside
// topoSort makes a cyclic graph a fatal structural error before any timing
// is computed.
func Analyze(g *Graph) (*Analysis, error) {
	sorted, err := g.topoSort()
	if err != nil {
		return nil, err
	}

	a := &Analysis{Schedules: make(map[string]TaskSchedule, len(sorted))}
	if len(sorted) == 0 {
		return a, nil
	}

	// Forward pass: earliest start from the latest-finishing dependency.
	earliest := make(map[string]float64, len(sorted))
	for _, id := range sorted {
		start := 0.0
		for _, dep := range g.deps[id] {
			if finish := earliest[dep] + g.durations[dep]; finish > start {
				start = finish
			}
		}
		earliest[id] = start
		if end := start + g.durations[id]; end > a.ProjectEndDays {
			a.ProjectEndDays = end
		}
	}

	// Backward pass: latest start from the earliest-starting successor.
	latest := make(map[string]float64, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		id := sorted[i]
		if len(g.successors[id]) == 0 {
			latest[id] = a.ProjectEndDays - g.durations[id]
			continue
		}
		min := 0.0
		for j, succ := range g.successors[id] {
			if j == 0 || latest[succ] < min {
				min = latest[succ]
			}
		}
		latest[id] = min - g.durations[id]
	}

	for _, id := range sorted {
		slack := latest[id] - earliest[id]
		a.Schedules[id] = TaskSchedule{
			TaskID:        id,
			DurationDays:  g.durations[id],
			EarliestStart: earliest[id],
			LatestStart:   latest[id],
			Slack:         slack,
		}
		if slack <= slackEpsilon {
			a.CriticalPath = append(a.CriticalPath, id)
		}
	}

	sort.Slice(a.CriticalPath, func(i, j int) bool {
		ei, ej := earliest[a.CriticalPath[i]], earliest[a.CriticalPath[j]]
		if ei != ej {
			return ei < ej
		}
		return a.CriticalPath[i] < a.CriticalPath[j]
	})

	return a, nil
}

// CriticalSet returns the critical path as a membership set.
func (a *Analysis) CriticalSet() map[string]bool {
	set := make(map[string]bool, len(a.CriticalPath))
	for _, id := range a.CriticalPath {
		set[id] = true
	}
	return set
}
