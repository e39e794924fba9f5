// Package schedule builds the task dependency graph and computes the
// critical path.
package schedule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/anthropics/timeline-engine/internal/domain"
)

// Graph is an explicit adjacency structure over task ids.
type Graph struct {
	durations  map[string]float64 // days
	deps       map[string][]string
	successors map[string][]string
	order      []string // insertion order, for stable iteration
}

// NewGraph builds a graph from task estimates. A dependency referencing an
// unknown task id is a structural error.
func NewGraph(tasks []domain.TaskEstimate) (*Graph, error) {
	g := &Graph{
		durations:  make(map[string]float64, len(tasks)),
		deps:       make(map[string][]string, len(tasks)),
		successors: make(map[string][]string, len(tasks)),
	}

	for _, t := range tasks {
		if _, exists := g.durations[t.TaskID]; exists {
			return nil, domain.NewEngineError(
				domain.ErrDuplicateTask.Code,
				fmt.Sprintf("%s: %q", domain.ErrDuplicateTask.Message, t.TaskID),
			)
		}
		g.durations[t.TaskID] = t.DurationDays()
		g.order = append(g.order, t.TaskID)
	}

	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if _, ok := g.durations[dep]; !ok {
				return nil, domain.NewEngineError(
					domain.ErrDanglingDependency.Code,
					fmt.Sprintf("%s: task %q depends on %q", domain.ErrDanglingDependency.Message, t.TaskID, dep),
				)
			}
			g.deps[t.TaskID] = append(g.deps[t.TaskID], dep)
			g.successors[dep] = append(g.successors[dep], t.TaskID)
		}
	}

	return g, nil
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// Duration returns a task's duration in days.
func (g *Graph) Duration(id string) float64 {
	return g.durations[id]
}

// topoSort runs Kahn's algorithm. A non-empty remainder means a cycle; the
// error names the cyclic task ids.
func (g *Graph) topoSort() ([]string, error) {
	indegree := make(map[string]int, len(g.order))
	for _, id := range g.order {
		indegree[id] = len(g.deps[id])
	}

	var queue []string
	for _, id := range g.order {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(g.order))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted = append(sorted, id)
		for _, succ := range g.successors[id] {
			indegree[succ]--
			if indegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if len(sorted) != len(g.order) {
		var cyclic []string
		for _, id := range g.order {
			if indegree[id] > 0 {
				cyclic = append(cyclic, id)
			}
		}
		sort.Strings(cyclic)
		return nil, domain.NewEngineError(
			domain.ErrDependencyCycle.Code,
			fmt.Sprintf("%s: [%s]", domain.ErrDependencyCycle.Message, strings.Join(cyclic, ", ")),
		)
	}

	return sorted, nil
}
