// Package template holds the static per-phase task archetype tables.
package template

import (
	"strings"

	"github.com/anthropics/timeline-engine/internal/domain"
)

// Task is one archetype entry: a template the estimator instantiates
// per roadmap phase.
type Task struct {
	Name        string
	Description string
	Type        domain.TaskType
	BaseHours   float64
	Roles       []domain.ResourceRole
}

// phaseArchetypes maps a canonical phase archetype to its ordered task list.
// Order matters: same-phase dependency edges may only point at earlier entries.
var phaseArchetypes = map[string][]Task{
	"foundation": {
		{Name: "Architecture design", Description: "System architecture and component boundaries", Type: domain.TaskDesign, BaseHours: 40, Roles: []domain.ResourceRole{domain.RoleBackendDeveloper, domain.RoleDevOpsEngineer}},
		{Name: "Development environment", Description: "Local tooling, containers, and shared environments", Type: domain.TaskInfrastructure, BaseHours: 24, Roles: []domain.ResourceRole{domain.RoleDevOpsEngineer}},
		{Name: "CI/CD pipeline", Description: "Build, test, and deploy automation", Type: domain.TaskInfrastructure, BaseHours: 32, Roles: []domain.ResourceRole{domain.RoleDevOpsEngineer}},
		{Name: "Data model design", Description: "Schemas, storage layout, and retention", Type: domain.TaskData, BaseHours: 32, Roles: []domain.ResourceRole{domain.RoleBackendDeveloper, domain.RoleDataEngineer}},
		{Name: "Project scaffolding", Description: "Service skeletons and shared libraries", Type: domain.TaskBackend, BaseHours: 16, Roles: []domain.ResourceRole{domain.RoleBackendDeveloper}},
	},
	"core": {
		{Name: "Core backend services", Description: "Primary business logic services", Type: domain.TaskBackend, BaseHours: 120, Roles: []domain.ResourceRole{domain.RoleBackendDeveloper}},
		{Name: "API layer", Description: "Public API endpoints and documentation", Type: domain.TaskAPI, BaseHours: 60, Roles: []domain.ResourceRole{domain.RoleBackendDeveloper}},
		{Name: "Data pipeline", Description: "Ingestion, transformation, and storage flows", Type: domain.TaskData, BaseHours: 80, Roles: []domain.ResourceRole{domain.RoleDataEngineer}},
		{Name: "Model integration", Description: "AI model serving and inference integration", Type: domain.TaskAIML, BaseHours: 100, Roles: []domain.ResourceRole{domain.RoleAIMLEngineer}},
		{Name: "Frontend application", Description: "User-facing application screens", Type: domain.TaskFrontend, BaseHours: 80, Roles: []domain.ResourceRole{domain.RoleFrontendDeveloper, domain.RoleUIUXDesigner}},
		{Name: "Integration tests", Description: "Cross-service integration test suite", Type: domain.TaskTesting, BaseHours: 40, Roles: []domain.ResourceRole{domain.RoleQAEngineer}},
	},
	"integration": {
		{Name: "Third-party integrations", Description: "External API and vendor system connectors", Type: domain.TaskBackend, BaseHours: 60, Roles: []domain.ResourceRole{domain.RoleBackendDeveloper}},
		{Name: "Security hardening", Description: "Authentication, authorization, and audit review", Type: domain.TaskSecurity, BaseHours: 40, Roles: []domain.ResourceRole{domain.RoleSecurityEngineer}},
		{Name: "Performance tuning", Description: "Profiling and latency optimization", Type: domain.TaskOptimization, BaseHours: 40, Roles: []domain.ResourceRole{domain.RoleBackendDeveloper}},
		{Name: "End-to-end tests", Description: "Full-stack acceptance test coverage", Type: domain.TaskTesting, BaseHours: 48, Roles: []domain.ResourceRole{domain.RoleQAEngineer}},
	},
	"launch": {
		{Name: "UI polish", Description: "Visual refinements and accessibility pass", Type: domain.TaskFrontend, BaseHours: 32, Roles: []domain.ResourceRole{domain.RoleFrontendDeveloper, domain.RoleUIUXDesigner}},
		{Name: "Documentation", Description: "User and operator documentation", Type: domain.TaskDocumentation, BaseHours: 24, Roles: []domain.ResourceRole{domain.RoleBackendDeveloper}},
		{Name: "Deployment automation", Description: "Production rollout and rollback tooling", Type: domain.TaskDeployment, BaseHours: 32, Roles: []domain.ResourceRole{domain.RoleDevOpsEngineer}},
		{Name: "Monitoring setup", Description: "Dashboards, alerts, and on-call runbooks", Type: domain.TaskInfrastructure, BaseHours: 24, Roles: []domain.ResourceRole{domain.RoleDevOpsEngineer}},
		{Name: "Beta feedback fixes", Description: "Issue triage and fixes from beta users", Type: domain.TaskBackend, BaseHours: 40, Roles: []domain.ResourceRole{domain.RoleBackendDeveloper, domain.RoleFrontendDeveloper}},
	},
	"scale": {
		{Name: "Horizontal scaling", Description: "Sharding, replication, and autoscaling", Type: domain.TaskInfrastructure, BaseHours: 60, Roles: []domain.ResourceRole{domain.RoleDevOpsEngineer, domain.RoleBackendDeveloper}},
		{Name: "Caching layer", Description: "Cache topology and invalidation strategy", Type: domain.TaskBackend, BaseHours: 40, Roles: []domain.ResourceRole{domain.RoleBackendDeveloper}},
		{Name: "Load testing", Description: "Capacity validation under projected load", Type: domain.TaskTesting, BaseHours: 40, Roles: []domain.ResourceRole{domain.RoleQAEngineer}},
		{Name: "Cost optimization", Description: "Infrastructure spend review and right-sizing", Type: domain.TaskOptimization, BaseHours: 24, Roles: []domain.ResourceRole{domain.RoleDevOpsEngineer}},
	},
}

// archetypeKeywords maps phase-id substrings to archetype keys, checked in order.
var archetypeKeywords = []struct {
	keyword   string
	archetype string
}{
	{"foundation", "foundation"},
	{"setup", "foundation"},
	{"infra", "foundation"},
	{"mvp", "core"},
	{"core", "core"},
	{"feature", "core"},
	{"build", "core"},
	{"integrat", "integration"},
	{"harden", "integration"},
	{"launch", "launch"},
	{"release", "launch"},
	{"polish", "launch"},
	{"beta", "launch"},
	{"scale", "scale"},
	{"growth", "scale"},
	{"optimiz", "scale"},
}

// ForPhase returns the archetype task list for a roadmap phase id.
// Unknown phase names yield an empty list, never an error.
func ForPhase(phaseID string) []Task {
	normalized := strings.ToLower(phaseID)
	for _, kw := range archetypeKeywords {
		if strings.Contains(normalized, kw.keyword) {
			return phaseArchetypes[kw.archetype]
		}
	}
	return nil
}

// Archetypes returns the known archetype keys. Useful for diagnostics.
func Archetypes() []string {
	keys := make([]string, 0, len(phaseArchetypes))
	for k := range phaseArchetypes {
		keys = append(keys, k)
	}
	return keys
}
