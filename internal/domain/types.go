// Package domain defines the core types for the Timeline Engine.
package domain

import "time"

// ComplexityLevel classifies the overall difficulty of a roadmap.
type ComplexityLevel string

const (
	ComplexityLow      ComplexityLevel = "low"
	ComplexityMedium   ComplexityLevel = "medium"
	ComplexityHigh     ComplexityLevel = "high"
	ComplexityVeryHigh ComplexityLevel = "very_high"
)

// IsValid returns true if the complexity level is a known value.
func (c ComplexityLevel) IsValid() bool {
	switch c {
	case ComplexityLow, ComplexityMedium, ComplexityHigh, ComplexityVeryHigh:
		return true
	default:
		return false
	}
}

// Multiplier returns the base-hours scaling factor for the level.
func (c ComplexityLevel) Multiplier() float64 {
	switch c {
	case ComplexityLow:
		return 0.8
	case ComplexityHigh:
		return 1.4
	case ComplexityVeryHigh:
		return 1.8
	default:
		return 1.0
	}
}

// ArchitecturePattern tags the roadmap's target architecture.
type ArchitecturePattern string

const (
	PatternMonolithic    ArchitecturePattern = "monolithic"
	PatternMicroservices ArchitecturePattern = "microservices"
	PatternServerless    ArchitecturePattern = "serverless"
	PatternEdgeComputing ArchitecturePattern = "edge_computing"
	PatternEventDriven   ArchitecturePattern = "event_driven"
	PatternPipeline      ArchitecturePattern = "pipeline"
	PatternHybridCloud   ArchitecturePattern = "hybrid_cloud"
)

// IsValid returns true if the pattern is a known value.
func (p ArchitecturePattern) IsValid() bool {
	switch p {
	case PatternMonolithic, PatternMicroservices, PatternServerless,
		PatternEdgeComputing, PatternEventDriven, PatternPipeline, PatternHybridCloud:
		return true
	default:
		return false
	}
}

// EstimationMethod selects how task effort is estimated.
type EstimationMethod string

const (
	MethodExpertJudgment EstimationMethod = "expert_judgment"
	MethodFunctionPoint  EstimationMethod = "function_point"
	MethodStoryPoint     EstimationMethod = "story_point"
	MethodHistoricalData EstimationMethod = "historical_data"
	MethodMonteCarlo     EstimationMethod = "monte_carlo"
	MethodParametric     EstimationMethod = "parametric"
)

// IsValid returns true if the method is a known value.
func (m EstimationMethod) IsValid() bool {
	switch m {
	case MethodExpertJudgment, MethodFunctionPoint, MethodStoryPoint,
		MethodHistoricalData, MethodMonteCarlo, MethodParametric:
		return true
	default:
		return false
	}
}

// TaskType categorizes a task for dependency inference and velocity lookup.
type TaskType string

const (
	TaskDesign         TaskType = "design"
	TaskInfrastructure TaskType = "infrastructure"
	TaskBackend        TaskType = "backend"
	TaskFrontend       TaskType = "frontend"
	TaskAPI            TaskType = "api"
	TaskData           TaskType = "data"
	TaskAIML           TaskType = "ai_ml"
	TaskTesting        TaskType = "testing"
	TaskSecurity       TaskType = "security"
	TaskDocumentation  TaskType = "documentation"
	TaskDeployment     TaskType = "deployment"
	TaskOptimization   TaskType = "optimization"
)

// ResourceRole is the unit of allocation and costing.
type ResourceRole string

const (
	RoleBackendDeveloper  ResourceRole = "backend_developer"
	RoleFrontendDeveloper ResourceRole = "frontend_developer"
	RoleAIMLEngineer      ResourceRole = "ai_ml_engineer"
	RoleDataEngineer      ResourceRole = "data_engineer"
	RoleDevOpsEngineer    ResourceRole = "devops_engineer"
	RoleQAEngineer        ResourceRole = "qa_engineer"
	RoleSecurityEngineer  ResourceRole = "security_engineer"
	RoleUIUXDesigner      ResourceRole = "ui_ux_designer"
)

// SkillTier is the ordered seniority scale used for rate lookup.
type SkillTier string

const (
	TierJunior SkillTier = "junior"
	TierMid    SkillTier = "mid"
	TierSenior SkillTier = "senior"
	TierExpert SkillTier = "expert"
)

// Rank returns the tier's position on the ordered scale (junior lowest).
func (t SkillTier) Rank() int {
	switch t {
	case TierJunior:
		return 0
	case TierMid:
		return 1
	case TierSenior:
		return 2
	case TierExpert:
		return 3
	default:
		return -1
	}
}

// Upgrade returns the next tier up, saturating at expert.
func (t SkillTier) Upgrade() SkillTier {
	switch t {
	case TierJunior:
		return TierMid
	case TierMid:
		return TierSenior
	default:
		return TierExpert
	}
}

// RiskCategory classifies a timeline risk.
type RiskCategory string

const (
	RiskTechnical   RiskCategory = "technical"
	RiskResource    RiskCategory = "resource"
	RiskExternal    RiskCategory = "external"
	RiskScope       RiskCategory = "scope"
	RiskIntegration RiskCategory = "integration"
	RiskPerformance RiskCategory = "performance"
)

// RoadmapPhase is one implementation phase supplied by the roadmap provider.
type RoadmapPhase struct {
	PhaseID       string `json:"phase_id"`
	DurationWeeks int    `json:"duration_weeks"`
	EffortHours   int    `json:"effort_hours"`
}

// Roadmap is the ordered phase list plus its architecture classification.
type Roadmap struct {
	OverallComplexity   ComplexityLevel     `json:"overall_complexity"`
	ArchitecturePattern ArchitecturePattern `json:"architecture_pattern"`
	Phases              []RoadmapPhase      `json:"phases"`
}

// Opportunity carries the product attributes that shape estimation.
// Tag fields may be empty; unknown tags lower confidence, never fail.
type Opportunity struct {
	AISolutionTags   []string `json:"ai_solution_tags"`
	TargetIndustries []string `json:"target_industry_tags"`
	Description      string   `json:"description"`
}

// MarketContext optionally nudges availability and cost-scaling assumptions.
type MarketContext struct {
	AddressableMarketUSD float64 `json:"addressable_market_usd"`
	GrowthRatePct        float64 `json:"growth_rate_pct"`
}

// EstimateRequest is the single logical input to the engine.
type EstimateRequest struct {
	Opportunity   Opportunity      `json:"opportunity"`
	Roadmap       Roadmap          `json:"roadmap"`
	Market        *MarketContext   `json:"market_context,omitempty"`
	Method        EstimationMethod `json:"estimation_method"`
	RunSimulation bool             `json:"run_simulation"`
	Iterations    int              `json:"iterations"`
	Seed          int64            `json:"seed"`
}

// TaskEstimate is a single decomposed task with three-point effort bounds.
// Immutable once produced by the estimator.
type TaskEstimate struct {
	TaskID            string             `json:"task_id"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	PhaseID           string             `json:"phase_id"`
	Type              TaskType           `json:"type"`
	EstimatedHours    float64            `json:"estimated_hours"`
	OptimisticHours   float64            `json:"optimistic_hours"`
	PessimisticHours  float64            `json:"pessimistic_hours"`
	Confidence        float64            `json:"confidence"`
	Dependencies      []string           `json:"dependencies"`
	RequiredRoles     []ResourceRole     `json:"required_roles"`
	ComplexityFactors map[string]float64 `json:"complexity_factors"`
	VelocityFactor    float64            `json:"velocity_factor,omitempty"`
}

// DurationDays converts estimated effort to working days (8h day).
func (t TaskEstimate) DurationDays() float64 {
	return t.EstimatedHours / 8.0
}

// ResourceRequirement is the derived demand for one resource role.
type ResourceRequirement struct {
	Role           ResourceRole `json:"role"`
	RequiredHours  float64      `json:"required_hours"`
	Tier           SkillTier    `json:"tier"`
	MaxParallel    int          `json:"max_parallel"`
	Availability   float64      `json:"availability"`
	HourlyRateUSD  float64      `json:"hourly_rate_usd"`
	OnCriticalPath bool         `json:"on_critical_path"`
}

// ResourceConflict flags a staffing problem detected during allocation.
type ResourceConflict struct {
	Role        ResourceRole `json:"role,omitempty"`
	Kind        string       `json:"kind"`
	Impact      string       `json:"impact"`
	Description string       `json:"description"`
}

// PhaseRampStep is one step of the phase-indexed hiring ramp.
type PhaseRampStep struct {
	PhaseID   string  `json:"phase_id"`
	TeamShare float64 `json:"team_share"`
	Headcount int     `json:"headcount"`
}

// ResourceAllocation is the team composition and cost plan.
type ResourceAllocation struct {
	Requirements    []ResourceRequirement `json:"requirements"`
	TeamComposition map[ResourceRole]int  `json:"team_composition"`
	TotalCostUSD    float64               `json:"total_cost_usd"`
	MonthlyCostUSD  float64               `json:"monthly_cost_usd"`
	Conflicts       []ResourceConflict    `json:"conflicts"`
	Suggestions     []string              `json:"suggestions"`
	ScalingStrategy []PhaseRampStep       `json:"scaling_strategy"`
}

// TimelineRisk is a probabilistic schedule risk derived from structure.
type TimelineRisk struct {
	RiskID            string       `json:"risk_id"`
	Category          RiskCategory `json:"category"`
	Description       string       `json:"description"`
	Probability       float64      `json:"probability"`
	ImpactDays        float64      `json:"impact_days"`
	Mitigation        string       `json:"mitigation"`
	MitigationCostUSD float64      `json:"mitigation_cost_usd"`
	Indicators        []string     `json:"indicators"`
}

// HighImpact reports whether probability-weighted impact exceeds one week.
func (r TimelineRisk) HighImpact() bool {
	return r.Probability*r.ImpactDays > 7
}

// Interval is a (low, high) day-count pair.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Percentiles holds the P10/P50/P90 values of a simulated metric.
type Percentiles struct {
	P10 float64 `json:"p10"`
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
}

// RiskScenario is a named outcome synthesized from the sample distribution.
type RiskScenario struct {
	Name         string   `json:"name"`
	Probability  float64  `json:"probability"`
	DurationDays float64  `json:"duration_days"`
	Contributing []string `json:"contributing_risks"`
}

// CriticalPathStats summarizes the critical path fed to the simulator.
type CriticalPathStats struct {
	TaskCount    int     `json:"task_count"`
	BaseDays     float64 `json:"base_days"`
	ShareOfTasks float64 `json:"share_of_tasks"`
}

// MonteCarloSimulation is the aggregated result of a simulation run.
// Produced once per estimate, never mutated.
type MonteCarloSimulation struct {
	Iterations          int                    `json:"iterations"`
	MeanDays            float64                `json:"mean_days"`
	MedianDays          float64                `json:"median_days"`
	StdDevDays          float64                `json:"std_dev_days"`
	ConfidenceIntervals map[string]Interval    `json:"confidence_intervals"`
	Metrics             map[string]Percentiles `json:"metrics"`
	Scenarios           []RiskScenario         `json:"scenarios"`
	CriticalPath        CriticalPathStats      `json:"critical_path"`
}

// CostAnalysis is the estimate's cost breakdown.
type CostAnalysis struct {
	BaseCostUSD         float64 `json:"base_cost_usd"`
	RiskContingencyUSD  float64 `json:"risk_contingency_usd"`
	DelayContingencyUSD float64 `json:"delay_contingency_usd"`
	InfrastructureUSD   float64 `json:"infrastructure_usd"`
	TotalCostUSD        float64 `json:"total_cost_usd"`
	MonthlyBurnUSD      float64 `json:"monthly_burn_usd"`
}

// TimelineEstimate is the aggregate root returned by the engine.
type TimelineEstimate struct {
	EstimateID        string                `json:"estimate_id"`
	Method            EstimationMethod      `json:"method"`
	TotalDurationDays float64               `json:"total_duration_days"`
	Confidence        float64               `json:"confidence"`
	Tasks             []TaskEstimate        `json:"tasks"`
	Allocation        ResourceAllocation    `json:"resource_allocation"`
	Risks             []TimelineRisk        `json:"risks"`
	Simulation        *MonteCarloSimulation `json:"simulation,omitempty"`
	CriticalPath      []string              `json:"critical_path"`
	Milestones        map[string]time.Time  `json:"milestones"`
	PhaseBufferDays   map[string]int        `json:"phase_buffer_days"`
	Cost              CostAnalysis          `json:"cost_analysis"`
	GeneratedAt       time.Time             `json:"generated_at"`
}
