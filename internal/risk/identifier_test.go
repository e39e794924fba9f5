package risk

import (
	"strings"
	"testing"

	"github.com/anthropics/timeline-engine/internal/domain"
)

func baseRoadmap(complexity domain.ComplexityLevel, pattern domain.ArchitecturePattern) domain.Roadmap {
	return domain.Roadmap{OverallComplexity: complexity, ArchitecturePattern: pattern}
}

func findCategory(risks []domain.TimelineRisk, cat domain.RiskCategory) *domain.TimelineRisk {
	for i := range risks {
		if risks[i].Category == cat {
			return &risks[i]
		}
	}
	return nil
}

func TestIdentify_HighComplexity(t *testing.T) {
	risks := Identify(baseRoadmap(domain.ComplexityHigh, domain.PatternMonolithic), domain.Opportunity{}, nil)
	r := findCategory(risks, domain.RiskTechnical)
	if r == nil {
		t.Fatal("expected technical risk for high complexity")
	}
	if r.Probability != 0.7 || r.ImpactDays != 14 {
		t.Errorf("got p=%f impact=%f, want 0.7/14", r.Probability, r.ImpactDays)
	}

	risks = Identify(baseRoadmap(domain.ComplexityMedium, domain.PatternMonolithic), domain.Opportunity{}, nil)
	if findCategory(risks, domain.RiskTechnical) != nil {
		t.Error("medium complexity should not produce a technical risk")
	}
}

func TestIdentify_AIRole(t *testing.T) {
	tasks := []domain.TaskEstimate{
		{TaskID: "t1", RequiredRoles: []domain.ResourceRole{domain.RoleAIMLEngineer, domain.RoleDataEngineer}},
	}
	risks := Identify(baseRoadmap(domain.ComplexityLow, domain.PatternMonolithic), domain.Opportunity{}, tasks)
	r := findCategory(risks, domain.RiskPerformance)
	if r == nil {
		t.Fatal("expected AI performance risk")
	}
	if r.Probability != 0.5 || r.ImpactDays != 21 {
		t.Errorf("got p=%f impact=%f, want 0.5/21", r.Probability, r.ImpactDays)
	}
}

func TestIdentify_KeyPersonDependency(t *testing.T) {
	var tasks []domain.TaskEstimate
	for i := 0; i < 6; i++ {
		tasks = append(tasks, domain.TaskEstimate{
			RequiredRoles: []domain.ResourceRole{domain.RoleBackendDeveloper},
		})
	}
	risks := Identify(baseRoadmap(domain.ComplexityLow, domain.PatternMonolithic), domain.Opportunity{}, tasks)
	if findCategory(risks, domain.RiskResource) == nil {
		t.Error("expected key-person risk with 6 single-role tasks")
	}

	risks = Identify(baseRoadmap(domain.ComplexityLow, domain.PatternMonolithic), domain.Opportunity{}, tasks[:5])
	if findCategory(risks, domain.RiskResource) != nil {
		t.Error("5 single-role tasks should not trigger key-person risk")
	}
}

func TestIdentify_Microservices(t *testing.T) {
	risks := Identify(baseRoadmap(domain.ComplexityLow, domain.PatternMicroservices), domain.Opportunity{}, nil)
	r := findCategory(risks, domain.RiskIntegration)
	if r == nil {
		t.Fatal("expected integration risk for microservices")
	}
	if r.Probability != 0.6 || r.ImpactDays != 7 {
		t.Errorf("got p=%f impact=%f, want 0.6/7", r.Probability, r.ImpactDays)
	}
}

func TestIdentify_ExternalAPI(t *testing.T) {
	tasks := []domain.TaskEstimate{
		{Description: "Third-party integrations with vendor systems", RequiredRoles: []domain.ResourceRole{domain.RoleBackendDeveloper, domain.RoleQAEngineer}},
	}
	risks := Identify(baseRoadmap(domain.ComplexityLow, domain.PatternMonolithic), domain.Opportunity{}, tasks)
	r := findCategory(risks, domain.RiskExternal)
	if r == nil {
		t.Fatal("expected external dependency risk")
	}
	if r.Probability != 0.3 || r.ImpactDays != 5 {
		t.Errorf("got p=%f impact=%f, want 0.3/5", r.Probability, r.ImpactDays)
	}
}

func TestIdentify_ScopeCreep(t *testing.T) {
	opp := domain.Opportunity{Description: strings.Repeat("a very ambitious product vision ", 30)}
	risks := Identify(baseRoadmap(domain.ComplexityLow, domain.PatternMonolithic), opp, nil)
	r := findCategory(risks, domain.RiskScope)
	if r == nil {
		t.Fatal("expected scope-creep risk for long description")
	}
	if r.Probability != 0.8 || r.ImpactDays != 14 {
		t.Errorf("got p=%f impact=%f, want 0.8/14", r.Probability, r.ImpactDays)
	}
}

func TestIdentify_PerformanceKeywords(t *testing.T) {
	opp := domain.Opportunity{Description: "Must handle real-time updates at scale"}
	risks := Identify(baseRoadmap(domain.ComplexityLow, domain.PatternMonolithic), opp, nil)
	if findCategory(risks, domain.RiskPerformance) == nil {
		t.Error("expected performance risk for real-time keywords")
	}
}

func TestIdentify_Deterministic(t *testing.T) {
	roadmap := baseRoadmap(domain.ComplexityVeryHigh, domain.PatternMicroservices)
	opp := domain.Opportunity{Description: "real-time analytics"}

	a := Identify(roadmap, opp, nil)
	b := Identify(roadmap, opp, nil)
	if len(a) != len(b) {
		t.Fatalf("risk counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].RiskID != b[i].RiskID || a[i].Category != b[i].Category {
			t.Errorf("risk %d differs between runs", i)
		}
	}
}

func TestIdentify_AllValuesBounded(t *testing.T) {
	roadmap := baseRoadmap(domain.ComplexityVeryHigh, domain.PatternMicroservices)
	opp := domain.Opportunity{Description: strings.Repeat("scale real-time external ", 40)}
	tasks := []domain.TaskEstimate{
		{Description: "external vendor work", RequiredRoles: []domain.ResourceRole{domain.RoleAIMLEngineer}},
	}

	for _, r := range Identify(roadmap, opp, tasks) {
		if r.Probability < 0 || r.Probability > 1 {
			t.Errorf("risk %s probability %f outside [0,1]", r.RiskID, r.Probability)
		}
		if r.ImpactDays <= 0 {
			t.Errorf("risk %s has non-positive impact", r.RiskID)
		}
		if r.Mitigation == "" || r.MitigationCostUSD <= 0 {
			t.Errorf("risk %s missing mitigation data", r.RiskID)
		}
	}
}
