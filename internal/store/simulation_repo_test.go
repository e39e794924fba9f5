package store

import (
	"context"
	"errors"
	"testing"

	"github.com/anthropics/timeline-engine/internal/domain"
)

func TestSimulationRepo_SaveAndGet(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := &SimulationRepo{}

	sim := &domain.MonteCarloSimulation{
		Iterations: 1000,
		MeanDays:   38.2,
		MedianDays: 37.9,
		StdDevDays: 4.1,
		ConfidenceIntervals: map[string]domain.Interval{
			"90": {Low: 31.5, High: 45.8},
		},
		Scenarios: []domain.RiskScenario{
			{Name: "high", Probability: 0.1, DurationDays: 46.3, Contributing: []string{"risk-001"}},
		},
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	if err := repo.SaveTx(ctx, tx, "est-1", sim); err != nil {
		t.Fatalf("SaveTx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	got, err := repo.GetByEstimate(ctx, db, "est-1")
	if err != nil {
		t.Fatalf("GetByEstimate: %v", err)
	}
	if got.Iterations != 1000 {
		t.Errorf("Iterations = %d, want 1000", got.Iterations)
	}
	if got.MeanDays != 38.2 {
		t.Errorf("MeanDays = %f, want 38.2", got.MeanDays)
	}
	if got.ConfidenceIntervals["90"].High != 45.8 {
		t.Errorf("interval high = %f, want 45.8", got.ConfidenceIntervals["90"].High)
	}
	if len(got.Scenarios) != 1 || got.Scenarios[0].Contributing[0] != "risk-001" {
		t.Errorf("scenarios round-trip failed: %+v", got.Scenarios)
	}
}

func TestSimulationRepo_GetByEstimate_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := (&SimulationRepo{}).GetByEstimate(context.Background(), db, "nope")
	if !errors.Is(err, domain.ErrEstimateNotFound) {
		t.Errorf("err = %v, want ErrEstimateNotFound", err)
	}
}
