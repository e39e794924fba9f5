package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anthropics/timeline-engine/internal/domain"
)

// SimulationRepo handles persistence for Monte Carlo simulation results.
type SimulationRepo struct{}

// SaveTx inserts a simulation result within an existing transaction.
// An estimate has at most one simulation.
func (r *SimulationRepo) SaveTx(ctx context.Context, tx *sql.Tx, estimateID string, sim *domain.MonteCarloSimulation) error {
	result, err := json.Marshal(sim)
	if err != nil {
		return fmt.Errorf("marshal simulation: %w", err)
	}

	const q = `INSERT INTO simulations (estimate_id, iterations, mean_days, median_days, std_dev_days, result_json, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, q,
		estimateID,
		sim.Iterations,
		sim.MeanDays,
		sim.MedianDays,
		sim.StdDevDays,
		string(result),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert simulation: %w", err)
	}
	return nil
}

// GetByEstimate retrieves the simulation stored for an estimate.
func (r *SimulationRepo) GetByEstimate(ctx context.Context, db *sql.DB, estimateID string) (*domain.MonteCarloSimulation, error) {
	const q = `SELECT result_json FROM simulations WHERE estimate_id = ?`

	var result string
	err := db.QueryRowContext(ctx, q, estimateID).Scan(&result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEstimateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query simulation: %w", err)
	}

	var sim domain.MonteCarloSimulation
	if err := json.Unmarshal([]byte(result), &sim); err != nil {
		return nil, fmt.Errorf("unmarshal simulation: %w", err)
	}
	return &sim, nil
}
