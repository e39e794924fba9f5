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

// EstimateRepo handles persistence for generated timeline estimates.
// The full estimate is stored as a JSON payload alongside the columns
// the list view needs.
type EstimateRepo struct{}

// EstimateSummary is the list-view projection of a stored estimate.
type EstimateSummary struct {
	EstimateID        string                  `json:"estimate_id"`
	Method            domain.EstimationMethod `json:"method"`
	TotalDurationDays float64                 `json:"total_duration_days"`
	Confidence        float64                 `json:"confidence"`
	TaskCount         int                     `json:"task_count"`
	CreatedAt         time.Time               `json:"created_at"`
}

// SaveTx inserts an estimate within an existing transaction.
func (r *EstimateRepo) SaveTx(ctx context.Context, tx *sql.Tx, est *domain.TimelineEstimate) error {
	payload, err := json.Marshal(est)
	if err != nil {
		return fmt.Errorf("marshal estimate: %w", err)
	}

	const q = `INSERT INTO estimates (estimate_id, method, total_duration_days, confidence, task_count, payload_json, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, q,
		est.EstimateID,
		string(est.Method),
		est.TotalDurationDays,
		est.Confidence,
		len(est.Tasks),
		string(payload),
		est.GeneratedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert estimate: %w", err)
	}
	return nil
}

// GetByID retrieves a stored estimate by its ID.
func (r *EstimateRepo) GetByID(ctx context.Context, db *sql.DB, estimateID string) (*domain.TimelineEstimate, error) {
	const q = `SELECT payload_json FROM estimates WHERE estimate_id = ?`

	var payload string
	err := db.QueryRowContext(ctx, q, estimateID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEstimateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query estimate: %w", err)
	}

	var est domain.TimelineEstimate
	if err := json.Unmarshal([]byte(payload), &est); err != nil {
		return nil, fmt.Errorf("unmarshal estimate: %w", err)
	}
	return &est, nil
}

// List returns summaries of all stored estimates, newest first.
func (r *EstimateRepo) List(ctx context.Context, db *sql.DB) ([]EstimateSummary, error) {
	const q = `SELECT estimate_id, method, total_duration_days, confidence, task_count, created_at
FROM estimates ORDER BY created_at DESC, estimate_id`

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	defer rows.Close()

	var out []EstimateSummary
	for rows.Next() {
		var s EstimateSummary
		var method string
		var createdAt int64
		if err := rows.Scan(&s.EstimateID, &method, &s.TotalDurationDays, &s.Confidence, &s.TaskCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan estimate row: %w", err)
		}
		s.Method = domain.EstimationMethod(method)
		s.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}
