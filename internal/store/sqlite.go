// Package store provides SQLite-backed persistence for the Timeline Engine.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// schemaV1 defines the initial database schema.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS estimates (
	estimate_id         TEXT PRIMARY KEY,
	method              TEXT NOT NULL,
	total_duration_days REAL NOT NULL DEFAULT 0.0,
	confidence          REAL NOT NULL DEFAULT 0.0,
	task_count          INTEGER NOT NULL DEFAULT 0,
	payload_json        TEXT NOT NULL DEFAULT '{}',
	created_at          INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_estimates_created ON estimates(created_at);

CREATE TABLE IF NOT EXISTS simulations (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	estimate_id   TEXT NOT NULL,
	iterations    INTEGER NOT NULL DEFAULT 0,
	mean_days     REAL NOT NULL DEFAULT 0.0,
	median_days   REAL NOT NULL DEFAULT 0.0,
	std_dev_days  REAL NOT NULL DEFAULT 0.0,
	result_json   TEXT NOT NULL DEFAULT '{}',
	created_at    INTEGER NOT NULL,
	UNIQUE(estimate_id)
);
`

// NewDB opens a SQLite database at the given path with recommended pragmas
// and runs the V1 schema migration.
func NewDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Limit connections to 1 for SQLite (WAL allows concurrent reads but single writer).
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(), schemaV1)
	return err
}
