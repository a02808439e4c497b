// Package sqlite persists results in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/smartborrow/smartborrow-go/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS ab_tests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	test_id TEXT NOT NULL,
	query TEXT NOT NULL,
	winner TEXT NOT NULL,
	confidence REAL NOT NULL,
	timestamp TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS metrics (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	query TEXT NOT NULL,
	method TEXT NOT NULL,
	score REAL NOT NULL,
	response_time REAL NOT NULL,
	timestamp TEXT NOT NULL
);
`

// Store persists results in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at dsn and ensures the schema.
// Use ":memory:" for an ephemeral database.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// AppendABTest inserts an A/B test record.
func (s *Store) AppendABTest(ctx context.Context, record store.ABTestRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ab_tests (test_id, query, winner, confidence, timestamp) VALUES (?, ?, ?, ?, ?)`,
		record.TestID, record.Query, record.Winner, record.Confidence, record.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert ab test: %w", err)
	}
	return nil
}

// ABTests returns all A/B test records in insertion order.
func (s *Store) ABTests(ctx context.Context) ([]store.ABTestRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT test_id, query, winner, confidence, timestamp FROM ab_tests ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ab tests: %w", err)
	}
	defer rows.Close()

	var records []store.ABTestRecord
	for rows.Next() {
		var r store.ABTestRecord
		if err := rows.Scan(&r.TestID, &r.Query, &r.Winner, &r.Confidence, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan ab test: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// AppendMetric inserts a metric record.
func (s *Store) AppendMetric(ctx context.Context, record store.MetricRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO metrics (query, method, score, response_time, timestamp) VALUES (?, ?, ?, ?, ?)`,
		record.Query, record.Method, record.Score, record.ResponseTime, record.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert metric: %w", err)
	}
	return nil
}

// Metrics returns all metric records in insertion order.
func (s *Store) Metrics(ctx context.Context) ([]store.MetricRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT query, method, score, response_time, timestamp FROM metrics ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics: %w", err)
	}
	defer rows.Close()

	var records []store.MetricRecord
	for rows.Next() {
		var r store.MetricRecord
		if err := rows.Scan(&r.Query, &r.Method, &r.Score, &r.ResponseTime, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan metric: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
