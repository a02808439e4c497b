// Package postgres persists results in PostgreSQL through pgx.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartborrow/smartborrow-go/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS ab_tests (
	id BIGSERIAL PRIMARY KEY,
	test_id TEXT NOT NULL,
	query TEXT NOT NULL,
	winner TEXT NOT NULL,
	confidence DOUBLE PRECISION NOT NULL,
	timestamp TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS metrics (
	id BIGSERIAL PRIMARY KEY,
	query TEXT NOT NULL,
	method TEXT NOT NULL,
	score DOUBLE PRECISION NOT NULL,
	response_time DOUBLE PRECISION NOT NULL,
	timestamp TEXT NOT NULL
);
`

// DB is the subset of pgxpool.Pool the store needs. pgxmock satisfies it in
// tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store persists results in PostgreSQL.
type Store struct {
	db DB
}

// NewStore connects to the database at connString and ensures the schema.
func NewStore(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	s := NewStoreWithDB(pool)
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewStoreWithDB wraps an existing connection or mock without touching the
// schema.
func NewStoreWithDB(db DB) *Store {
	return &Store{db: db}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// AppendABTest inserts an A/B test record.
func (s *Store) AppendABTest(ctx context.Context, record store.ABTestRecord) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO ab_tests (test_id, query, winner, confidence, timestamp) VALUES ($1, $2, $3, $4, $5)`,
		record.TestID, record.Query, record.Winner, record.Confidence, record.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert ab test: %w", err)
	}
	return nil
}

// ABTests returns all A/B test records in insertion order.
func (s *Store) ABTests(ctx context.Context) ([]store.ABTestRecord, error) {
	rows, err := s.db.Query(ctx,
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
	_, err := s.db.Exec(ctx,
		`INSERT INTO metrics (query, method, score, response_time, timestamp) VALUES ($1, $2, $3, $4, $5)`,
		record.Query, record.Method, record.Score, record.ResponseTime, record.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert metric: %w", err)
	}
	return nil
}

// Metrics returns all metric records in insertion order.
func (s *Store) Metrics(ctx context.Context) ([]store.MetricRecord, error) {
	rows, err := s.db.Query(ctx,
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
