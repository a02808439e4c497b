// Package memory provides an in-memory result store for tests and ephemeral
// runs.
package memory

import (
	"context"
	"sync"

	"github.com/smartborrow/smartborrow-go/store"
)

// Store keeps records in memory. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	abTests []store.ABTestRecord
	metrics []store.MetricRecord
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// AppendABTest appends an A/B test record.
func (s *Store) AppendABTest(ctx context.Context, record store.ABTestRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abTests = append(s.abTests, record)
	return nil
}

// ABTests returns all A/B test records, oldest first.
func (s *Store) ABTests(ctx context.Context) ([]store.ABTestRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.ABTestRecord, len(s.abTests))
	copy(out, s.abTests)
	return out, nil
}

// AppendMetric appends a performance metric record.
func (s *Store) AppendMetric(ctx context.Context, record store.MetricRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, record)
	return nil
}

// Metrics returns all metric records, oldest first.
func (s *Store) Metrics(ctx context.Context) ([]store.MetricRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.MetricRecord, len(s.metrics))
	copy(out, s.metrics)
	return out, nil
}
