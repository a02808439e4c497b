// Package file persists results as JSON list files, the canonical on-disk
// format shared with earlier tooling: ab_test_results.json and
// performance_metrics.json in the store directory.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/smartborrow/smartborrow-go/store"
)

// File names inside the store directory.
const (
	ABTestsFile = "ab_test_results.json"
	MetricsFile = "performance_metrics.json"
)

// Store reads and writes JSON list files with whole-file read-modify-write.
// The mutex serializes writers within one process; cross-process writers are
// out of scope.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates a file store rooted at dir, creating the directory if
// needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// AppendABTest appends a record to ab_test_results.json.
func (s *Store) AppendABTest(ctx context.Context, record store.ABTestRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []store.ABTestRecord
	if err := s.read(ABTestsFile, &records); err != nil {
		return err
	}
	records = append(records, record)
	return s.write(ABTestsFile, records)
}

// ABTests returns all records from ab_test_results.json, oldest first.
func (s *Store) ABTests(ctx context.Context) ([]store.ABTestRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []store.ABTestRecord
	if err := s.read(ABTestsFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AppendMetric appends a record to performance_metrics.json.
func (s *Store) AppendMetric(ctx context.Context, record store.MetricRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []store.MetricRecord
	if err := s.read(MetricsFile, &records); err != nil {
		return err
	}
	records = append(records, record)
	return s.write(MetricsFile, records)
}

// Metrics returns all records from performance_metrics.json, oldest first.
func (s *Store) Metrics(ctx context.Context) ([]store.MetricRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []store.MetricRecord
	if err := s.read(MetricsFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// read unmarshals a JSON list file into out. A missing file is an empty list.
func (s *Store) read(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) write(name string, records any) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
