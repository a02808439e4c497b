// Package redis persists results as JSON-encoded Redis lists, one key per
// record type.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/smartborrow/smartborrow-go/store"
)

// Redis keys for the two record lists.
const (
	ABTestsKey = "smartborrow:ab_tests"
	MetricsKey = "smartborrow:metrics"
)

// Store appends records with RPUSH and reads them back with LRANGE, so order is
// append order.
type Store struct {
	client *goredis.Client
}

// NewStore wraps an existing Redis client.
func NewStore(client *goredis.Client) *Store {
	return &Store{client: client}
}

// AppendABTest appends an A/B test record.
func (s *Store) AppendABTest(ctx context.Context, record store.ABTestRecord) error {
	return s.push(ctx, ABTestsKey, record)
}

// ABTests returns all A/B test records, oldest first.
func (s *Store) ABTests(ctx context.Context) ([]store.ABTestRecord, error) {
	items, err := s.client.LRange(ctx, ABTestsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ABTestsKey, err)
	}

	records := make([]store.ABTestRecord, 0, len(items))
	for _, item := range items {
		var r store.ABTestRecord
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("failed to decode ab test record: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}

// AppendMetric appends a metric record.
func (s *Store) AppendMetric(ctx context.Context, record store.MetricRecord) error {
	return s.push(ctx, MetricsKey, record)
}

// Metrics returns all metric records, oldest first.
func (s *Store) Metrics(ctx context.Context) ([]store.MetricRecord, error) {
	items, err := s.client.LRange(ctx, MetricsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", MetricsKey, err)
	}

	records := make([]store.MetricRecord, 0, len(items))
	for _, item := range items {
		var r store.MetricRecord
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("failed to decode metric record: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *Store) push(ctx context.Context, key string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if err := s.client.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("failed to append to %s: %w", key, err)
	}
	return nil
}
