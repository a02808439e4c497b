// Package store persists A/B test results and performance metrics. Backends
// live in subpackages: file (canonical JSON files), memory, sqlite, postgres,
// and redis.
package store

import "context"

// ABTestRecord is one persisted A/B comparison between two retrieval methods.
type ABTestRecord struct {
	TestID     string  `json:"test_id"`
	Query      string  `json:"query"`
	Winner     string  `json:"winner"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
}

// MetricRecord is one persisted performance measurement for a retrieval method.
type MetricRecord struct {
	Query        string  `json:"query"`
	Method       string  `json:"method"`
	Score        float64 `json:"score"`
	ResponseTime float64 `json:"response_time"`
	Timestamp    string  `json:"timestamp"`
}

// ResultStore appends and reads evaluation records. Implementations must keep
// append order; readers see records oldest first.
type ResultStore interface {
	AppendABTest(ctx context.Context, record ABTestRecord) error
	ABTests(ctx context.Context) ([]ABTestRecord, error)
	AppendMetric(ctx context.Context, record MetricRecord) error
	Metrics(ctx context.Context) ([]MetricRecord, error)
}
