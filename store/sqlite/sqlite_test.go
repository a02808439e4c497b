package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartborrow/smartborrow-go/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_ABTests(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tests, err := s.ABTests(ctx)
	require.NoError(t, err)
	assert.Empty(t, tests)

	first := store.ABTestRecord{TestID: "1", Query: "a", Winner: "hybrid", Confidence: 0.3, Timestamp: "t1"}
	second := store.ABTestRecord{TestID: "2", Query: "b", Winner: "standard", Confidence: 0.1, Timestamp: "t2"}
	require.NoError(t, s.AppendABTest(ctx, first))
	require.NoError(t, s.AppendABTest(ctx, second))

	tests, err = s.ABTests(ctx)
	require.NoError(t, err)
	assert.Equal(t, []store.ABTestRecord{first, second}, tests)
}

func TestStore_Metrics(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	m := store.MetricRecord{Query: "q", Method: "knowledge", Score: 0.7, ResponseTime: 2.5, Timestamp: "t"}
	require.NoError(t, s.AppendMetric(ctx, m))

	metrics, err := s.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []store.MetricRecord{m}, metrics)
}
