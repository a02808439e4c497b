package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartborrow/smartborrow-go/store"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	t.Run("empty store reads empty", func(t *testing.T) {
		tests, err := s.ABTests(ctx)
		require.NoError(t, err)
		assert.Empty(t, tests)

		metrics, err := s.Metrics(ctx)
		require.NoError(t, err)
		assert.Empty(t, metrics)
	})

	t.Run("appends keep order", func(t *testing.T) {
		first := store.ABTestRecord{TestID: "1", Query: "a", Winner: "hybrid", Confidence: 0.3, Timestamp: "t1"}
		second := store.ABTestRecord{TestID: "2", Query: "b", Winner: "standard", Confidence: 0.1, Timestamp: "t2"}
		require.NoError(t, s.AppendABTest(ctx, first))
		require.NoError(t, s.AppendABTest(ctx, second))

		tests, err := s.ABTests(ctx)
		require.NoError(t, err)
		assert.Equal(t, []store.ABTestRecord{first, second}, tests)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		tests, err := s.ABTests(ctx)
		require.NoError(t, err)
		tests[0].Winner = "mutated"

		again, err := s.ABTests(ctx)
		require.NoError(t, err)
		assert.Equal(t, "hybrid", again[0].Winner)
	})

	t.Run("metrics round-trip", func(t *testing.T) {
		m := store.MetricRecord{Query: "q", Method: "hybrid", Score: 0.4, ResponseTime: 1.5, Timestamp: "t"}
		require.NoError(t, s.AppendMetric(ctx, m))

		metrics, err := s.Metrics(ctx)
		require.NoError(t, err)
		assert.Equal(t, []store.MetricRecord{m}, metrics)
	})
}
