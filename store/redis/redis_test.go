package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartborrow/smartborrow-go/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client)
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

	m := store.MetricRecord{Query: "q", Method: "faq", Score: 0.1, ResponseTime: 0.5, Timestamp: "t"}
	require.NoError(t, s.AppendMetric(ctx, m))

	metrics, err := s.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []store.MetricRecord{m}, metrics)
}

func TestStore_CorruptEntryIsAnError(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	s := NewStore(client)

	require.NoError(t, client.RPush(ctx, ABTestsKey, "{not json").Err())
	_, err := s.ABTests(ctx)
	assert.Error(t, err)
}
