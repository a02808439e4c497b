package postgres

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartborrow/smartborrow-go/store"
)

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewStoreWithDB(mock), mock
}

func TestStore_AppendABTest(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO ab_tests").
		WithArgs("id-1", "query", "hybrid", 0.3, "t1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.AppendABTest(context.Background(), store.ABTestRecord{
		TestID: "id-1", Query: "query", Winner: "hybrid", Confidence: 0.3, Timestamp: "t1",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ABTests(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{"test_id", "query", "winner", "confidence", "timestamp"}).
		AddRow("id-1", "a", "hybrid", 0.3, "t1").
		AddRow("id-2", "b", "standard", 0.1, "t2")
	mock.ExpectQuery("SELECT test_id, query, winner, confidence, timestamp FROM ab_tests").
		WillReturnRows(rows)

	records, err := s.ABTests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []store.ABTestRecord{
		{TestID: "id-1", Query: "a", Winner: "hybrid", Confidence: 0.3, Timestamp: "t1"},
		{TestID: "id-2", Query: "b", Winner: "standard", Confidence: 0.1, Timestamp: "t2"},
	}, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_AppendMetric(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO metrics").
		WithArgs("q", "numerical", 0.2, 3.0, "t").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.AppendMetric(context.Background(), store.MetricRecord{
		Query: "q", Method: "numerical", Score: 0.2, ResponseTime: 3.0, Timestamp: "t",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Metrics(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{"query", "method", "score", "response_time", "timestamp"}).
		AddRow("q", "hybrid", 0.4, 1.5, "t")
	mock.ExpectQuery("SELECT query, method, score, response_time, timestamp FROM metrics").
		WillReturnRows(rows)

	records, err := s.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []store.MetricRecord{
		{Query: "q", Method: "hybrid", Score: 0.4, ResponseTime: 1.5, Timestamp: "t"},
	}, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}
