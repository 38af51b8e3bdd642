package graph

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetsight/fleetsight-api/internal/domain/repository"
)

// fakeRunner answers queries by substring match against its canned results
// and records every statement it saw.
type fakeRunner struct {
	results map[string][]repository.Record
	err     error
	queries []string
	params  []map[string]any
	closed  bool
}

func (f *fakeRunner) Run(_ context.Context, cypher string, params map[string]any) ([]repository.Record, error) {
	f.queries = append(f.queries, cypher)
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	for key, records := range f.results {
		if strings.Contains(cypher, key) {
			return records, nil
		}
	}
	return []repository.Record{}, nil
}

func (f *fakeRunner) Close(context.Context) error {
	f.closed = true
	return nil
}

func TestExecuteReturnsRecords(t *testing.T) {
	runner := &fakeRunner{results: map[string][]repository.Record{
		"Warehouse": {{"warehouse_id": "WH_0001", "risk_score": 0.8}},
	}}
	e := NewExecutor(runner, 5)

	records := e.Execute(context.Background(), "MATCH (w:Warehouse) RETURN w", nil)

	require.Len(t, records, 1)
	assert.Equal(t, "WH_0001", records[0]["warehouse_id"])
}

func TestExecuteFailsClosed(t *testing.T) {
	runner := &fakeRunner{err: errors.New("connection reset")}
	e := NewExecutor(runner, 5)

	records := e.Execute(context.Background(), "MATCH (w:Warehouse) RETURN w", nil)

	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestExecuteWithContextEmptyResult(t *testing.T) {
	e := NewExecutor(&fakeRunner{}, 5)

	result := e.ExecuteWithContext(context.Background(), "MATCH (w:Warehouse) RETURN w", nil)

	assert.Empty(t, result.Results)
	assert.Equal(t, map[string]any{}, result.Context)
	assert.Equal(t, "No results found", result.Summary)
}

func TestExecuteWithContextGathersWarehouseContext(t *testing.T) {
	runner := &fakeRunner{results: map[string][]repository.Record{
		"w.risk_score > 0.6": {
			{"warehouse_id": "WH_0001", "risk_score": 0.9},
			{"warehouse_id": "WH_0002", "risk_score": 0.7},
		},
		"OPERATES_IN": {
			{"warehouse_id": "WH_0001", "region": "North", "zone": "Zone 1"},
		},
		"EXPERIENCED": {
			{"warehouse_id": "WH_0001", "event_type": "breakdown", "total_occurrences": int64(3)},
			{"warehouse_id": "WH_0002", "event_type": "breakdown", "total_occurrences": int64(2)},
			{"warehouse_id": "WH_0001", "event_type": "flood", "total_occurrences": int64(1)},
		},
	}}
	e := NewExecutor(runner, 5)

	result := e.ExecuteWithContext(context.Background(),
		"MATCH (w:Warehouse) WHERE w.risk_score > 0.6 RETURN w.warehouse_id as warehouse_id, w.risk_score as risk_score", nil)

	require.Len(t, result.Results, 2)
	assert.Equal(t, "Found 2 warehouses with average risk score 0.800", result.Summary)

	related, ok := result.Context["related_entities"].([]repository.Record)
	require.True(t, ok)
	assert.Len(t, related, 1)

	risks, ok := result.Context["risk_summary"].(map[string]int64)
	require.True(t, ok)
	assert.Equal(t, int64(5), risks["breakdown"])
	assert.Equal(t, int64(1), risks["flood"])
}

func TestExecuteWithContextCapsContextWarehouses(t *testing.T) {
	var primary []repository.Record
	for _, id := range []string{"WH_0001", "WH_0002", "WH_0003", "WH_0004", "WH_0005", "WH_0006", "WH_0007"} {
		primary = append(primary, repository.Record{"warehouse_id": id, "risk_score": 0.5})
	}
	runner := &fakeRunner{results: map[string][]repository.Record{"primary": primary}}
	e := NewExecutor(runner, 5)

	e.ExecuteWithContext(context.Background(), "primary RETURN w", nil)

	// primary + related entities + risk summary
	require.Len(t, runner.params, 3)
	ids, ok := runner.params[1]["warehouse_ids"].([]string)
	require.True(t, ok)
	assert.Len(t, ids, 5)
}

func TestExecuteWithContextDeduplicatesWarehouseIDs(t *testing.T) {
	var primary []repository.Record
	for _, id := range []string{"WH_0001", "WH_0002", "WH_0001", "WH_0003", "WH_0002", "WH_0004"} {
		primary = append(primary, repository.Record{"warehouse_id": id, "risk_score": 0.5})
	}
	runner := &fakeRunner{results: map[string][]repository.Record{"primary": primary}}
	e := NewExecutor(runner, 5)

	e.ExecuteWithContext(context.Background(), "primary RETURN w", nil)

	require.Len(t, runner.params, 3)
	ids, ok := runner.params[1]["warehouse_ids"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"WH_0001", "WH_0002", "WH_0003", "WH_0004"}, ids)
}

func TestExecuteWithContextCapCountsDistinctIDs(t *testing.T) {
	var primary []repository.Record
	for _, id := range []string{"WH_0001", "WH_0001", "WH_0002", "WH_0003", "WH_0004", "WH_0005", "WH_0006"} {
		primary = append(primary, repository.Record{"warehouse_id": id, "risk_score": 0.5})
	}
	runner := &fakeRunner{results: map[string][]repository.Record{"primary": primary}}
	e := NewExecutor(runner, 5)

	e.ExecuteWithContext(context.Background(), "primary RETURN w", nil)

	ids, ok := runner.params[1]["warehouse_ids"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"WH_0001", "WH_0002", "WH_0003", "WH_0004", "WH_0005"}, ids)
}

func TestExecuteWithContextSkipsContextWithoutWarehouseIDs(t *testing.T) {
	runner := &fakeRunner{results: map[string][]repository.Record{
		"zone": {{"zone": "Zone 1", "avg_risk_score": 0.4}, {"zone": "Zone 2", "avg_risk_score": 0.3}},
	}}
	e := NewExecutor(runner, 5)

	result := e.ExecuteWithContext(context.Background(), "zone query RETURN zone", nil)

	assert.Empty(t, result.Context)
	assert.Equal(t, "Analysis across 2 zones with 2 data points", result.Summary)
	assert.Len(t, runner.queries, 1)
}

func TestSummarizeResultsPlainCount(t *testing.T) {
	summary := summarizeResults([]repository.Record{
		{"manager_id": "M_01"},
		{"manager_id": "M_02"},
		{"manager_id": "M_03"},
	})

	assert.Equal(t, "Query returned 3 results", summary)
}

func TestExecutorClose(t *testing.T) {
	runner := &fakeRunner{}
	e := NewExecutor(runner, 5)

	require.NoError(t, e.Close(context.Background()))
	assert.True(t, runner.closed)
}
