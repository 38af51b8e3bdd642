package repository

import (
	"context"
)

// Record is one row returned by the graph store, keyed by the query's
// RETURN aliases. Node and relationship values are flattened to their
// property maps.
type Record = map[string]any

// ExecutionResult bundles primary query results with one hop of
// best-effort contextual enrichment and a local textual summary.
type ExecutionResult struct {
	Results []Record       `json:"results"`
	Context map[string]any `json:"context"`
	Summary string         `json:"summary"`
}

// GraphExecutor defines the interface for running Cypher against the graph
// store. Execute fails closed: execution errors are logged and an empty
// result set is returned, never an error.
type GraphExecutor interface {
	Execute(ctx context.Context, cypher string, params map[string]any) []Record
	ExecuteWithContext(ctx context.Context, cypher string, params map[string]any) ExecutionResult
	Close(ctx context.Context) error
}
