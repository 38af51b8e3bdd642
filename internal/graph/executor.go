package graph

import (
	"context"
	"fmt"
	"log"

	"github.com/fleetsight/fleetsight-api/internal/domain/repository"
)

// Runner executes a single Cypher statement and returns its records.
// The Neo4j driver sits behind this so the executor can be tested against
// an in-memory implementation.
type Runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) ([]repository.Record, error)
	Close(ctx context.Context) error
}

// Executor runs queries against the graph and enriches results with
// related-entity and risk context. Execution failures degrade to empty
// results, never errors, so the pipeline keeps answering.
type Executor struct {
	runner     Runner
	maxContext int
}

// NewExecutor creates an Executor over the given runner. maxContext caps
// how many warehouses from the primary result feed context gathering.
func NewExecutor(runner Runner, maxContext int) *Executor {
	if maxContext <= 0 {
		maxContext = 5
	}
	return &Executor{runner: runner, maxContext: maxContext}
}

// Execute runs one query and returns its records. Failures are logged with
// the offending query text and yield an empty slice.
func (e *Executor) Execute(ctx context.Context, cypher string, params map[string]any) []repository.Record {
	log.Printf("[Executor] Executing query...")

	records, err := e.runner.Run(ctx, cypher, params)
	if err != nil {
		log.Printf("[Executor] Query execution failed: %v", err)
		log.Printf("[Executor] Query: %s", cypher)
		return []repository.Record{}
	}

	log.Printf("[Executor] Query returned %d results", len(records))
	return records
}

// ExecuteWithContext runs the primary query and, when warehouses appear in
// the result, gathers their related entities and risk event summary.
func (e *Executor) ExecuteWithContext(ctx context.Context, cypher string, params map[string]any) repository.ExecutionResult {
	primary := e.Execute(ctx, cypher, params)

	if len(primary) == 0 {
		return repository.ExecutionResult{
			Results: []repository.Record{},
			Context: map[string]any{},
			Summary: "No results found",
		}
	}

	var warehouseIDs []string
	seen := map[string]struct{}{}
	for _, record := range primary {
		id, ok := record["warehouse_id"].(string)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		warehouseIDs = append(warehouseIDs, id)
		if len(warehouseIDs) == e.maxContext {
			break
		}
	}

	execContext := map[string]any{}
	if len(warehouseIDs) > 0 {
		execContext["related_entities"] = e.relatedEntities(ctx, warehouseIDs)
		execContext["risk_summary"] = e.riskSummary(ctx, warehouseIDs)
	}

	return repository.ExecutionResult{
		Results: primary,
		Context: execContext,
		Summary: summarizeResults(primary),
	}
}

// Close releases the underlying runner.
func (e *Executor) Close(ctx context.Context) error {
	return e.runner.Close(ctx)
}

const relatedEntitiesQuery = `MATCH (w:Warehouse)
WHERE w.warehouse_id IN $warehouse_ids
OPTIONAL MATCH (w)-[:LOCATED_IN]->(rz:RegionalZone)-[:PART_OF]->(z:Zone)
OPTIONAL MATCH (w)-[:OPERATES_IN]->(m:MarketContext)
RETURN w.warehouse_id as warehouse_id,
       rz.regional_zone_name as region,
       z.zone_name as zone,
       m.competitor_count as competitors,
       m.retail_shop_count as retail_shops`

const riskSummaryQuery = `MATCH (w:Warehouse)-[:EXPERIENCED]->(r:RiskEvent)
WHERE w.warehouse_id IN $warehouse_ids
RETURN w.warehouse_id as warehouse_id,
       r.event_type as event_type,
       SUM(r.occurrence_count) as total_occurrences
ORDER BY total_occurrences DESC`

func (e *Executor) relatedEntities(ctx context.Context, warehouseIDs []string) []repository.Record {
	return e.Execute(ctx, relatedEntitiesQuery, map[string]any{"warehouse_ids": warehouseIDs})
}

// riskSummary aggregates occurrence counts per event type across the given
// warehouses.
func (e *Executor) riskSummary(ctx context.Context, warehouseIDs []string) map[string]int64 {
	records := e.Execute(ctx, riskSummaryQuery, map[string]any{"warehouse_ids": warehouseIDs})

	summary := map[string]int64{}
	for _, record := range records {
		eventType, ok := record["event_type"].(string)
		if !ok {
			continue
		}
		summary[eventType] += asInt64(record["total_occurrences"])
	}
	return summary
}

// summarizeResults picks the summary phrasing from the shape of the first
// record: warehouse risk views, zone breakdowns, or a plain count.
func summarizeResults(results []repository.Record) string {
	if len(results) == 0 {
		return "No results found"
	}

	count := len(results)

	if _, ok := results[0]["risk_score"]; ok {
		var total float64
		for _, r := range results {
			total += asFloat64(r["risk_score"])
		}
		return fmt.Sprintf("Found %d warehouses with average risk score %.3f", count, total/float64(count))
	}

	if _, ok := results[0]["zone"]; ok {
		zones := map[string]struct{}{}
		for _, r := range results {
			if z, ok := r["zone"].(string); ok {
				zones[z] = struct{}{}
			}
		}
		return fmt.Sprintf("Analysis across %d zones with %d data points", len(zones), count)
	}

	return fmt.Sprintf("Query returned %d results", count)
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
