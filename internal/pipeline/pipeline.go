package pipeline

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/fleetsight/fleetsight-api/internal/answer"
	"github.com/fleetsight/fleetsight-api/internal/domain/repository"
	"github.com/fleetsight/fleetsight-api/internal/history"
	"github.com/fleetsight/fleetsight-api/internal/query"
)

// Response is the full answer envelope for one question.
type Response struct {
	Success         bool                 `json:"success"`
	Error           string               `json:"error,omitempty"`
	Query           string               `json:"query,omitempty"`
	Answer          string               `json:"answer"`
	Results         []repository.Record  `json:"results"`
	ResultCount     int                  `json:"result_count"`
	Context         map[string]any       `json:"context,omitempty"`
	Understanding   *query.Understanding `json:"understanding,omitempty"`
	CypherQuery     string               `json:"cypher_query,omitempty"`
	Recommendations []Recommendation     `json:"recommendations"`
	Suggestion      string               `json:"suggestion,omitempty"`
	Metadata        Metadata             `json:"metadata"`
}

// Metadata carries timing and shape information about the processing run.
type Metadata struct {
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
	ResultsReturned       int     `json:"results_returned"`
	QueryComplexity       string  `json:"query_complexity"`
	GraphPattern          string  `json:"graph_pattern"`
}

// Recommendation is one prioritized intervention for a warehouse.
type Recommendation struct {
	WarehouseID string   `json:"warehouse_id"`
	Priority    string   `json:"priority"`
	Actions     []string `json:"actions"`
}

// Profile is the full risk profile of one warehouse.
type Profile struct {
	WarehouseID       string              `json:"warehouse_id"`
	Data              repository.Record   `json:"data"`
	RiskAssessment    string              `json:"risk_assessment"`
	Recommendations   string              `json:"recommendations"`
	SimilarWarehouses []repository.Record `json:"similar_warehouses"`
}

// Comparison is the result of comparing a set of warehouses.
type Comparison struct {
	Warehouses      []repository.Record `json:"warehouses"`
	Comparison      string              `json:"comparison"`
	MetricsCompared []string            `json:"metrics_compared"`
}

// Options tune one processing run.
type Options struct {
	UseTemplates            bool
	GenerateRecommendations bool
}

// DefaultOptions enables templates and skips recommendations.
func DefaultOptions() Options {
	return Options{UseTemplates: true}
}

// Pipeline orchestrates understanding, query generation, graph execution,
// and answer synthesis. A history store, when present, receives a
// best-effort audit row per processed question.
type Pipeline struct {
	generator  *query.Generator
	executor   repository.GraphExecutor
	answers    *answer.Generator
	history    *history.Store
	maxResults int
}

// New assembles a Pipeline. history may be nil.
func New(generator *query.Generator, executor repository.GraphExecutor, answers *answer.Generator, store *history.Store, maxResults int) *Pipeline {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Pipeline{
		generator:  generator,
		executor:   executor,
		answers:    answers,
		history:    store,
		maxResults: maxResults,
	}
}

// Process answers one natural-language question end to end. It never
// returns an error: every failure mode maps to a degraded Response, and a
// panic anywhere in the stages becomes an error response.
func (p *Pipeline) Process(ctx context.Context, text string, opts Options) (resp Response) {
	start := time.Now()
	log.Printf("[Pipeline] Processing query: %s", text)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Pipeline] Panic recovered: %v", r)
			resp = errorResponse(fmt.Sprintf("%v", r))
		}
		p.record(ctx, text, resp, time.Since(start))
	}()

	log.Printf("[Pipeline] Step 1: Generating graph query...")
	cypher, understanding := p.generator.Process(ctx, text, opts.UseTemplates)
	if cypher == "" {
		return errorResponse("Failed to generate valid query")
	}

	log.Printf("[Pipeline] Step 2: Executing graph query...")
	execution := p.executor.ExecuteWithContext(ctx, cypher, nil)

	if len(execution.Results) == 0 {
		return noResultsResponse(text, understanding)
	}

	log.Printf("[Pipeline] Step 3: Generating answer...")
	answerText := p.answers.GenerateAnswer(ctx, text, execution.Results, execution.Context, understanding)

	var recommendations []Recommendation
	if opts.GenerateRecommendations && understanding.Intent == query.IntentRiskIdentification {
		log.Printf("[Pipeline] Step 4: Generating recommendations...")
		recommendations = warehouseRecommendations(execution.Results)
	}

	elapsed := time.Since(start)
	log.Printf("[Pipeline] Query processed in %.2f seconds", elapsed.Seconds())

	results := execution.Results
	if len(results) > p.maxResults {
		results = results[:p.maxResults]
	}

	return Response{
		Success:         true,
		Query:           text,
		Answer:          answerText,
		Results:         results,
		ResultCount:     len(execution.Results),
		Context:         execution.Context,
		Understanding:   &understanding,
		CypherQuery:     cypher,
		Recommendations: recommendations,
		Metadata: Metadata{
			ProcessingTimeSeconds: round2(elapsed.Seconds()),
			ResultsReturned:       len(execution.Results),
			QueryComplexity:       understanding.Complexity,
			GraphPattern:          understanding.GraphPattern,
		},
	}
}

// BatchProcess answers the questions one by one, in order.
func (p *Pipeline) BatchProcess(ctx context.Context, texts []string, opts Options) []Response {
	log.Printf("[Pipeline] Processing %d queries in batch...", len(texts))

	responses := make([]Response, 0, len(texts))
	for i, text := range texts {
		log.Printf("[Pipeline] Processing query %d/%d", i+1, len(texts))
		responses = append(responses, p.Process(ctx, text, opts))
	}

	log.Printf("[Pipeline] Batch processing completed: %d queries processed", len(responses))
	return responses
}

const warehouseProfileQuery = `MATCH (w:Warehouse {warehouse_id: $warehouse_id})
OPTIONAL MATCH (w)-[e:EXPERIENCED]->(r:RiskEvent)
OPTIONAL MATCH (w)-[:HAS_INFRASTRUCTURE]->(i:Infrastructure)
OPTIONAL MATCH (w)-[:OPERATES_IN]->(m:MarketContext)
OPTIONAL MATCH (w)-[:LOCATED_IN]->(rz:RegionalZone)-[:PART_OF]->(z:Zone)
OPTIONAL MATCH (w)-[:SUBJECT_TO]->(c:Compliance)
OPTIONAL MATCH (mgr:Manager)-[:MANAGES]->(w)
RETURN w,
       collect(DISTINCT {
           type: r.event_type,
           count: r.occurrence_count,
           severity: r.severity
       }) as risks,
       i as infrastructure,
       m as market,
       rz.regional_zone_name as region,
       z.zone_name as zone,
       c as compliance,
       mgr.manager_id as manager_id`

const similarWarehousesQuery = `MATCH (w:Warehouse)
WHERE w.warehouse_id <> $warehouse_id
  AND w.location_type = $location_type
  AND abs(w.risk_score - $risk_score) < 0.2
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
WITH w, COUNT(r) as incident_count
RETURN w.warehouse_id as warehouse_id,
       w.risk_score as risk_score,
       w.product_shipped_tons as shipped_tons,
       incident_count
ORDER BY abs(w.risk_score - $risk_score)
LIMIT $limit`

const compareWarehousesQuery = `MATCH (w:Warehouse)
WHERE w.warehouse_id IN $warehouse_ids
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
OPTIONAL MATCH (w)-[:HAS_INFRASTRUCTURE]->(i:Infrastructure)
WITH w,
     COUNT(r) as incident_count,
     collect(DISTINCT r.event_type) as incident_types,
     i
RETURN w.warehouse_id as warehouse_id,
       w.risk_score as risk_score,
       w.product_shipped_tons as shipped_tons,
       w.location_type as location,
       incident_count,
       incident_types,
       i.has_electric_backup as has_backup,
       i.is_flood_proof as flood_proof`

// WarehouseProfile builds the full risk profile for one warehouse: raw
// graph data, a written assessment, benchmarked recommendations, and up to
// five comparable peers.
func (p *Pipeline) WarehouseProfile(ctx context.Context, warehouseID string) (*Profile, error) {
	log.Printf("[Pipeline] Generating profile for warehouse: %s", warehouseID)

	results := p.executor.Execute(ctx, warehouseProfileQuery, map[string]any{"warehouse_id": warehouseID})
	if len(results) == 0 {
		return nil, fmt.Errorf("warehouse %s not found", warehouseID)
	}

	data := flattenProfile(results[0])

	assessment := p.answers.GenerateRiskAssessment(ctx, warehouseID, data)
	similar := p.findSimilarWarehouses(ctx, data, 5)
	recommendations := p.answers.GenerateRecommendations(ctx, data, similar)

	if len(similar) > 5 {
		similar = similar[:5]
	}

	return &Profile{
		WarehouseID:       warehouseID,
		Data:              data,
		RiskAssessment:    assessment,
		Recommendations:   recommendations,
		SimilarWarehouses: similar,
	}, nil
}

// CompareWarehouses fetches the given warehouses and writes a comparative
// analysis across the metrics, defaulting to the standard four.
func (p *Pipeline) CompareWarehouses(ctx context.Context, warehouseIDs []string, metrics []string) (*Comparison, error) {
	log.Printf("[Pipeline] Comparing %d warehouses", len(warehouseIDs))

	if len(metrics) == 0 {
		metrics = []string{"risk_score", "incidents", "infrastructure", "performance"}
	}

	warehouses := p.executor.Execute(ctx, compareWarehousesQuery, map[string]any{"warehouse_ids": warehouseIDs})
	if len(warehouses) == 0 {
		return nil, fmt.Errorf("no warehouses found")
	}

	return &Comparison{
		Warehouses:      warehouses,
		Comparison:      p.answers.GenerateComparison(ctx, warehouses, metrics),
		MetricsCompared: metrics,
	}, nil
}

// Close releases the graph connection.
func (p *Pipeline) Close(ctx context.Context) error {
	return p.executor.Close(ctx)
}

func (p *Pipeline) findSimilarWarehouses(ctx context.Context, data map[string]any, limit int) []repository.Record {
	riskScore, ok := data["risk_score"]
	if !ok {
		riskScore = 0.5
	}
	return p.executor.Execute(ctx, similarWarehousesQuery, map[string]any{
		"warehouse_id":  data["warehouse_id"],
		"location_type": data["location_type"],
		"risk_score":    riskScore,
		"limit":         limit,
	})
}

// flattenProfile merges the warehouse node's properties into the top level
// of the profile record so issue detection and prompts see risk_score and
// warehouse_id directly.
func flattenProfile(record repository.Record) map[string]any {
	data := make(map[string]any, len(record))
	for key, value := range record {
		if key == "w" {
			continue
		}
		data[key] = value
	}
	if props, ok := record["w"].(map[string]any); ok {
		for key, value := range props {
			data[key] = value
		}
	}
	return data
}

// warehouseRecommendations builds prioritized actions for the top three
// warehouses in a risk result set.
func warehouseRecommendations(results []repository.Record) []Recommendation {
	var recommendations []Recommendation

	limit := len(results)
	if limit > 3 {
		limit = 3
	}
	for _, record := range results[:limit] {
		warehouseID, ok := record["warehouse_id"].(string)
		if !ok || warehouseID == "" {
			continue
		}
		recommendations = append(recommendations, Recommendation{
			WarehouseID: warehouseID,
			Priority:    calculatePriority(record),
			Actions:     suggestActions(record),
		})
	}
	return recommendations
}

// calculatePriority grades intervention urgency from the risk score and
// incident count.
func calculatePriority(record repository.Record) string {
	riskScore := asFloat(record["risk_score"])
	incidentCount := asInt(record["risk_count"])
	if incidentCount == 0 {
		incidentCount = asInt(record["incident_count"])
	}

	switch {
	case riskScore > 0.75 || incidentCount > 3:
		return "CRITICAL"
	case riskScore > 0.6 || incidentCount > 2:
		return "HIGH"
	case riskScore > 0.4:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// suggestActions derives concrete actions from the record. Missing
// infrastructure flags are read optimistically, so only explicit gaps
// trigger actions.
func suggestActions(record repository.Record) []string {
	var actions []string

	if asFloat(record["risk_score"]) > 0.7 {
		actions = append(actions, "Immediate risk assessment required")
	}
	if !boolOr(record["has_backup"], true) {
		actions = append(actions, "Install electric backup system")
	}
	if !boolOr(record["flood_proof"], true) && boolOr(record["in_flood_zone"], false) {
		actions = append(actions, "Implement flood protection measures")
	}
	if asInt(record["incident_count"]) > 2 {
		actions = append(actions, "Investigate recurring incident patterns")
	}

	if len(actions) == 0 {
		actions = append(actions, "Continue monitoring")
	}
	return actions
}

func (p *Pipeline) record(ctx context.Context, text string, resp Response, elapsed time.Duration) {
	if p.history == nil {
		return
	}
	intent := ""
	if resp.Understanding != nil {
		intent = string(resp.Understanding.Intent)
	}
	p.history.Record(ctx, &history.QueryRecord{
		Query:          text,
		Intent:         intent,
		Success:        resp.Success,
		ResultCount:    resp.ResultCount,
		ElapsedSeconds: elapsed.Seconds(),
		CreatedAt:      time.Now(),
	})
}

func errorResponse(message string) Response {
	return Response{
		Success: false,
		Error:   message,
		Answer:  fmt.Sprintf("I encountered an error processing your query: %s", message),
		Results: []repository.Record{},
		Metadata: Metadata{
			QueryComplexity: "error",
			GraphPattern:    "error",
		},
	}
}

func noResultsResponse(text string, understanding query.Understanding) Response {
	return Response{
		Success:       true,
		Query:         text,
		Answer:        "No warehouses match your query criteria. Try broadening your search or adjusting the filters.",
		Results:       []repository.Record{},
		Understanding: &understanding,
		Suggestion:    "Try queries like: 'Show all warehouses' or 'List warehouses by zone'",
		Metadata: Metadata{
			QueryComplexity: understanding.Complexity,
			GraphPattern:    understanding.GraphPattern,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func asFloat(v any) float64 {
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

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func boolOr(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}
