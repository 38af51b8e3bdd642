package query

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/fleetsight/fleetsight-api/internal/domain/repository"
	"github.com/fleetsight/fleetsight-api/internal/llm"
	"github.com/fleetsight/fleetsight-api/internal/schema"
)

// Generator turns a natural-language question into an executable Cypher
// query. It degrades in three tiers: a curated template for the intent,
// free-form generation validated for basic shape, and finally a safe
// fallback query that always passes validation.
type Generator struct {
	understander *Understander
	router       repository.LLMRouter
	temperature  float32
	maxTokens    int32
}

// NewGenerator creates a Generator backed by the given LLM router.
func NewGenerator(router repository.LLMRouter, temperature float32, maxTokens int32) *Generator {
	return &Generator{
		understander: NewUnderstander(router, temperature),
		router:       router,
		temperature:  temperature,
		maxTokens:    maxTokens,
	}
}

// Process understands the question and produces a Cypher query for it.
// With useTemplates set, an intent with a curated template short-circuits
// generation entirely. Process never returns an error: any failure lands on
// the fallback query.
func (g *Generator) Process(ctx context.Context, text string, useTemplates bool) (string, Understanding) {
	understanding := g.understander.Understand(ctx, text)

	if useTemplates {
		if tmpl, ok := TemplateFor(understanding.Intent); ok {
			log.Printf("[Generator] Using template for intent: %s", understanding.Intent)
			return tmpl, understanding
		}
	}

	cypher := g.generateCypher(ctx, text, understanding)
	if validateCypher(cypher) {
		return cypher, understanding
	}

	log.Printf("[Generator] Generated query failed validation, using fallback")
	return fallbackQuery(understanding), understanding
}

// generateCypher asks the LLM for a free-form query grounded in the graph
// schema. An empty string signals failure to the caller.
func (g *Generator) generateCypher(ctx context.Context, text string, u Understanding) string {
	client := g.router.RouteLLMTask(llm.TaskCypherGeneration)

	prompt := fmt.Sprintf(cypherGenerationPrompt,
		u.Intent, text, u.Entities, u.RiskFactors,
		schema.Description,
		u.Complexity, u.GraphPattern, u.DataFocus, u.TimeScope,
		u.RequiresComparison, u.RequiresAggregation,
	)

	resp, err := client.Complete(ctx, repository.CompletionRequest{
		SystemPrompt: cypherSystemPrompt,
		UserPrompt:   prompt,
		Temperature:  g.temperature,
		MaxTokens:    g.maxTokens,
	})
	if err != nil {
		log.Printf("[Generator] Cypher generation failed: %v", err)
		return ""
	}

	return stripCodeFences(resp)
}

// validateCypher checks the basic shape of a generated query: non-empty,
// starting with a read or write clause, and carrying a RETURN.
func validateCypher(cypher string) bool {
	trimmed := strings.TrimSpace(cypher)
	if trimmed == "" {
		return false
	}
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "MATCH") &&
		!strings.HasPrefix(upper, "CREATE") &&
		!strings.HasPrefix(upper, "MERGE") {
		return false
	}
	return strings.Contains(upper, "RETURN")
}

// fallbackQuery builds a safe query from whatever the understanding still
// tells us: the risk view for risk questions, a single-warehouse lookup
// when an identifier was extracted, a broad exploration otherwise.
func fallbackQuery(u Understanding) string {
	if u.Intent == IntentRiskIdentification {
		return `MATCH (w:Warehouse)
WHERE w.risk_score > 0.5
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
RETURN w.warehouse_id, w.risk_score, w.location_type, COUNT(r) as risk_events
ORDER BY w.risk_score DESC
LIMIT 10`
	}

	if id, ok := warehouseEntity(u.Entities); ok {
		return fmt.Sprintf(`MATCH (w:Warehouse {warehouse_id: '%s'})
OPTIONAL MATCH (w)-[:HAS_INFRASTRUCTURE]->(i:Infrastructure)
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
RETURN w.warehouse_id, w.risk_score, w.location_type,
       i.has_temp_regulation, i.has_electric_backup, i.is_flood_proof,
       COUNT(r) as risk_events`, id)
	}

	return `MATCH (w:Warehouse)
OPTIONAL MATCH (w)-[:LOCATED_IN]->(rz:RegionalZone)-[:PART_OF]->(z:Zone)
RETURN w.warehouse_id, w.location_type, w.capacity_size, z.zone_name, w.risk_score
ORDER BY w.risk_score DESC
LIMIT 20`
}

// warehouseEntity reports whether the entity list mentions a warehouse and
// picks the first concrete identifier, defaulting to WH_0001 when the
// mention is generic.
func warehouseEntity(entities []string) (string, bool) {
	mentioned := false
	for _, e := range entities {
		if strings.Contains(e, "WH_") {
			return e, true
		}
		if e == "warehouse" {
			mentioned = true
		}
	}
	if mentioned {
		return "WH_0001", true
	}
	return "", false
}
