package answer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/fleetsight/fleetsight-api/internal/domain/repository"
	"github.com/fleetsight/fleetsight-api/internal/llm"
	"github.com/fleetsight/fleetsight-api/internal/query"
	"github.com/fleetsight/fleetsight-api/internal/resilience"
)

// Generator synthesizes natural-language output from graph results. Every
// method degrades to a fixed error text instead of returning an error, so
// the pipeline always has something to show.
type Generator struct {
	router      repository.LLMRouter
	temperature float32
	maxTokens   int32
}

// NewGenerator creates a Generator backed by the given LLM router.
func NewGenerator(router repository.LLMRouter, temperature float32, maxTokens int32) *Generator {
	return &Generator{router: router, temperature: temperature, maxTokens: maxTokens}
}

// ExtractContext condenses raw query results into a short factual summary.
// No results short-circuits without a service call.
func (g *Generator) ExtractContext(ctx context.Context, text string, results []repository.Record) string {
	if len(results) == 0 {
		return "No data found in the knowledge graph."
	}

	client := g.router.RouteLLMTask(llm.TaskContextExtraction)
	prompt := fmt.Sprintf(contextExtractionPrompt, text, truncate(toJSON(results), 3000))

	return resilience.Call("Answer", "extract context", "Error extracting context", func() (string, error) {
		return client.Complete(ctx, repository.CompletionRequest{
			SystemPrompt: contextExtractionSystemPrompt,
			UserPrompt:   prompt,
			Temperature:  0.1,
			MaxTokens:    1000,
		})
	})
}

// GenerateAnswer produces the final answer text for a question from the
// primary results and the enrichment context.
func (g *Generator) GenerateAnswer(ctx context.Context, text string, results []repository.Record, execContext map[string]any, u query.Understanding) string {
	log.Printf("[Answer] Generating answer...")

	contextSummary := g.ExtractContext(ctx, text, results)
	log.Printf("[Answer] Extracted context: %s", truncate(contextSummary, 200))

	resultsSummary := formatResultsSummary(results, u)
	prompt := fmt.Sprintf(answerGenerationPrompt, text, resultsSummary, truncate(toJSON(execContext), 2000))

	client := g.router.RouteLLMTask(llm.TaskAnswerSynthesis)
	return resilience.Call("Answer", "generate answer", "Error generating answer. Please try again.", func() (string, error) {
		answer, err := client.Complete(ctx, repository.CompletionRequest{
			SystemPrompt: answerSystemPrompt,
			UserPrompt:   prompt,
			Temperature:  g.temperature,
			MaxTokens:    g.maxTokens,
		})
		if err == nil {
			log.Printf("[Answer] Answer generated successfully")
		}
		return answer, err
	})
}

// GenerateRiskAssessment writes a detailed assessment for one warehouse.
func (g *Generator) GenerateRiskAssessment(ctx context.Context, warehouseID string, data map[string]any) string {
	log.Printf("[Answer] Generating risk assessment for %s", warehouseID)

	riskScore, ok := data["risk_score"]
	if !ok {
		riskScore = "N/A"
	}
	prompt := fmt.Sprintf(riskAssessmentPrompt,
		warehouseID, riskScore,
		toJSON(data["risks"]),
		toJSON(data["infrastructure"]),
		toJSON(data["market"]),
	)

	client := g.router.RouteLLMTask(llm.TaskAnswerSynthesis)
	return resilience.Call("Answer", "generate risk assessment", "Error generating risk assessment", func() (string, error) {
		return client.Complete(ctx, repository.CompletionRequest{
			SystemPrompt: riskAssessmentSystemPrompt,
			UserPrompt:   prompt,
			Temperature:  0.2,
			MaxTokens:    1500,
		})
	})
}

// GenerateRecommendations produces improvement advice for a warehouse,
// benchmarked against up to three similar warehouses.
func (g *Generator) GenerateRecommendations(ctx context.Context, data map[string]any, similar []repository.Record) string {
	log.Printf("[Answer] Generating recommendations...")

	issues := IdentifyIssues(data)
	benchmarks := similar
	if len(benchmarks) > 3 {
		benchmarks = benchmarks[:3]
	}

	prompt := fmt.Sprintf(recommendationPrompt, toJSON(data), toJSON(issues), toJSON(benchmarks))

	client := g.router.RouteLLMTask(llm.TaskAnswerSynthesis)
	return resilience.Call("Answer", "generate recommendations", "Error generating recommendations", func() (string, error) {
		return client.Complete(ctx, repository.CompletionRequest{
			SystemPrompt: recommendationSystemPrompt,
			UserPrompt:   prompt,
			Temperature:  0.3,
			MaxTokens:    1500,
		})
	})
}

// GenerateComparison writes a comparative analysis across warehouses.
func (g *Generator) GenerateComparison(ctx context.Context, warehouses []repository.Record, metrics []string) string {
	log.Printf("[Answer] Generating comparison for %d warehouses", len(warehouses))

	prompt := fmt.Sprintf(comparisonPrompt, toJSON(warehouses), toJSON(metrics))

	client := g.router.RouteLLMTask(llm.TaskAnswerSynthesis)
	return resilience.Call("Answer", "generate comparison", "Error generating comparison", func() (string, error) {
		return client.Complete(ctx, repository.CompletionRequest{
			SystemPrompt: comparisonSystemPrompt,
			UserPrompt:   prompt,
			Temperature:  0.2,
			MaxTokens:    2000,
		})
	})
}

// formatResultsSummary renders results for the answer prompt. Risk and
// comparison intents get purpose-built layouts, everything else raw JSON of
// the first ten records.
func formatResultsSummary(results []repository.Record, u query.Understanding) string {
	if len(results) == 0 {
		return "No results found."
	}

	switch u.Intent {
	case query.IntentRiskIdentification:
		return formatRiskResults(results)
	case query.IntentComparison:
		return formatComparisonResults(results)
	default:
		if len(results) > 10 {
			results = results[:10]
		}
		return toJSON(results)
	}
}

func formatRiskResults(results []repository.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d warehouses with risk indicators:\n", len(results))

	limit := len(results)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		record := results[i]
		id, ok := record["warehouse_id"].(string)
		if !ok {
			id = "Unknown"
		}
		incidents := asInt(record["risk_count"])
		if incidents == 0 {
			incidents = asInt(record["incident_count"])
		}
		fmt.Fprintf(&b, "\n%d. %s: Risk Score=%.3f, Incidents=%d",
			i+1, id, asFloat(record["risk_score"]), incidents)
	}
	return b.String()
}

func formatComparisonResults(results []repository.Record) string {
	var b strings.Builder
	b.WriteString("Comparison Results:\n")

	for _, record := range results {
		zone, ok := record["zone"].(string)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n- %s: Avg Risk=%v, Warehouses=%v",
			zone, orNA(record["avg_risk_score"]), orNA(record["total_warehouses"]))
	}
	return b.String()
}

func orNA(v any) any {
	if v == nil {
		return "N/A"
	}
	return v
}

func toJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
