package query

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/fleetsight/fleetsight-api/internal/domain/repository"
	"github.com/fleetsight/fleetsight-api/internal/llm"
)

// Understander classifies a natural-language question into an Understanding
// record. It never returns an error: any service or parse failure degrades
// to the documented default record.
type Understander struct {
	router      repository.LLMRouter
	temperature float32
}

// NewUnderstander creates an Understander using the given LLM router.
func NewUnderstander(router repository.LLMRouter, temperature float32) *Understander {
	return &Understander{
		router:      router,
		temperature: temperature,
	}
}

// Understand runs one completion call against the fixed taxonomy prompt and
// parses the answer strictly. A failed call yields intent "error"; a call
// that succeeds but cannot be parsed yields intent "general_query". Partial
// answers are backfilled field by field.
func (u *Understander) Understand(ctx context.Context, text string) Understanding {
	log.Printf("[Understander] Understanding query: %s", text)

	client := u.router.RouteLLMTask(llm.TaskQueryUnderstanding)

	resp, err := client.Complete(ctx, repository.CompletionRequest{
		SystemPrompt: understandingSystemPrompt,
		UserPrompt:   fmt.Sprintf(understandingPrompt, text),
		Temperature:  u.temperature,
		MaxTokens:    1000,
	})
	if err != nil {
		log.Printf("[Understander] Service call failed: %v", err)
		return DefaultUnderstanding(IntentError)
	}

	understanding, err := parseUnderstanding(resp)
	if err != nil {
		log.Printf("[Understander] Failed to parse understanding: %v", err)
		return DefaultUnderstanding(IntentGeneralQuery)
	}

	log.Printf("[Understander] Query intent: %s", understanding.Intent)
	return understanding
}

// parseUnderstanding strips code fences, repairs near-JSON output, and
// unmarshals into a fully defaulted Understanding.
func parseUnderstanding(resp string) (Understanding, error) {
	cleaned := stripCodeFences(resp)

	var u Understanding
	if err := json.Unmarshal([]byte(cleaned), &u); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(cleaned)
		if repairErr != nil {
			return Understanding{}, fmt.Errorf("json repair failed: %w", repairErr)
		}
		if err := json.Unmarshal([]byte(repaired), &u); err != nil {
			return Understanding{}, fmt.Errorf("unmarshal failed after repair: %w", err)
		}
	}

	u.applyDefaults()
	return u, nil
}

// stripCodeFences removes markdown fence markup the service sometimes wraps
// around its output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```cypher")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
