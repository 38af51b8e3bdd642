package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUnderstander(client *stubClient) *Understander {
	return NewUnderstander(&stubRouter{understanding: client, generation: client}, 0.1)
}

func TestUnderstandParsesFullAnswer(t *testing.T) {
	u := newTestUnderstander(&stubClient{resp: `{
		"intent": "comparison",
		"entities": ["zone"],
		"risk_factors": ["flood"],
		"time_scope": "last_3_months",
		"graph_pattern": "multi_hop",
		"complexity": "complex",
		"data_focus": ["zones", "risk_events"],
		"output_format": "detailed",
		"filters": ["risk_score > 0.5"],
		"requires_comparison": true,
		"requires_aggregation": true,
		"requires_temporal_analysis": true,
		"requires_geospatial_analysis": false
	}`})

	got := u.Understand(context.Background(), "compare zone risk over the last quarter")

	assert.Equal(t, IntentComparison, got.Intent)
	assert.Equal(t, []string{"zone"}, got.Entities)
	assert.Equal(t, "last_3_months", got.TimeScope)
	assert.True(t, got.RequiresComparison)
	assert.True(t, got.RequiresTemporalAnalysis)
}

func TestUnderstandCallFailureYieldsErrorIntent(t *testing.T) {
	u := newTestUnderstander(&stubClient{err: errors.New("connection refused")})

	got := u.Understand(context.Background(), "anything")

	assert.Equal(t, IntentError, got.Intent)
	assert.Equal(t, "current", got.TimeScope)
	assert.Equal(t, "simple", got.GraphPattern)
	assert.Equal(t, "medium", got.Complexity)
	assert.Equal(t, []string{"warehouses"}, got.DataFocus)
	assert.Equal(t, "summary", got.OutputFormat)
	assert.Empty(t, got.Entities)
	assert.Empty(t, got.Filters)
	assert.False(t, got.RequiresComparison)
}

func TestUnderstandUnparseableAnswerYieldsGeneralQuery(t *testing.T) {
	u := newTestUnderstander(&stubClient{resp: "The user wants to know about warehouses."})

	got := u.Understand(context.Background(), "tell me about warehouses")

	assert.Equal(t, IntentGeneralQuery, got.Intent)
	assert.Equal(t, []string{"warehouses"}, got.DataFocus)
}

func TestUnderstandStripsCodeFences(t *testing.T) {
	u := newTestUnderstander(&stubClient{resp: "```json\n{\"intent\": \"exploration\"}\n```"})

	got := u.Understand(context.Background(), "show me everything")

	assert.Equal(t, IntentExploration, got.Intent)
}

func TestUnderstandBackfillsPartialAnswer(t *testing.T) {
	u := newTestUnderstander(&stubClient{resp: `{"intent": "capacity_analysis", "entities": ["storage"]}`})

	got := u.Understand(context.Background(), "how full are we")

	assert.Equal(t, IntentCapacityAnalysis, got.Intent)
	assert.Equal(t, []string{"storage"}, got.Entities)
	assert.Equal(t, "current", got.TimeScope)
	assert.Equal(t, "medium", got.Complexity)
	assert.Equal(t, []string{"warehouses"}, got.DataFocus)
	assert.NotNil(t, got.RiskFactors)
	assert.NotNil(t, got.Filters)
}

func TestUnderstandRepairsNearJSON(t *testing.T) {
	// Trailing comma is the usual kind of damage in model output.
	u := newTestUnderstander(&stubClient{resp: `{"intent": "trend_analysis", "entities": ["breakdown"],}`})

	got := u.Understand(context.Background(), "breakdown trends")

	assert.Equal(t, IntentTrendAnalysis, got.Intent)
	assert.Equal(t, []string{"breakdown"}, got.Entities)
}

func TestUnderstandSendsTaxonomyPrompt(t *testing.T) {
	client := &stubClient{resp: `{"intent": "exploration"}`}
	u := newTestUnderstander(client)

	u.Understand(context.Background(), "what is out there")

	require.Len(t, client.calls, 1)
	req := client.calls[0]
	assert.Equal(t, understandingSystemPrompt, req.SystemPrompt)
	assert.Contains(t, req.UserPrompt, `"what is out there"`)
	assert.Equal(t, int32(1000), req.MaxTokens)
}
