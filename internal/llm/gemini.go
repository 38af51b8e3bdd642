package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/fleetsight/fleetsight-api/internal/domain/repository"
)

// GeminiClient implements repository.LLMClient against the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key must not be empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if model == "" {
		model = "gemini-1.5-pro"
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

// Complete sends a single completion request. The generation settings are
// applied per call so each pipeline stage controls its own temperature and
// token budget.
func (c *GeminiClient) Complete(ctx context.Context, req repository.CompletionRequest) (string, error) {
	log.Printf("[Gemini] Sending request to %s...", c.model)

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(req.Temperature)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(req.MaxTokens)
	}
	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemPrompt)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.UserPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", err
	}

	log.Printf("[Gemini] Response received successfully.")
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text), nil
		}
	}

	return "", fmt.Errorf("unexpected response format from gemini")
}

func (c *GeminiClient) Name() string {
	return fmt.Sprintf("Gemini (%s) [Cloud]", c.model)
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}
