package repository

import (
	"context"
)

// CompletionRequest carries a single synchronous call to a text-generation
// backend. Temperature and MaxTokens are passed through unchanged.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int32
}

// LLMClient defines the interface for generating text from a prompt.
type LLMClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
}

// TaskType defines the type of LLM task.
type TaskType string

// LLMRouter defines the interface for routing tasks to appropriate LLM clients.
type LLMRouter interface {
	RouteLLMTask(task TaskType) LLMClient
}
