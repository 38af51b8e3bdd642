package llm

import (
	"log"

	"github.com/fleetsight/fleetsight-api/internal/domain/repository"
)

// Pipeline task classes. Understanding and context extraction are
// high-volume, low-stakes parses; Cypher generation and answer synthesis
// need the stronger model.
const (
	TaskQueryUnderstanding repository.TaskType = "query_understanding"
	TaskContextExtraction  repository.TaskType = "context_extraction"
	TaskCypherGeneration   repository.TaskType = "cypher_generation"
	TaskAnswerSynthesis    repository.TaskType = "answer_synthesis"
)

// Router implements repository.LLMRouter, selecting a backend per task class.
type Router struct {
	localClient repository.LLMClient
	cloudClient repository.LLMClient
}

// NewRouter initializes the LLM router with the specified backend clients.
// Either client may equal the other when only one backend is configured.
func NewRouter(local, cloud repository.LLMClient) *Router {
	return &Router{
		localClient: local,
		cloudClient: cloud,
	}
}

// RouteLLMTask sends lightweight parsing tasks to the local backend and
// heavy synthesis tasks to the cloud backend.
func (r *Router) RouteLLMTask(task repository.TaskType) repository.LLMClient {
	var selected repository.LLMClient

	switch task {
	case TaskQueryUnderstanding, TaskContextExtraction:
		selected = r.localClient
	case TaskCypherGeneration, TaskAnswerSynthesis:
		selected = r.cloudClient
	default:
		// Unknown tasks stay local for cost safety.
		selected = r.localClient
	}

	log.Printf("[Router] Routing task '%s' to %s", task, selected.Name())
	return selected
}
