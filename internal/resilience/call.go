package resilience

import (
	"context"
	"log"
	"time"

	"github.com/fleetsight/fleetsight-api/internal/domain/repository"
)

// Call invokes fn and returns its result, or def when fn fails. The failure
// is logged with the calling component and operation names. Every soft-fail
// service call in the pipeline goes through here so the degrade-to-default
// behavior lives in one place.
func Call[T any](component, op string, def T, fn func() (T, error)) T {
	v, err := fn()
	if err != nil {
		log.Printf("[%s] %s failed, using default: %v", component, op, err)
		return def
	}
	return v
}

// GuardedClient wraps an LLM client with a circuit breaker. It is a wrapping
// concern: the pipeline contracts stay free of retry and breaker logic, and
// callers that want protection wrap the client at wiring time.
type GuardedClient struct {
	inner   repository.LLMClient
	breaker *CircuitBreaker
}

// NewGuardedClient wraps client with a breaker using the given thresholds.
func NewGuardedClient(client repository.LLMClient, failThreshold int, openTimeout time.Duration) *GuardedClient {
	return &GuardedClient{
		inner:   client,
		breaker: NewCircuitBreaker(failThreshold, openTimeout),
	}
}

func (g *GuardedClient) Complete(ctx context.Context, req repository.CompletionRequest) (string, error) {
	var out string
	err := g.breaker.Execute(func() error {
		var innerErr error
		out, innerErr = g.inner.Complete(ctx, req)
		return innerErr
	})
	return out, err
}

func (g *GuardedClient) Name() string {
	return g.inner.Name()
}
