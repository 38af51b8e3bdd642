package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fleetsight/fleetsight-api/internal/domain/repository"
)

func TestCall_ReturnsValueOnSuccess(t *testing.T) {
	got := Call("Test", "op", "default", func() (string, error) {
		return "value", nil
	})
	if got != "value" {
		t.Errorf("expected value, got %q", got)
	}
}

func TestCall_ReturnsDefaultOnFailure(t *testing.T) {
	got := Call("Test", "op", "default", func() (string, error) {
		return "partial", errors.New("boom")
	})
	if got != "default" {
		t.Errorf("expected default, got %q", got)
	}
}

type failingClient struct {
	calls int
}

func (f *failingClient) Complete(ctx context.Context, req repository.CompletionRequest) (string, error) {
	f.calls++
	return "", errors.New("backend down")
}

func (f *failingClient) Name() string { return "failing" }

func TestGuardedClient_OpensAfterFailures(t *testing.T) {
	inner := &failingClient{}
	g := NewGuardedClient(inner, 2, time.Minute)

	ctx := context.Background()
	req := repository.CompletionRequest{UserPrompt: "hi"}

	_, _ = g.Complete(ctx, req)
	_, _ = g.Complete(ctx, req)

	// Breaker should now reject without reaching the backend.
	_, err := g.Complete(ctx, req)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 backend calls, got %d", inner.calls)
	}
}

func TestGuardedClient_NamePassthrough(t *testing.T) {
	g := NewGuardedClient(&failingClient{}, 1, time.Minute)
	if g.Name() != "failing" {
		t.Errorf("expected name passthrough, got %q", g.Name())
	}
}
