package main

import (
	"context"
	"log"
	"time"

	"github.com/fleetsight/fleetsight-api/internal/answer"
	"github.com/fleetsight/fleetsight-api/internal/config"
	"github.com/fleetsight/fleetsight-api/internal/domain/repository"
	"github.com/fleetsight/fleetsight-api/internal/graph"
	"github.com/fleetsight/fleetsight-api/internal/history"
	"github.com/fleetsight/fleetsight-api/internal/llm"
	"github.com/fleetsight/fleetsight-api/internal/pipeline"
	"github.com/fleetsight/fleetsight-api/internal/query"
	"github.com/fleetsight/fleetsight-api/internal/resilience"
)

// app bundles the wired pipeline and its lifecycle.
type app struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	history  *history.Store

	gemini interface{ Close() error }
}

// newApp loads configuration and wires every component behind the pipeline.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	localClient := llm.NewLocalOllamaClient(cfg.OllamaHost, cfg.OllamaModel)

	var cloudClient repository.LLMClient
	if cfg.UseLocalOnlyLLM {
		log.Printf("[System] FLEET_USE_LOCAL_ONLY_LLM is true. Overriding Gemini with local Ollama.")
		cloudClient = localClient
	} else {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		a.gemini = geminiClient
		cloudClient = resilience.NewGuardedClient(geminiClient, 5, 30*time.Second)
	}

	router := llm.NewRouter(localClient, cloudClient)
	log.Printf("[System] LLM router initialized (Cloud: %s | Local: %s)", cloudClient.Name(), localClient.Name())

	runner, err := graph.NewNeo4jRunner(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	executor := graph.NewExecutor(runner, cfg.ContextWindow)

	store, err := history.NewStore(cfg.HistoryDSN)
	if err != nil {
		log.Printf("[Warning] Query history disabled: %v", err)
		store = nil
	}
	a.history = store

	a.pipeline = pipeline.New(
		query.NewGenerator(router, cfg.Temperature, cfg.MaxTokens),
		executor,
		answer.NewGenerator(router, cfg.Temperature, cfg.MaxTokens),
		store,
		cfg.MaxResults,
	)
	return a, nil
}

func (a *app) close(ctx context.Context) {
	if a.pipeline != nil {
		if err := a.pipeline.Close(ctx); err != nil {
			log.Printf("[Warning] Failed to close graph connection: %v", err)
		}
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			log.Printf("[Warning] Failed to close history store: %v", err)
		}
	}
	if a.gemini != nil {
		if err := a.gemini.Close(); err != nil {
			log.Printf("[Warning] Failed to close Gemini client: %v", err)
		}
	}
}
