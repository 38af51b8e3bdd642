package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fleetsight/fleetsight-api/internal/history"
	"github.com/fleetsight/fleetsight-api/internal/pipeline"
)

// QueryService is the pipeline surface the HTTP layer needs.
type QueryService interface {
	Process(ctx context.Context, text string, opts pipeline.Options) pipeline.Response
	BatchProcess(ctx context.Context, texts []string, opts pipeline.Options) []pipeline.Response
	WarehouseProfile(ctx context.Context, warehouseID string) (*pipeline.Profile, error)
	CompareWarehouses(ctx context.Context, warehouseIDs []string, metrics []string) (*pipeline.Comparison, error)
}

// HistoryProvider serves the query audit trail.
type HistoryProvider interface {
	Recent(ctx context.Context, limit int) ([]history.QueryRecord, error)
}

// Server holds the dependencies for the HTTP API server.
type Server struct {
	pipeline QueryService
	history  HistoryProvider
}

// NewServer initializes a new API server. history may be nil, in which case
// the history endpoint reports unavailable.
func NewServer(p QueryService, h HistoryProvider) *Server {
	return &Server{pipeline: p, history: h}
}

// RegisterRoutes registers all API endpoints with a new ServeMux.
func (s *Server) RegisterRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/query", s.handleQuery)
	mux.HandleFunc("POST /api/v1/query/batch", s.handleBatchQuery)
	mux.HandleFunc("GET /api/v1/warehouses/{warehouse_id}/profile", s.handleWarehouseProfile)
	mux.HandleFunc("POST /api/v1/warehouses/compare", s.handleCompareWarehouses)
	mux.HandleFunc("GET /api/v1/history", s.handleHistory)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return mux
}

// Run serves the API on addr until the context is canceled or a shutdown
// signal arrives, then drains connections.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.RegisterRoutes(),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("[Server] Starting REST API server on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Printf("[Server] Shutdown signal received. Draining connections...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("[Server] Server stopped gracefully.")
	return nil
}

type QueryRequest struct {
	Query                   string `json:"query"`
	UseTemplates            *bool  `json:"use_templates,omitempty"`
	GenerateRecommendations bool   `json:"generate_recommendations,omitempty"`
}

type BatchQueryRequest struct {
	Queries                 []string `json:"queries"`
	UseTemplates            *bool    `json:"use_templates,omitempty"`
	GenerateRecommendations bool     `json:"generate_recommendations,omitempty"`
}

type CompareRequest struct {
	WarehouseIDs []string `json:"warehouse_ids"`
	Metrics      []string `json:"metrics,omitempty"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "Query field is required", http.StatusBadRequest)
		return
	}

	resp := s.pipeline.Process(r.Context(), req.Query, requestOptions(req.UseTemplates, req.GenerateRecommendations))
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBatchQuery(w http.ResponseWriter, r *http.Request) {
	var req BatchQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(req.Queries) == 0 {
		http.Error(w, "Queries field is required", http.StatusBadRequest)
		return
	}

	responses := s.pipeline.BatchProcess(r.Context(), req.Queries, requestOptions(req.UseTemplates, req.GenerateRecommendations))
	writeJSON(w, http.StatusOK, map[string]any{
		"responses": responses,
		"count":     len(responses),
	})
}

func (s *Server) handleWarehouseProfile(w http.ResponseWriter, r *http.Request) {
	warehouseID := r.PathValue("warehouse_id")
	if warehouseID == "" {
		http.Error(w, "warehouse_id is required", http.StatusBadRequest)
		return
	}

	profile, err := s.pipeline.WarehouseProfile(r.Context(), warehouseID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleCompareWarehouses(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(req.WarehouseIDs) < 2 {
		http.Error(w, "At least two warehouse_ids are required", http.StatusBadRequest)
		return
	}

	comparison, err := s.pipeline.CompareWarehouses(r.Context(), req.WarehouseIDs, req.Metrics)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "History is not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("[Server] Failed to load history: %v", err)
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"count":   len(records),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func requestOptions(useTemplates *bool, generateRecommendations bool) pipeline.Options {
	opts := pipeline.DefaultOptions()
	if useTemplates != nil {
		opts.UseTemplates = *useTemplates
	}
	opts.GenerateRecommendations = generateRecommendations
	return opts
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Server] Failed to encode response: %v", err)
	}
}
