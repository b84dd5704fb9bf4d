// Package server provides the HTTP REST API for the team composer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jonathan/team-composer/internal/composer"
	"github.com/jonathan/team-composer/internal/config"
	"github.com/jonathan/team-composer/internal/db"
	"github.com/jonathan/team-composer/internal/llm"
	"github.com/jonathan/team-composer/internal/matching"
	"github.com/jonathan/team-composer/internal/membership"
	"github.com/jonathan/team-composer/internal/ranking"
	"github.com/jonathan/team-composer/internal/types"
)

// Directory is the read side of the persistence layer the handlers need.
// *db.DB satisfies it.
type Directory interface {
	GetTeamByID(ctx context.Context, id uuid.UUID) (*types.Team, error)
	ListEmployeesMatchingFilter(ctx context.Context, filter db.EmployeeFilter) ([]types.EmployeeProfile, error)
}

// Coordinator mutates team membership. *membership.Coordinator satisfies it.
type Coordinator interface {
	AddMembers(ctx context.Context, teamID uuid.UUID, employeeIDs []uuid.UUID) (*types.TeamView, error)
	RemoveMember(ctx context.Context, teamID, employeeID uuid.UUID) (*types.TeamView, error)
	MoveMember(ctx context.Context, sourceTeamID, targetTeamID, employeeID uuid.UUID) (*membership.MoveResult, error)
}

// Composer produces team compositions. *composer.Generator satisfies it.
type Composer interface {
	Generate(ctx context.Context, req *types.CompositionRequest) (*types.TeamComposition, error)
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	directory   Directory
	coordinator Coordinator
	composer    Composer
	ranker      *ranking.Ranker
	metrics     *metrics
}

// New creates a new server instance from the loaded configuration. The
// generative collaborator is optional: without an API key every
// composition request uses the deterministic assembly.
func New(cfg *config.Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	scorer := matching.NewScorer(matching.FromConfig(cfg))
	ranker := ranking.NewRanker(scorer)

	var client llm.Client
	if cfg.APIKey != "" {
		client, err = llm.NewGeminiClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
	} else {
		log.Println("No API key configured, compositions use deterministic assembly only")
	}

	generator := composer.NewGenerator(database, ranker, client, composer.Options{
		Timeout:         cfg.GenerationTimeoutDuration(),
		RedundancyLevel: cfg.RedundancyExperienceLevel(),
		Verbose:         cfg.Verbose,
	})

	s := &Server{
		db:          database,
		directory:   database,
		coordinator: membership.NewCoordinator(database),
		composer:    generator,
		ranker:      ranker,
		metrics:     newMetrics(prometheus.NewRegistry()),
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // composition requests can run long
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// routes builds the request router.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /teams/{id}/candidates", s.handleFindCandidates)
	mux.HandleFunc("POST /teams/{id}/members", s.handleAddMembers)
	mux.HandleFunc("DELETE /teams/{id}/members/{employee_id}", s.handleRemoveMember)
	mux.HandleFunc("POST /teams/{source_id}/members/{employee_id}/move", s.handleMoveMember)

	mux.HandleFunc("POST /compositions", s.handleGenerateComposition)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.handler())

	return s.withLogging(mux)
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
