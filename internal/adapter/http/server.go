// Package http exposes the plan API plus health, readiness, and metrics
// endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HarvesConsulting/crop-protection/internal/advisor"
)

// Planner computes a spray plan for one request.
type Planner interface {
	Plan(ctx context.Context, req advisor.PlanRequest) (advisor.PlanResult, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the advisory API over HTTP.
type Server struct {
	httpServer *http.Server
	planner    Planner
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the plan endpoint and the
// operational routes.
func NewServer(addr string, planner Planner, logger *slog.Logger) *Server {
	s := &Server{
		planner:  planner,
		validate: validator.New(),
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/v1/plan", s.handlePlan)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.planner.CheckReadiness(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req advisor.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	result, err := s.planner.Plan(r.Context(), req)
	switch {
	case errors.Is(err, advisor.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	case errors.Is(err, advisor.ErrNoWeatherData):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	case err != nil:
		s.logger.Error("plan request failed", "error", err)
		writeJSON(w, http.StatusBadGateway, errorBody("weather provider unavailable"))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
