// Package server exposes the agent HTTP API: action listing, request
// resolution, gated execution, health status and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"winmate/internal/sysinfo"
	"winmate/internal/updater"
	"winmate/pkg/catalog"
	"winmate/pkg/domain"
	"winmate/pkg/executor"
	"winmate/pkg/ports"
	"winmate/pkg/router"
)

// Server wires the application core to HTTP handlers.
type Server struct {
	catalog   *catalog.Catalog
	router    *router.Router
	executor  *executor.Executor
	collector *sysinfo.Collector
	journal   ports.Journal
	updater   *updater.Updater
	gatherer  prometheus.Gatherer
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithUpdater enables the /api/update endpoint.
func WithUpdater(u *updater.Updater) Option {
	return func(s *Server) { s.updater = u }
}

// WithJournal enables the /api/journal endpoint.
func WithJournal(j ports.Journal) Option {
	return func(s *Server) { s.journal = j }
}

// WithGatherer sets the Prometheus gatherer behind /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates a Server.
func New(cat *catalog.Catalog, rt *router.Router, exec *executor.Executor, collector *sysinfo.Collector, opts ...Option) *Server {
	s := &Server{
		catalog:   cat,
		router:    rt,
		executor:  exec,
		collector: collector,
		gatherer:  prometheus.DefaultGatherer,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/actions", s.handleActions)
		r.Post("/resolve", s.handleResolve)
		r.Post("/execute", s.handleExecute)
		r.Get("/status", s.handleStatus)
		r.Get("/journal", s.handleJournal)
		r.Get("/update", s.handleUpdate)
	})

	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleActions(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog.Summaries())
}

type resolveRequest struct {
	Request string `json:"request"`
}

type resolveResponse struct {
	Plan []domain.ActionSummary `json:"plan"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var body resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan := s.router.Resolve(r.Context(), body.Request)
	summaries := make([]domain.ActionSummary, len(plan))
	for i, a := range plan {
		summaries[i] = a.Summary()
	}
	s.writeJSON(w, http.StatusOK, resolveResponse{Plan: summaries})
}

type executeRequest struct {
	Request string   `json:"request,omitempty"`
	Actions []string `json:"actions,omitempty"`
	// Confirm must be true to run dangerous actions; there is no prompt
	// on this surface.
	Confirm bool `json:"confirm"`
}

type executeResponse struct {
	Records []domain.ExecutionRecord `json:"records"`
	Summary string                   `json:"summary"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var body executeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var plan []domain.Action
	switch {
	case len(body.Actions) > 0:
		for _, id := range body.Actions {
			action, ok := s.catalog.Lookup(id)
			if !ok {
				s.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown action %q", id))
				return
			}
			plan = append(plan, action)
		}
	case body.Request != "":
		plan = s.router.Resolve(r.Context(), body.Request)
	default:
		s.writeError(w, http.StatusBadRequest, "request or actions must be provided")
		return
	}

	if len(plan) == 0 {
		s.writeJSON(w, http.StatusOK, executeResponse{
			Records: []domain.ExecutionRecord{},
			Summary: "No matching actions.",
		})
		return
	}

	confirm := executor.DenyAll
	if body.Confirm {
		confirm = executor.ConfirmAll
	}

	records := s.executor.RunPlan(r.Context(), plan, confirm)
	s.writeJSON(w, http.StatusOK, executeResponse{
		Records: records,
		Summary: executor.Summarize(records),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	s.writeJSON(w, http.StatusOK, s.collector.Collect(ctx))
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		s.writeError(w, http.StatusNotFound, "journal is not configured")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &limit); err != nil || limit <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	lines, err := s.journal.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if lines == nil {
		lines = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"entries": lines})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if s.updater == nil {
		s.writeError(w, http.StatusNotFound, "updater is not configured")
		return
	}
	s.writeJSON(w, http.StatusOK, s.updater.Check(r.Context()))
}
