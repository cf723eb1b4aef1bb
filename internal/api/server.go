// Package api serves the pricing-game engine over HTTP and WebSocket.
// Every request builds its own matrix from its own parameters; no state is
// shared between requests.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"rideshare-pricing-lab/internal/game"
	"rideshare-pricing-lab/internal/observability"
	"rideshare-pricing-lab/internal/reporting"
)

// Server holds the API's collaborators.
type Server struct {
	logger    *log.Logger
	metrics   *observability.Metrics
	generator *reporting.Generator
}

// NewServer creates an API server.
func NewServer(logger *log.Logger, metrics *observability.Metrics) *Server {
	return &Server{
		logger:    logger,
		metrics:   metrics,
		generator: reporting.NewGenerator(),
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/health", s.handleHealth)
	r.Get("/api/defaults", s.handleDefaults)
	r.Post("/api/analysis", s.handleAnalysis)
	r.Get("/api/ws", s.handleWS)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	s.metrics.RecordRequest("/api/health", "200", 0)
}

// handleDefaults returns the baseline parameter set so clients can seed
// their controls.
func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"params":          game.DefaultParams(),
		"discount_factor": defaultDiscountFactor,
	})
	s.metrics.RecordRequest("/api/defaults", "200", 0)
}

// handleAnalysis runs the full analysis chain for the posted parameters.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		s.metrics.RecordRequest("/api/analysis", "400", time.Since(start).Seconds())
		return
	}

	report, err := s.analyze(&req)
	if err != nil {
		code := statusFor(err)
		s.writeError(w, code, err.Error())
		s.metrics.RecordRequest("/api/analysis", strconv.Itoa(code), time.Since(start).Seconds())
		return
	}

	s.writeJSON(w, http.StatusOK, report)
	s.metrics.RecordRequest("/api/analysis", "200", time.Since(start).Seconds())
}

// analyze converts the request and runs the generator, recording engine
// metrics. Shared by the HTTP and WebSocket paths.
func (s *Server) analyze(req *AnalysisRequest) (*reporting.Report, error) {
	start := time.Now()

	reportReq, err := req.toReportRequest()
	if err != nil {
		s.metrics.RecordAnalysis("invalid", time.Since(start).Seconds())
		return nil, err
	}

	report, err := s.generator.Generate(reportReq)
	if err != nil {
		s.metrics.RecordAnalysis("error", time.Since(start).Seconds())
		return nil, err
	}

	s.metrics.MatricesBuilt.Inc()
	s.metrics.RecordAnalysis("ok", time.Since(start).Seconds())
	return report, nil
}

// statusFor maps engine errors to HTTP status codes. Validation failures
// are the caller's fault; anything else is internal.
func statusFor(err error) int {
	if errors.Is(err, game.ErrInvalidConfiguration) || errors.Is(err, game.ErrInvalidParameter) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("write response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, map[string]string{"error": msg})
}
