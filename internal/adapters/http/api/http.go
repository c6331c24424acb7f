// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/credeq/credeq/internal/app"
	"github.com/credeq/credeq/internal/domain/decision"
)

// Analyzer is the pipeline dependency required by HTTP handlers. Using
// an interface keeps the handler layer loosely coupled to the service
// implementation.
type Analyzer interface {
	Analyze(ctx context.Context, req service.AnalyzeRequest) (*service.AnalysisResult, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	analyzeHandler *AnalyzeHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(analyzer Analyzer, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		analyzeHandler: NewAnalyzeHandler(analyzer),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/analyze", MetricsMiddleware(s.analyzeHandler.HandleAnalyze, "analyze"))
}

// analyzeRequest mirrors the request schema for POST /analyze.
type analyzeRequest struct {
	Type           string   `json:"type"`
	SubjectName    string   `json:"subject_name"`
	SubjectAliases []string `json:"subject_aliases"`
	ApplicantFiles []string `json:"applicant_files"`
	SunwayFiles    []string `json:"sunway_files"`
}

func (a analyzeRequest) validate() error {
	switch {
	case strings.TrimSpace(a.SubjectName) == "":
		return errors.New("missing subject_name")
	case len(a.ApplicantFiles) == 0:
		return errors.New("missing applicant_files")
	case len(a.SunwayFiles) == 0:
		return errors.New("missing sunway_files")
	}
	return nil
}

// appType normalizes the application type. A missing type means a
// credit exemption; only "credit transfer" changes downstream behavior,
// so anything else passes through as-is.
func (a analyzeRequest) appType() string {
	t := strings.TrimSpace(a.Type)
	if t == "" {
		return decision.TypeCreditExemption
	}
	return t
}

// analyzeResponse is the decision payload returned to the caller.
type analyzeResponse struct {
	AIDecision               string             `json:"ai_decision"`
	Type                     string             `json:"type"`
	Reasoning                decision.Reasoning `json:"reasoning"`
	SuggestedEquivalentGrade *string            `json:"suggested_equivalent_grade"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
