// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	service "github.com/credeq/credeq/internal/app"
)

// AnalyzeHandler handles analysis requests.
type AnalyzeHandler struct {
	analyzer Analyzer
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(analyzer Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

// HandleAnalyze handles POST /analyze requests.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.analyzer.Analyze(r.Context(), service.AnalyzeRequest{
		Type:           req.appType(),
		SubjectName:    req.SubjectName,
		SubjectAliases: req.SubjectAliases,
		ApplicantFiles: req.ApplicantFiles,
		SunwayFiles:    req.SunwayFiles,
	})
	if err != nil {
		if service.IsValidation(err) {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		AIDecision:               string(res.Verdict),
		Type:                     res.Type,
		Reasoning:                res.Reasoning,
		SuggestedEquivalentGrade: res.SuggestedEquivalentGrade,
	})
}
