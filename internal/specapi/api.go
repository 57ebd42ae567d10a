// Package specapi exposes the analysis pipeline as a JSON API for
// programmatic callers; session handling is shared with the HTML UI.
package specapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/Mohammad-Abdrabbu/specgenie-sqa/internal/analysis"
	"github.com/Mohammad-Abdrabbu/specgenie-sqa/internal/sessionmw"
)

// AnalysisService defines the business operations the API needs.
type AnalysisService interface {
	Analyze(ctx context.Context, sessionID, description string) (*analysis.Bundle, error)
	Result(ctx context.Context, sessionID string) (*analysis.Bundle, bool, error)
	RecordRejected()
}

// API holds dependencies for the JSON handlers.
type API struct {
	logger log.Logger
	svc    AnalysisService
}

// New creates a new API handler.
func New(logger log.Logger, svc AnalysisService) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("analysis service is required"))
	}
	return &API{
		logger: logger,
		svc:    svc,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", a.handleAnalyze)
		r.Get("/result", a.handleGetResult)
	})
}

// analyzeRequest decodes description into a pointer so an absent field can
// be told apart from an empty one: only the former is an input error.
type analyzeRequest struct {
	Description *string `json:"description"`
}

func (a *API) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionmw.FromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"session unavailable"}`, http.StatusInternalServerError)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}
	if req.Description == nil {
		a.svc.RecordRejected()
		http.Error(w, `{"error":"description is required"}`, http.StatusUnprocessableEntity)
		return
	}

	b, err := a.svc.Analyze(r.Context(), sid, strings.TrimSpace(*req.Description))
	if err != nil {
		a.logger.Error(r.Context(), err, "analysis failed", "session_id", sid)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(
		attribute.String("specgenie.bundle.id", b.ID),
		attribute.Int("specgenie.bundle.entities", len(b.Entities)),
		attribute.Int("specgenie.bundle.risks", len(b.Risks)),
		attribute.Int("specgenie.bundle.stories", len(b.Stories)),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(b)
}

func (a *API) handleGetResult(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionmw.FromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"session unavailable"}`, http.StatusInternalServerError)
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("specgenie.session.id", sid))

	b, found, err := a.svc.Result(r.Context(), sid)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to get result", "session_id", sid)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(b)
}
