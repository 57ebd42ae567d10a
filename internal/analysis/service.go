package analysis

import (
	"context"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"
)

// ErrMissingDescription is returned when a submission carries no description
// field at all. An empty description is not an error — it produces a bundle
// with empty entity and story sections.
var ErrMissingDescription = xerrors.New("description is required")

// Service is the business boundary for session-scoped analysis operations.
type Service struct {
	store   Store
	engine  *Engine
	logger  log.Logger
	metrics *Metrics
}

// NewService creates a new analysis service. Metrics may be nil in tests.
func NewService(store Store, engine *Engine, logger log.Logger, metrics *Metrics) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	return &Service{
		store:   store,
		engine:  engine,
		logger:  logger,
		metrics: metrics,
	}
}

// Analyze runs the pipeline over the description and stores the resulting
// bundle for the session, replacing any previous one. The pending draft is
// cleared so the form does not re-offer stale demo text.
func (s *Service) Analyze(ctx context.Context, sessionID, description string) (*Bundle, error) {
	b := s.engine.Run(ctx, description)

	if err := s.store.PutBundle(ctx, sessionID, b); err != nil {
		s.submitResult("store_error")
		return nil, err
	}
	if err := s.store.DeleteDraft(ctx, sessionID); err != nil {
		// stale draft is cosmetic, the analysis itself succeeded
		s.logger.Error(ctx, err, "failed to clear draft", "session_id", sessionID)
	}

	s.submitResult("ok")
	return b, nil
}

// Result retrieves the session's stored bundle, if any.
func (s *Service) Result(ctx context.Context, sessionID string) (*Bundle, bool, error) {
	return s.store.GetBundle(ctx, sessionID)
}

// Draft retrieves the session's pending draft description, if any.
func (s *Service) Draft(ctx context.Context, sessionID string) (string, bool, error) {
	return s.store.GetDraft(ctx, sessionID)
}

// SaveDraft stores a draft description for the session, used by the demo
// flow to pre-fill the input form without running an analysis.
func (s *Service) SaveDraft(ctx context.Context, sessionID, description string) error {
	return s.store.PutDraft(ctx, sessionID, description)
}

// RecordRejected counts a submission rejected before analysis, e.g. a form
// post with no description field.
func (s *Service) RecordRejected() {
	s.submitResult("missing_description")
}

func (s *Service) submitResult(result string) {
	if s.metrics != nil {
		s.metrics.SubmitsTotal.WithLabelValues(result).Inc()
	}
}
