// Package pgstore provides a PostgreSQL implementation of analysis.Store.
// One row per session carries the bundle and the draft; expired rows are
// filtered on read and overwritten on write, so no sweeper is required for
// correctness.
package pgstore

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohammad-Abdrabbu/specgenie-sqa/internal/analysis"
)

var tracer = otel.Tracer("github.com/Mohammad-Abdrabbu/specgenie-sqa/internal/analysis/pgstore")

//go:embed schema.sql
var schema string

// Store persists session state in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// New applies the schema against the given pool and returns a ready Store.
func New(ctx context.Context, pool *pgxpool.Pool, ttl time.Duration) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool, ttl: ttl}, nil
}

// GetBundle retrieves the session's bundle.
func (s *Store) GetBundle(ctx context.Context, sessionID string) (*analysis.Bundle, bool, error) {
	ctx, span := tracer.Start(ctx, "pgstore.GetBundle", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	var bundleJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT bundle FROM sessions WHERE session_id = $1 AND expires_at > now()`,
		sessionID,
	).Scan(&bundleJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, fmt.Errorf("select bundle: %w", err)
	}
	if bundleJSON == nil {
		return nil, false, nil
	}

	var b analysis.Bundle
	if err := json.Unmarshal(bundleJSON, &b); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, fmt.Errorf("unmarshal bundle: %w", err)
	}
	return &b, true, nil
}

// PutBundle upserts the session row with the new bundle and refreshed TTL.
func (s *Store) PutBundle(ctx context.Context, sessionID string, b *analysis.Bundle) error {
	ctx, span := tracer.Start(ctx, "pgstore.PutBundle", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "UPSERT"),
	))
	defer span.End()

	bundleJSON, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}

	query := `INSERT INTO sessions (session_id, bundle, updated_at, expires_at)
	VALUES ($1, $2, now(), now() + $3)
	ON CONFLICT (session_id) DO UPDATE SET
		bundle     = EXCLUDED.bundle,
		updated_at = EXCLUDED.updated_at,
		expires_at = EXCLUDED.expires_at`

	if _, err := s.pool.Exec(ctx, query, sessionID, bundleJSON, s.ttl); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("upsert bundle: %w", err)
	}
	return nil
}

// GetDraft retrieves the session's draft description.
func (s *Store) GetDraft(ctx context.Context, sessionID string) (string, bool, error) {
	ctx, span := tracer.Start(ctx, "pgstore.GetDraft", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	var draft *string
	err := s.pool.QueryRow(ctx,
		`SELECT draft FROM sessions WHERE session_id = $1 AND expires_at > now()`,
		sessionID,
	).Scan(&draft)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", false, fmt.Errorf("select draft: %w", err)
	}
	if draft == nil {
		return "", false, nil
	}
	return *draft, true, nil
}

// PutDraft upserts the session row with the new draft and refreshed TTL.
func (s *Store) PutDraft(ctx context.Context, sessionID, description string) error {
	ctx, span := tracer.Start(ctx, "pgstore.PutDraft", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "UPSERT"),
	))
	defer span.End()

	query := `INSERT INTO sessions (session_id, draft, updated_at, expires_at)
	VALUES ($1, $2, now(), now() + $3)
	ON CONFLICT (session_id) DO UPDATE SET
		draft      = EXCLUDED.draft,
		updated_at = EXCLUDED.updated_at,
		expires_at = EXCLUDED.expires_at`

	if _, err := s.pool.Exec(ctx, query, sessionID, description, s.ttl); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("upsert draft: %w", err)
	}
	return nil
}

// DeleteDraft clears the session's draft without touching the bundle.
func (s *Store) DeleteDraft(ctx context.Context, sessionID string) error {
	ctx, span := tracer.Start(ctx, "pgstore.DeleteDraft", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "UPDATE"),
	))
	defer span.End()

	if _, err := s.pool.Exec(ctx,
		`UPDATE sessions SET draft = NULL, updated_at = now() WHERE session_id = $1`,
		sessionID,
	); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
