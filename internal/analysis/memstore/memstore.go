// Package memstore provides an in-memory implementation of analysis.Store.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/Mohammad-Abdrabbu/specgenie-sqa/internal/analysis"
)

type bundleEntry struct {
	bundle  *analysis.Bundle
	expires time.Time
}

type draftEntry struct {
	text    string
	expires time.Time
}

// Store holds session state in memory with lazy TTL expiry. Suitable for
// single-process deployments, dev, and testing; state is lost on restart,
// which matches the ephemeral session contract.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration // <= 0 means entries never expire
	bundles map[string]bundleEntry
	drafts  map[string]draftEntry
}

// New initializes a new in-memory Store with the given entry TTL.
func New(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		bundles: make(map[string]bundleEntry),
		drafts:  make(map[string]draftEntry),
	}
}

// GetBundle retrieves the session's bundle. Returns a copy.
func (s *Store) GetBundle(_ context.Context, sessionID string) (*analysis.Bundle, bool, error) {
	s.mu.RLock()
	e, ok := s.bundles[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if s.expired(e.expires) {
		s.mu.Lock()
		delete(s.bundles, sessionID)
		s.mu.Unlock()
		return nil, false, nil
	}
	cp := *e.bundle
	return &cp, true, nil
}

// PutBundle stores a copy of the bundle, overwriting any previous one for
// the session and refreshing its TTL.
func (s *Store) PutBundle(_ context.Context, sessionID string, b *analysis.Bundle) error {
	cp := *b
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bundles[sessionID] = bundleEntry{bundle: &cp, expires: s.deadline()}
	return nil
}

// GetDraft retrieves the session's draft description.
func (s *Store) GetDraft(_ context.Context, sessionID string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.drafts[sessionID]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if s.expired(e.expires) {
		s.mu.Lock()
		delete(s.drafts, sessionID)
		s.mu.Unlock()
		return "", false, nil
	}
	return e.text, true, nil
}

// PutDraft stores a draft description for the session.
func (s *Store) PutDraft(_ context.Context, sessionID, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[sessionID] = draftEntry{text: description, expires: s.deadline()}
	return nil
}

// DeleteDraft removes the session's draft, if any.
func (s *Store) DeleteDraft(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}

func (s *Store) deadline() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(s.ttl)
}

func (s *Store) expired(deadline time.Time) bool {
	return !deadline.IsZero() && time.Now().After(deadline)
}
