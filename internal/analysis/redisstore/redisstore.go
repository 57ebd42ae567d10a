// Package redisstore provides a Redis implementation of analysis.Store.
// Bundles are stored as JSON values under per-session keys with Redis-native
// TTL, so expiry needs no sweeping and sessions survive a process restart as
// long as Redis itself is up.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Mohammad-Abdrabbu/specgenie-sqa/internal/analysis"
)

// Store persists session state in Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and returns a ready Store.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Store{client: client, ttl: ttl}, nil
}

// NewWithClient wraps an existing client, used by tests with miniredis.
func NewWithClient(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Close shuts down the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func bundleKey(sessionID string) string { return "specgenie:bundle:" + sessionID }
func draftKey(sessionID string) string  { return "specgenie:draft:" + sessionID }

// GetBundle retrieves the session's bundle.
func (s *Store) GetBundle(ctx context.Context, sessionID string) (*analysis.Bundle, bool, error) {
	data, err := s.client.Get(ctx, bundleKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get bundle: %w", err)
	}

	var b analysis.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, false, fmt.Errorf("unmarshal bundle: %w", err)
	}
	return &b, true, nil
}

// PutBundle stores the bundle with the configured TTL, overwriting any
// previous one for the session.
func (s *Store) PutBundle(ctx context.Context, sessionID string, b *analysis.Bundle) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}
	if err := s.client.Set(ctx, bundleKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set bundle: %w", err)
	}
	return nil
}

// GetDraft retrieves the session's draft description.
func (s *Store) GetDraft(ctx context.Context, sessionID string) (string, bool, error) {
	text, err := s.client.Get(ctx, draftKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get draft: %w", err)
	}
	return text, true, nil
}

// PutDraft stores a draft description with the configured TTL.
func (s *Store) PutDraft(ctx context.Context, sessionID, description string) error {
	if err := s.client.Set(ctx, draftKey(sessionID), description, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set draft: %w", err)
	}
	return nil
}

// DeleteDraft removes the session's draft, if any.
func (s *Store) DeleteDraft(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, draftKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del draft: %w", err)
	}
	return nil
}
