package analysis

import "context"

// Store is the session persistence interface. Every key is an opaque session
// ID; a session holds at most one result bundle and one draft description.
// Entries are ephemeral and expire after the TTL configured per
// implementation. A later Put for the same session overwrites the earlier
// entry (single writer per session).
type Store interface {
	GetBundle(ctx context.Context, sessionID string) (*Bundle, bool, error)
	PutBundle(ctx context.Context, sessionID string, b *Bundle) error
	GetDraft(ctx context.Context, sessionID string) (string, bool, error)
	PutDraft(ctx context.Context, sessionID string, description string) error
	DeleteDraft(ctx context.Context, sessionID string) error
}
