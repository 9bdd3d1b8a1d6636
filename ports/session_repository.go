package ports

import (
	"context"

	"hypotourney/domain/core"
	"hypotourney/domain/session"
)

// SessionRepository defines the interface for session persistence
type SessionRepository interface {
	// Save persists the full session state (insert or update)
	Save(ctx context.Context, s *session.Session) error

	// Get retrieves a session by id
	Get(ctx context.Context, id core.SessionID) (*session.Session, error)

	// Delete removes a session; used by "new analysis"
	Delete(ctx context.Context, id core.SessionID) error

	// List returns the most recently updated sessions, newest first
	List(ctx context.Context, limit int) ([]*session.Session, error)
}
