package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"hypotourney/domain/core"
	"hypotourney/domain/session"
	"hypotourney/ports"
)

// SessionRepositoryImpl implements SessionRepository for PostgreSQL
type SessionRepositoryImpl struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository(db *sqlx.DB) ports.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

type sessionRow struct {
	ID        string        `db:"id"`
	Doc       JSONBDocument `db:"doc"`
	UpdatedAt time.Time     `db:"updated_at"`
}

// Save persists the full session state as a JSONB document (upsert)
func (r *SessionRepositoryImpl) Save(ctx context.Context, s *session.Session) error {
	doc, err := marshalDocument(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, doc, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET doc = $2, updated_at = $3
	`, string(s.ID), doc, s.UpdatedAt.Time())
	return err
}

// Get retrieves a session by id
func (r *SessionRepositoryImpl) Get(ctx context.Context, id core.SessionID) (*session.Session, error) {
	var row sessionRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, doc, updated_at FROM sessions WHERE id = $1
	`, string(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var s session.Session
	if err := unmarshalDocument(row.Doc, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes a session
func (r *SessionRepositoryImpl) Delete(ctx context.Context, id core.SessionID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return core.ErrSessionNotFound
	}
	return nil
}

// List returns the most recently updated sessions, newest first
func (r *SessionRepositoryImpl) List(ctx context.Context, limit int) ([]*session.Session, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []sessionRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, doc, updated_at FROM sessions
		ORDER BY updated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}

	sessions := make([]*session.Session, 0, len(rows))
	for _, row := range rows {
		var s session.Session
		if err := unmarshalDocument(row.Doc, &s); err != nil {
			return nil, err
		}
		sessions = append(sessions, &s)
	}
	return sessions, nil
}
