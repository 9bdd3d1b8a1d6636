// Package memory provides in-memory repository implementations, used by
// tests and the CLI entrypoint where postgres is not configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"hypotourney/domain/core"
	"hypotourney/domain/game"
	"hypotourney/domain/session"
)

// SessionRepository keeps sessions in a map. Safe for concurrent use.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*session.Session
}

// NewSessionRepository creates an empty in-memory session store.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[core.SessionID]*session.Session)}
}

// Save persists the full session state (insert or update)
func (r *SessionRepository) Save(ctx context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

// Get retrieves a session by id
func (r *SessionRepository) Get(ctx context.Context, id core.SessionID) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return s, nil
}

// Delete removes a session
func (r *SessionRepository) Delete(ctx context.Context, id core.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return core.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// List returns the most recently updated sessions, newest first
func (r *SessionRepository) List(ctx context.Context, limit int) ([]*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*session.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ScenarioRepository keeps scenarios in a map. Safe for concurrent use.
type ScenarioRepository struct {
	mu        sync.RWMutex
	scenarios map[core.ID]*game.Scenario
	order     []core.ID
}

// NewScenarioRepository creates an empty in-memory scenario store.
func NewScenarioRepository() *ScenarioRepository {
	return &ScenarioRepository{scenarios: make(map[core.ID]*game.Scenario)}
}

// Save persists a scenario (insert or update)
func (r *ScenarioRepository) Save(ctx context.Context, scenario *game.Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.scenarios[scenario.ID]; !ok {
		r.order = append(r.order, scenario.ID)
	}
	r.scenarios[scenario.ID] = scenario
	return nil
}

// Get retrieves a scenario by id
func (r *ScenarioRepository) Get(ctx context.Context, id core.ID) (*game.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scenarios[id]
	if !ok {
		return nil, core.ErrScenarioNotFound
	}
	return s, nil
}

// List returns stored scenarios, newest first
func (r *ScenarioRepository) List(ctx context.Context, limit int) ([]*game.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*game.Scenario, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, r.scenarios[r.order[i]])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
