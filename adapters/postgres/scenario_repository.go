package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"hypotourney/domain/core"
	"hypotourney/domain/game"
	"hypotourney/ports"
)

// ScenarioRepositoryImpl implements ScenarioRepository for PostgreSQL
type ScenarioRepositoryImpl struct {
	db *sqlx.DB
}

// NewScenarioRepository creates a new PostgreSQL scenario repository
func NewScenarioRepository(db *sqlx.DB) ports.ScenarioRepository {
	return &ScenarioRepositoryImpl{db: db}
}

type scenarioRow struct {
	ID        string        `db:"id"`
	Doc       JSONBDocument `db:"doc"`
	CreatedAt time.Time     `db:"created_at"`
}

// Save persists a scenario as a JSONB document (upsert)
func (r *ScenarioRepositoryImpl) Save(ctx context.Context, scenario *game.Scenario) error {
	doc, err := marshalDocument(scenario)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO scenarios (id, doc, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET doc = $2
	`, string(scenario.ID), doc)
	return err
}

// Get retrieves a scenario by id
func (r *ScenarioRepositoryImpl) Get(ctx context.Context, id core.ID) (*game.Scenario, error) {
	var row scenarioRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, doc, created_at FROM scenarios WHERE id = $1
	`, string(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrScenarioNotFound
	}
	if err != nil {
		return nil, err
	}

	var scenario game.Scenario
	if err := unmarshalDocument(row.Doc, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// List returns stored scenarios, newest first
func (r *ScenarioRepositoryImpl) List(ctx context.Context, limit int) ([]*game.Scenario, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []scenarioRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, doc, created_at FROM scenarios
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}

	scenarios := make([]*game.Scenario, 0, len(rows))
	for _, row := range rows {
		var scenario game.Scenario
		if err := unmarshalDocument(row.Doc, &scenario); err != nil {
			return nil, err
		}
		scenarios = append(scenarios, &scenario)
	}
	return scenarios, nil
}

// Migrate creates the tables this adapter needs.
func Migrate(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS scenarios (
			id TEXT PRIMARY KEY,
			doc JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			doc JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions (updated_at DESC)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
