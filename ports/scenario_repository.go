package ports

import (
	"context"

	"hypotourney/domain/core"
	"hypotourney/domain/game"
)

// ScenarioRepository defines the interface for scenario storage
type ScenarioRepository interface {
	// Save persists a scenario (insert or update)
	Save(ctx context.Context, scenario *game.Scenario) error

	// Get retrieves a scenario by id
	Get(ctx context.Context, id core.ID) (*game.Scenario, error)

	// List returns stored scenarios, newest first
	List(ctx context.Context, limit int) ([]*game.Scenario, error)
}
