package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SessionID    ID
	CompetitorID ID
)

// ParadigmID identifies a worldview lens within a scenario (e.g. "K1").
// Scenario-authored keys, not generated UUIDs.
type ParadigmID string

// HypothesisID identifies a candidate explanation within a scenario.
type HypothesisID string

// ClusterID identifies an evidence cluster within a scenario.
type ClusterID string

func (id ParadigmID) String() string   { return string(id) }
func (id HypothesisID) String() string { return string(id) }
func (id ClusterID) String() string    { return string(id) }
