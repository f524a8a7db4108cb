package i

import (
	"github.com/beka-birhanu/vinom-nav/domain"
	"github.com/google/uuid"
)

// MissionRepo defines the interface for mission persistence operations.
type MissionRepo interface {
	// Save inserts or updates a mission in the repository.
	Save(mission *domain.Mission) error

	// ByID retrieves a mission by its unique ID.
	// Returns an error if the mission is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*domain.Mission, error)
}
