package i

import (
	"context"

	"github.com/beka-birhanu/vinom-nav/domain"
	"github.com/google/uuid"
)

// MissionManager plans, queues and tracks missions.
type MissionManager interface {
	Submit(ctx context.Context, config domain.MissionConfig) (*domain.Mission, error)
	ByID(id uuid.UUID) (*domain.Mission, error)
	// Stop aborts the running mission, if any, and halts the vehicle.
	Stop(ctx context.Context) error
}
