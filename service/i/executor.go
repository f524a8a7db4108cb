package i

import (
	"context"

	"github.com/beka-birhanu/vinom-nav/nav"
)

// MotionExecutor drives the vehicle.
type MotionExecutor interface {
	// Execute runs one command and blocks for roughly its duration.
	// Implementations must accept a Stop issued concurrently with another call.
	Execute(ctx context.Context, cmd nav.MotionCommand) error
}
