// Package executor drives a vehicle with motion commands over the available
// transports. Every executor holds a command's velocity for its duration and
// then zeroes it.
package executor

import (
	"context"
	"time"
)

// hold blocks for d or until ctx is done.
func hold(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
