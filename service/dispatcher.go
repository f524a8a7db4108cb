package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/beka-birhanu/vinom-nav/config"
	"github.com/beka-birhanu/vinom-nav/nav"
	"github.com/beka-birhanu/vinom-nav/service/i"
)

// Dispatcher feeds commands to an executor one at a time, waiting for each
// to finish and then for the settle delay before sending the next.
type Dispatcher struct {
	executor    i.MotionExecutor
	settleDelay time.Duration
	logger      *log.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(executor i.MotionExecutor, settleDelay time.Duration, logger *log.Logger) *Dispatcher {
	return &Dispatcher{executor: executor, settleDelay: settleDelay, logger: logger}
}

// Dispatch runs commands in order and returns how many completed. Nothing is
// retried: the first executor error ends the run wrapped in
// ErrExecutorFailure, and a cancelled ctx ends it with ctx.Err(). Halting the
// vehicle afterwards is the caller's job.
func (d *Dispatcher) Dispatch(ctx context.Context, commands []nav.MotionCommand) (int, error) {
	for idx, cmd := range commands {
		if err := ctx.Err(); err != nil {
			return idx, err
		}

		if err := d.executor.Execute(ctx, cmd); err != nil {
			if ctx.Err() != nil {
				return idx, ctx.Err()
			}
			d.logger.Printf("%s[ERROR]%s command %d (%s) failed: %s", config.LogErrorColor, config.LogColorReset, idx, cmd, err)
			return idx, fmt.Errorf("%w: command %d (%s): %w", ErrExecutorFailure, idx, cmd.Kind, err)
		}
		d.logger.Printf("%s[INFO]%s command %d/%d done: %s", config.LogInfoColor, config.LogColorReset, idx+1, len(commands), cmd)

		if err := settle(ctx, d.settleDelay); err != nil {
			return idx + 1, err
		}
	}
	return len(commands), nil
}

// settle waits for delay or until ctx is done.
func settle(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
