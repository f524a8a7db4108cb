package executor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-nav/config"
	"github.com/beka-birhanu/vinom-nav/nav"
)

// Simulated pretends to drive a vehicle: it logs each command and waits for
// its duration multiplied by timeScale.
type Simulated struct {
	logger    *log.Logger
	timeScale float64

	executed int
	sync.Mutex
}

// NewSimulated creates a Simulated executor. A timeScale of 0 skips the
// waiting altogether.
func NewSimulated(logger *log.Logger, timeScale float64) *Simulated {
	if timeScale < 0 {
		timeScale = 0
	}
	return &Simulated{logger: logger, timeScale: timeScale}
}

// Execute logs cmd and waits for its scaled duration.
func (s *Simulated) Execute(ctx context.Context, cmd nav.MotionCommand) error {
	linear, angular := nav.Twist(cmd)
	s.logger.Printf("%s[INFO]%s %s%s%s linear=%.3f angular=%.3f", config.LogInfoColor, config.LogColorReset, config.ColorCyan, cmd, config.ColorReset, linear, angular)

	if err := hold(ctx, time.Duration(float64(cmd.Duration)*s.timeScale)); err != nil {
		return err
	}

	s.Lock()
	s.executed++
	s.Unlock()
	return nil
}

// Executed returns how many commands ran to completion.
func (s *Simulated) Executed() int {
	s.Lock()
	defer s.Unlock()
	return s.executed
}
