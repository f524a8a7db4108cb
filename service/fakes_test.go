package service

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/beka-birhanu/vinom-nav/domain"
	"github.com/beka-birhanu/vinom-nav/infrastruture/memory"
	"github.com/beka-birhanu/vinom-nav/nav"
)

var errMotorFault = errors.New("motor fault")

// recordingExecutor records every command it receives. It fails the command
// at index failAt and blocks on the command at index blockAt until ctx ends.
type recordingExecutor struct {
	failAt  int
	blockAt int
	started chan struct{}

	commands []nav.MotionCommand
	stops    int
	sync.Mutex
}

func newRecordingExecutor() *recordingExecutor {
	return &recordingExecutor{failAt: -1, blockAt: -1, started: make(chan struct{})}
}

func (e *recordingExecutor) Execute(ctx context.Context, cmd nav.MotionCommand) error {
	e.Lock()
	if cmd.Kind == nav.Stop {
		e.stops++
		e.Unlock()
		return nil
	}
	idx := len(e.commands)
	e.commands = append(e.commands, cmd)
	e.Unlock()

	switch idx {
	case e.failAt:
		return errMotorFault
	case e.blockAt:
		close(e.started)
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (e *recordingExecutor) received() ([]nav.MotionCommand, int) {
	e.Lock()
	defer e.Unlock()
	return append([]nav.MotionCommand(nil), e.commands...), e.stops
}

// hookRepo calls onSave with every mission before storing it.
type hookRepo struct {
	*memory.MissionRepo
	onSave func(*domain.Mission)
}

func (r *hookRepo) Save(mission *domain.Mission) error {
	if r.onSave != nil {
		r.onSave(mission)
	}
	return r.MissionRepo.Save(mission)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func fastConfig() nav.Config {
	cfg := nav.DefaultConfig()
	cfg.SettleDelay = 0
	return cfg
}
