package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-nav/config"
	"github.com/beka-birhanu/vinom-nav/domain"
	"github.com/beka-birhanu/vinom-nav/nav"
	"github.com/beka-birhanu/vinom-nav/service/i"
	"github.com/google/uuid"
)

const (
	defaultPrefix       = "vinom-nav"
	defaultVehicle      = "vehicle-0"
	defaultPollInterval = 500 * time.Millisecond
	missionQueueKeyFmt  = "%s:missions:%s"
)

// Options tunes a MissionService. Zero values fall back to defaults.
type Options struct {
	Prefix       string        // queue key prefix
	Vehicle      string        // vehicle the queue feeds
	PollInterval time.Duration // idle wait between queue polls
}

// MissionService plans missions on submission and executes queued missions
// one at a time against a single vehicle.
type MissionService struct {
	repo       i.MissionRepo
	queue      i.SortedQueue
	executor   i.MotionExecutor
	dispatcher *Dispatcher
	navConfig  nav.Config
	logger     *log.Logger
	opts       *Options

	cancelRun context.CancelFunc // cancels the running mission, nil when idle
	sync.Mutex
}

// MissionConfig holds the dependencies of a MissionService.
type MissionConfig struct {
	Repo      i.MissionRepo
	Queue     i.SortedQueue
	Executor  i.MotionExecutor
	NavConfig nav.Config
	Logger    *log.Logger
}

// NewMissionService creates a MissionService.
func NewMissionService(c *MissionConfig, opts *Options) (*MissionService, error) {
	if c.Repo == nil || c.Queue == nil || c.Executor == nil || c.Logger == nil {
		return nil, errors.New("mission service requires a repo, queue, executor and logger")
	}
	if err := c.NavConfig.Validate(); err != nil {
		return nil, err
	}

	if opts == nil {
		opts = &Options{}
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}
	if opts.Vehicle == "" {
		opts.Vehicle = defaultVehicle
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}

	return &MissionService{
		repo:       c.Repo,
		queue:      c.Queue,
		executor:   c.Executor,
		dispatcher: NewDispatcher(c.Executor, c.NavConfig.SettleDelay, c.Logger),
		navConfig:  c.NavConfig,
		logger:     c.Logger,
		opts:       opts,
	}, nil
}

// Submit plans a mission and queues it for execution. Unreachable goals,
// broken paths and overlong direct routes are stored as failed and not
// queued. Any other planning error is returned and nothing is stored.
func (ms *MissionService) Submit(ctx context.Context, mc domain.MissionConfig) (*domain.Mission, error) {
	mission, err := domain.NewMission(mc)
	if err != nil {
		return nil, err
	}

	plan, err := ms.plan(mission)
	mission.Path = plan.Path
	mission.Commands = plan.Commands

	switch {
	case errors.Is(err, ErrUnreachable), errors.Is(err, nav.ErrNonAdjacentPath), errors.Is(err, nav.ErrRouteTooLong):
		_ = mission.Transition(domain.StatusFailed, err)
		ms.logger.Printf("%s[ERROR]%s planning mission %s: %s", config.LogErrorColor, config.LogColorReset, mission.ID, err)
		if saveErr := ms.repo.Save(mission); saveErr != nil {
			return nil, saveErr
		}
		return mission, nil
	case err != nil:
		ms.logger.Printf("%s[ERROR]%s rejected mission %s: %s", config.LogErrorColor, config.LogColorReset, mission.ID, err)
		return nil, err
	}

	if err := ms.repo.Save(mission); err != nil {
		return nil, err
	}

	score := float64(mission.CreatedAt.UnixNano())
	if err := ms.queue.Enqueue(ctx, ms.queueKey(), score, mission.ID.String()); err != nil {
		ms.logger.Printf("%s[ERROR]%s enqueueing mission %s: %s", config.LogErrorColor, config.LogColorReset, mission.ID, err)
		_ = mission.Transition(domain.StatusFailed, err)
		_ = ms.repo.Save(mission)
		return nil, err
	}

	ms.logger.Printf("%s[INFO]%s queued mission %s with %d commands", config.LogInfoColor, config.LogColorReset, mission.ID, len(mission.Commands))
	return mission, nil
}

// ByID returns a stored mission.
func (ms *MissionService) ByID(id uuid.UUID) (*domain.Mission, error) {
	return ms.repo.ByID(id)
}

// Run executes queued missions until ctx is done.
func (ms *MissionService) Run(ctx context.Context) error {
	ticker := time.NewTicker(ms.opts.PollInterval)
	defer ticker.Stop()

	for {
		for {
			dispatched, err := ms.RunNext(ctx)
			if err != nil {
				ms.logger.Printf("%s[ERROR]%s running mission: %s", config.LogErrorColor, config.LogColorReset, err)
			}
			if !dispatched || ctx.Err() != nil {
				break
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunNext pops the oldest queued mission and executes it. It reports
// whether a mission was taken off the queue.
func (ms *MissionService) RunNext(ctx context.Context) (bool, error) {
	members, err := ms.queue.DequeTops(ctx, ms.queueKey(), 1)
	if err != nil {
		return false, err
	}
	if len(members) == 0 {
		return false, nil
	}

	id, err := uuid.Parse(members[0])
	if err != nil {
		ms.logger.Printf("%s[WARN]%s non-UUID value in mission queue: %s", config.LogWarnColor, config.LogColorReset, members[0])
		return true, nil
	}

	mission, err := ms.repo.ByID(id)
	if err != nil {
		return true, fmt.Errorf("loading mission %s: %w", id, err)
	}

	// Registered before the mission is visible as running so a Stop that
	// sees it running always lands.
	runCtx, cancel := context.WithCancel(ctx)
	ms.Lock()
	ms.cancelRun = cancel
	ms.Unlock()
	defer func() {
		ms.Lock()
		ms.cancelRun = nil
		ms.Unlock()
		cancel()
	}()

	if err := mission.Transition(domain.StatusRunning, nil); err != nil {
		return true, err
	}
	if err := ms.repo.Save(mission); err != nil {
		return true, err
	}

	ms.logger.Printf("%s[INFO]%s running mission %s", config.LogInfoColor, config.LogColorReset, mission.ID)
	executed, runErr := ms.dispatcher.Dispatch(runCtx, mission.Commands)
	mission.Executed = executed

	status := domain.StatusCompleted
	if runErr != nil {
		status = domain.StatusFailed
		if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
			status = domain.StatusAborted
		}
		// Stop must reach the vehicle even when ctx is already cancelled.
		if err := ms.halt(context.Background()); err != nil {
			ms.logger.Printf("%s[ERROR]%s stopping vehicle after mission %s: %s", config.LogErrorColor, config.LogColorReset, mission.ID, err)
		}
	}

	if err := mission.Transition(status, runErr); err != nil {
		return true, err
	}
	if err := ms.repo.Save(mission); err != nil {
		return true, err
	}

	ms.logger.Printf("%s[INFO]%s mission %s %s after %d/%d commands", config.LogInfoColor, config.LogColorReset, mission.ID, status, executed, len(mission.Commands))
	return true, nil
}

// Stop aborts the running mission, if any, and sends an immediate Stop to
// the vehicle.
func (ms *MissionService) Stop(ctx context.Context) error {
	ms.Lock()
	cancel := ms.cancelRun
	ms.Unlock()
	if cancel != nil {
		cancel()
	}
	return ms.halt(ctx)
}

func (ms *MissionService) halt(ctx context.Context) error {
	return ms.executor.Execute(ctx, nav.StopCommand(ms.navConfig))
}

func (ms *MissionService) plan(m *domain.Mission) (Plan, error) {
	if m.Mode == domain.ModeDirect {
		return PlanDirectRoute(m.From, m.To, ms.navConfig)
	}
	return PlanGridRoute(m.Grid, m.Start, m.Goal, ms.navConfig)
}

func (ms *MissionService) queueKey() string {
	return fmt.Sprintf(missionQueueKeyFmt, ms.opts.Prefix, ms.opts.Vehicle)
}
