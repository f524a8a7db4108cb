// Package domain holds the mission model shared by the service, storage and
// API layers.
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-nav/maze"
	"github.com/beka-birhanu/vinom-nav/nav"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// MissionMode selects how a mission is planned.
type MissionMode string

const (
	ModeGrid   MissionMode = "grid"
	ModeDirect MissionMode = "direct"
)

// MissionStatus is the lifecycle state of a mission.
type MissionStatus string

const (
	StatusQueued    MissionStatus = "queued"
	StatusRunning   MissionStatus = "running"
	StatusCompleted MissionStatus = "completed"
	StatusAborted   MissionStatus = "aborted"
	StatusFailed    MissionStatus = "failed"
)

var (
	ErrUnknownMode   = errors.New("unknown mission mode")
	ErrMissingGrid   = errors.New("grid mission requires a grid")
	ErrNotFinishable = errors.New("mission is already finished")
	ErrNotFound      = errors.New("mission not found")
)

// Mission is a planned route and its execution record.
type Mission struct {
	ID     uuid.UUID     `bson:"_id" json:"id"`
	Mode   MissionMode   `bson:"mode" json:"mode"`
	Status MissionStatus `bson:"status" json:"status"`

	Grid  maze.Grid         `bson:"grid,omitempty" json:"grid,omitempty"`
	Start maze.CellPosition `bson:"start" json:"start"`
	Goal  maze.CellPosition `bson:"goal" json:"goal"`

	From r2.Vec `bson:"from" json:"from"`
	To   r2.Vec `bson:"to" json:"to"`

	Path     maze.Path           `bson:"path" json:"path"`
	Commands []nav.MotionCommand `bson:"commands" json:"commands"`
	Executed int                 `bson:"executed" json:"executed"`
	Error    string              `bson:"error,omitempty" json:"error,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// MissionConfig holds the parameters of a new mission.
type MissionConfig struct {
	Mode  MissionMode
	Grid  maze.Grid
	Start maze.CellPosition
	Goal  maze.CellPosition
	From  r2.Vec
	To    r2.Vec
}

// NewMission validates the configuration and returns a queued mission with
// a fresh ID. Planning is left to the caller.
func NewMission(config MissionConfig) (*Mission, error) {
	switch config.Mode {
	case ModeGrid:
		if config.Grid == nil {
			return nil, ErrMissingGrid
		}
	case ModeDirect:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, config.Mode)
	}

	now := time.Now().UTC()
	return &Mission{
		ID:        uuid.New(),
		Mode:      config.Mode,
		Status:    StatusQueued,
		Grid:      config.Grid,
		Start:     config.Start,
		Goal:      config.Goal,
		From:      config.From,
		To:        config.To,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Finished reports whether the mission reached a terminal status.
func (m *Mission) Finished() bool {
	switch m.Status {
	case StatusCompleted, StatusAborted, StatusFailed:
		return true
	}
	return false
}

// Transition moves the mission to status and records err, if any.
func (m *Mission) Transition(status MissionStatus, err error) error {
	if m.Finished() {
		return fmt.Errorf("%w: %s is %s", ErrNotFinishable, m.ID, m.Status)
	}
	m.Status = status
	if err != nil {
		m.Error = err.Error()
	}
	m.UpdatedAt = time.Now().UTC()
	return nil
}
