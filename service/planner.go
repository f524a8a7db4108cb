package service

import (
	"errors"

	"github.com/beka-birhanu/vinom-nav/maze"
	"github.com/beka-birhanu/vinom-nav/nav"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ErrUnreachable     = errors.New("goal is unreachable from start")
	ErrExecutorFailure = errors.New("motion executor failed")
)

// Plan is a route and the commands that drive it.
type Plan struct {
	Path     maze.Path
	Commands []nav.MotionCommand
}

// PlanGridRoute searches the grid and sequences the resulting path.
//
// An unreachable goal yields ErrUnreachable with an empty path. A
// NonAdjacentPath error comes back with the commands produced so far.
func PlanGridRoute(grid maze.Grid, start, goal maze.CellPosition, cfg nav.Config) (Plan, error) {
	path, err := maze.FindPath(grid, start, goal)
	if err != nil {
		return Plan{}, err
	}
	if len(path) == 0 {
		return Plan{Path: path, Commands: []nav.MotionCommand{}}, ErrUnreachable
	}

	commands, err := nav.Sequence(path, cfg)
	return Plan{Path: path, Commands: commands}, err
}

// PlanDirectRoute plans a straight line route.
func PlanDirectRoute(from, to r2.Vec, cfg nav.Config) (Plan, error) {
	commands, err := nav.DirectRoute(from, to, cfg)
	if err != nil {
		return Plan{}, err
	}
	return Plan{Commands: commands}, nil
}
