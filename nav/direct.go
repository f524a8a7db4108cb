package nav

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrRouteTooLong is returned when the translation time of a direct route
// does not fit in a time.Duration.
var ErrRouteTooLong = errors.New("route too long")

// Bearing returns the angle in degrees from start to goal, measured from the
// East axis and counter-clockwise positive, in [-180, 180].
func Bearing(start, goal r2.Vec) float64 {
	d := r2.Sub(goal, start)
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

// Quadrant maps a bearing in degrees to the cardinal heading it falls in.
func Quadrant(theta float64) Heading {
	switch {
	case theta >= -45 && theta <= 45:
		return East
	case theta > 45 && theta <= 135:
		return North
	case theta > 135 || theta < -135:
		return West
	default:
		return South
	}
}

// directActions is the vehicle action for each quadrant of a direct route.
var directActions = map[Heading]action{
	East:  {turn: TurnRight, span: quarterTurn, move: Forward},
	West:  {turn: TurnLeft, span: quarterTurn, move: Forward},
	North: {move: Back},
	South: {move: Forward},
}

// DirectRoute ignores any grid and heads straight for goal: at most one turn
// and one translation whose duration is MoveTime scaled by the Euclidean
// distance.
func DirectRoute(start, goal r2.Vec, cfg Config) ([]MotionCommand, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if start == goal {
		return []MotionCommand{}, nil
	}

	distance := r2.Norm(r2.Sub(goal, start))
	act := directActions[Quadrant(Bearing(start, goal))]

	commands := make([]MotionCommand, 0, 2)
	if act.span != noTurn {
		commands = append(commands, cfg.command(act.turn, cfg.turnDuration(act.span)))
	}
	ns := float64(cfg.MoveTime) * distance
	if !(ns < math.MaxInt64) {
		return nil, fmt.Errorf("%w: %.3g units", ErrRouteTooLong, distance)
	}
	moveTime := max(time.Duration(ns), time.Nanosecond)
	commands = append(commands, cfg.command(act.move, moveTime))

	return commands, nil
}
