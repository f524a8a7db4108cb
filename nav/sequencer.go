package nav

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-nav/maze"
)

var ErrNonAdjacentPath = errors.New("path contains non-adjacent cells")

// NonAdjacentError reports the first step of a path that is not a single
// orthogonal unit move.
type NonAdjacentError struct {
	Step int // index of To in the path
	From maze.CellPosition
	To   maze.CellPosition
}

func (e *NonAdjacentError) Error() string {
	return fmt.Sprintf("%s: step %d from %s to %s", ErrNonAdjacentPath, e.Step, e.From, e.To)
}

func (e *NonAdjacentError) Unwrap() error {
	return ErrNonAdjacentPath
}

// span is how far a turn rotates the vehicle.
type span int

const (
	noTurn span = iota
	quarterTurn
	halfTurn
)

type transition struct {
	from Heading
	to   Heading
}

// action is what the vehicle does for one grid step: an optional turn, then
// a translation.
type action struct {
	turn Kind
	span span
	move Kind
}

// transitions maps (current heading, step direction) to the vehicle action.
// The vehicle's forward axis starts out along grid South. Clockwise order is
// South, East, North, West.
var transitions = map[transition]action{
	{Undefined, South}: {move: Forward},
	{Undefined, North}: {move: Back},
	{Undefined, East}:  {turn: TurnRight, span: quarterTurn, move: Forward},
	{Undefined, West}:  {turn: TurnLeft, span: quarterTurn, move: Forward},

	{South, South}: {move: Forward},
	{South, East}:  {turn: TurnRight, span: quarterTurn, move: Forward},
	{South, North}: {turn: TurnRight, span: halfTurn, move: Forward},
	{South, West}:  {turn: TurnLeft, span: quarterTurn, move: Forward},

	{East, East}:  {move: Forward},
	{East, North}: {turn: TurnRight, span: quarterTurn, move: Forward},
	{East, West}:  {turn: TurnRight, span: halfTurn, move: Forward},
	{East, South}: {turn: TurnLeft, span: quarterTurn, move: Forward},

	{North, North}: {move: Forward},
	{North, West}:  {turn: TurnRight, span: quarterTurn, move: Forward},
	{North, South}: {turn: TurnRight, span: halfTurn, move: Forward},
	{North, East}:  {turn: TurnLeft, span: quarterTurn, move: Forward},

	{West, West}:  {move: Forward},
	{West, South}: {turn: TurnRight, span: quarterTurn, move: Forward},
	{West, East}:  {turn: TurnRight, span: halfTurn, move: Forward},
	{West, North}: {turn: TurnLeft, span: quarterTurn, move: Forward},
}

// Sequence translates a grid path into motion commands, starting from an
// Undefined heading. A path of at most one cell yields no commands.
//
// When a step is not a unit orthogonal move, Sequence returns the commands
// produced for the earlier steps together with a *NonAdjacentError.
func Sequence(path maze.Path, cfg Config) ([]MotionCommand, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	commands := make([]MotionCommand, 0, 2*len(path))
	heading := Undefined
	for i := 1; i < len(path); i++ {
		target, ok := headingOf(path[i].Sub(path[i-1]))
		if !ok {
			return commands, &NonAdjacentError{Step: i, From: path[i-1], To: path[i]}
		}

		act := transitions[transition{from: heading, to: target}]
		if act.span != noTurn {
			commands = append(commands, cfg.command(act.turn, cfg.turnDuration(act.span)))
		}
		commands = append(commands, cfg.command(act.move, cfg.MoveTime))
		heading = target
	}

	return commands, nil
}
