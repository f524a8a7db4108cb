package nav

import (
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-nav/maze"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(row, col int) maze.CellPosition {
	return maze.CellPosition{Row: row, Col: col}
}

func kinds(commands []MotionCommand) []Kind {
	out := make([]Kind, 0, len(commands))
	for _, c := range commands {
		out = append(out, c.Kind)
	}
	return out
}

func TestSequence(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("empty and single cell paths", func(t *testing.T) {
		for _, p := range []maze.Path{nil, {}, {pos(3, 3)}} {
			commands, err := Sequence(p, cfg)
			require.NoError(t, err)
			assert.Empty(t, commands)
		}
	})

	t.Run("straight south is two forwards", func(t *testing.T) {
		commands, err := Sequence(maze.Path{pos(0, 0), pos(1, 0), pos(2, 0)}, cfg)
		require.NoError(t, err)
		assert.Equal(t, []Kind{Forward, Forward}, kinds(commands))
		for _, c := range commands {
			assert.Equal(t, cfg.MoveTime, c.Duration)
			assert.Equal(t, cfg.LinearSpeed, c.LinearSpeed)
			assert.Equal(t, cfg.AngularSpeed, c.AngularSpeed)
		}
	})

	t.Run("south then east turns right", func(t *testing.T) {
		commands, err := Sequence(maze.Path{pos(0, 0), pos(1, 0), pos(1, 1)}, cfg)
		require.NoError(t, err)
		want := []MotionCommand{
			{Kind: Forward, Duration: cfg.MoveTime, LinearSpeed: cfg.LinearSpeed, AngularSpeed: cfg.AngularSpeed},
			{Kind: TurnRight, Duration: cfg.TurnTime, LinearSpeed: cfg.LinearSpeed, AngularSpeed: cfg.AngularSpeed},
			{Kind: Forward, Duration: cfg.MoveTime, LinearSpeed: cfg.LinearSpeed, AngularSpeed: cfg.AngularSpeed},
		}
		if diff := cmp.Diff(want, commands); diff != "" {
			t.Fatalf("Sequence mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("first step from undefined heading", func(t *testing.T) {
		cases := []struct {
			name string
			to   maze.CellPosition
			want []Kind
		}{
			{"south", pos(2, 1), []Kind{Forward}},
			{"north", pos(0, 1), []Kind{Back}},
			{"east", pos(1, 2), []Kind{TurnRight, Forward}},
			{"west", pos(1, 0), []Kind{TurnLeft, Forward}},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				commands, err := Sequence(maze.Path{pos(1, 1), c.to}, cfg)
				require.NoError(t, err)
				assert.Equal(t, c.want, kinds(commands))
			})
		}
	})

	t.Run("north after back keeps going forward", func(t *testing.T) {
		commands, err := Sequence(maze.Path{pos(2, 0), pos(1, 0), pos(0, 0)}, cfg)
		require.NoError(t, err)
		assert.Equal(t, []Kind{Back, Forward}, kinds(commands))
	})

	t.Run("reversal is a long right turn", func(t *testing.T) {
		cfg := cfg
		cfg.UTurnFactor = 2.5
		commands, err := Sequence(maze.Path{pos(0, 0), pos(0, 1), pos(0, 2), pos(0, 1)}, cfg)
		require.NoError(t, err)
		// revisiting a cell is not the sequencer's concern
		assert.Equal(t, []Kind{TurnRight, Forward, Forward, TurnRight, Forward}, kinds(commands))
		assert.Equal(t, 2*time.Second, commands[3].Duration)
	})

	t.Run("reference path", func(t *testing.T) {
		path := maze.Path{
			pos(0, 0), pos(1, 0), pos(2, 0), pos(2, 1), pos(2, 2),
			pos(3, 2), pos(3, 3), pos(3, 4), pos(4, 4),
		}
		commands, err := Sequence(path, cfg)
		require.NoError(t, err)
		assert.Equal(t, []Kind{
			Forward, Forward, // south, south
			TurnRight, Forward, Forward, // east, east
			TurnLeft, Forward, // south
			TurnRight, Forward, Forward, // east, east
			TurnLeft, Forward, // south
		}, kinds(commands))
	})

	t.Run("command count is turns plus steps", func(t *testing.T) {
		path := maze.Path{pos(1, 1), pos(1, 2), pos(0, 2), pos(0, 1), pos(0, 0), pos(1, 0), pos(2, 0)}
		commands, err := Sequence(path, cfg)
		require.NoError(t, err)

		turns := 0
		for _, c := range commands {
			if c.Kind.IsTurn() {
				turns++
			}
		}
		assert.Equal(t, turns+len(path)-1, len(commands))
	})

	t.Run("non adjacent step keeps earlier commands", func(t *testing.T) {
		path := maze.Path{pos(0, 0), pos(1, 0), pos(2, 1), pos(3, 1)}
		commands, err := Sequence(path, cfg)
		require.ErrorIs(t, err, ErrNonAdjacentPath)

		var nae *NonAdjacentError
		require.ErrorAs(t, err, &nae)
		assert.Equal(t, 2, nae.Step)
		assert.Equal(t, pos(1, 0), nae.From)
		assert.Equal(t, pos(2, 1), nae.To)
		assert.Equal(t, []Kind{Forward}, kinds(commands))
	})

	t.Run("repeated cell is non adjacent", func(t *testing.T) {
		commands, err := Sequence(maze.Path{pos(0, 0), pos(0, 0)}, cfg)
		assert.ErrorIs(t, err, ErrNonAdjacentPath)
		assert.Empty(t, commands)
	})

	t.Run("invalid config", func(t *testing.T) {
		bad := cfg
		bad.TurnTime = 0
		_, err := Sequence(maze.Path{pos(0, 0), pos(1, 0)}, bad)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func clockwise(h Heading) Heading {
	return map[Heading]Heading{South: East, East: North, North: West, West: South}[h]
}

func opposite(h Heading) Heading {
	return map[Heading]Heading{South: North, North: South, East: West, West: East}[h]
}

func TestTransitionTable(t *testing.T) {
	targets := []Heading{North, South, East, West}
	assert.Len(t, transitions, 20)

	for _, from := range []Heading{Undefined, North, South, East, West} {
		for _, to := range targets {
			act, ok := transitions[transition{from: from, to: to}]
			require.True(t, ok, "missing transition %s -> %s", from, to)
			if from == Undefined {
				continue
			}

			assert.Equal(t, Forward, act.move, "%s -> %s", from, to)
			switch to {
			case from:
				assert.Equal(t, noTurn, act.span, "%s -> %s", from, to)
			case opposite(from):
				assert.Equal(t, action{turn: TurnRight, span: halfTurn, move: Forward}, act, "%s -> %s", from, to)
			case clockwise(from):
				assert.Equal(t, action{turn: TurnRight, span: quarterTurn, move: Forward}, act, "%s -> %s", from, to)
			default:
				assert.Equal(t, action{turn: TurnLeft, span: quarterTurn, move: Forward}, act, "%s -> %s", from, to)
			}
		}
	}
}
