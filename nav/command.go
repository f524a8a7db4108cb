package nav

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidConfig = errors.New("invalid motion config")
	ErrUnknownKind   = errors.New("unknown motion kind")
)

// Kind is the action of a motion command.
type Kind int

const (
	Forward Kind = iota + 1
	Back
	TurnLeft
	TurnRight
	Stop
)

var kindNames = map[Kind]string{
	Forward:   "forward",
	Back:      "back",
	TurnLeft:  "turn_left",
	TurnRight: "turn_right",
	Stop:      "stop",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTurn reports whether the command rotates the vehicle in place.
func (k Kind) IsTurn() bool {
	return k == TurnLeft || k == TurnRight
}

// ParseKind converts a kind name into a Kind.
func ParseKind(value string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for k, name := range kindNames {
		if name == normalized {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, value)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MotionCommand is one atomic instruction for the vehicle.
type MotionCommand struct {
	Kind         Kind          `json:"kind" bson:"kind"`
	Duration     time.Duration `json:"duration" bson:"duration"`
	LinearSpeed  float64       `json:"linear_speed" bson:"linearSpeed"`
	AngularSpeed float64       `json:"angular_speed" bson:"angularSpeed"`
}

func (c MotionCommand) String() string {
	return fmt.Sprintf("%s for %s", c.Kind, c.Duration)
}

// TwistGain scales the configured speeds into the velocity sent to the
// vehicle.
const TwistGain = 2

// Twist returns the linear and angular velocity the vehicle should hold
// while executing the command: TwistGain times the signed speed of its kind.
func Twist(c MotionCommand) (linear, angular float64) {
	switch c.Kind {
	case Forward:
		return TwistGain * c.LinearSpeed, 0
	case Back:
		return -TwistGain * c.LinearSpeed, 0
	case TurnLeft:
		return 0, TwistGain * c.AngularSpeed
	case TurnRight:
		return 0, -TwistGain * c.AngularSpeed
	default:
		return 0, 0
	}
}

// Config holds the motion tuning shared by the sequencer and the direct
// navigator.
type Config struct {
	TurnTime     time.Duration // duration of a 90 degree turn
	MoveTime     time.Duration // duration of a one cell (or one unit) move
	SettleDelay  time.Duration // pause after every dispatched command
	LinearSpeed  float64
	AngularSpeed float64
	UTurnFactor  float64 // a 180 degree turn lasts UTurnFactor * TurnTime
}

// DefaultConfig returns the calibration of the reference vehicle.
func DefaultConfig() Config {
	return Config{
		TurnTime:     800 * time.Millisecond,
		MoveTime:     time.Second,
		SettleDelay:  500 * time.Millisecond,
		LinearSpeed:  0.5,
		AngularSpeed: 1.0,
		UTurnFactor:  2,
	}
}

// Validate checks that every emitted command will have a positive duration.
func (c Config) Validate() error {
	switch {
	case c.TurnTime <= 0:
		return fmt.Errorf("%w: turn time must be positive", ErrInvalidConfig)
	case c.MoveTime <= 0:
		return fmt.Errorf("%w: move time must be positive", ErrInvalidConfig)
	case c.SettleDelay < 0:
		return fmt.Errorf("%w: settle delay must not be negative", ErrInvalidConfig)
	case c.UTurnFactor <= 0:
		return fmt.Errorf("%w: u-turn factor must be positive", ErrInvalidConfig)
	}
	return nil
}

// StopCommand returns an immediate stop.
func StopCommand(cfg Config) MotionCommand {
	d := cfg.SettleDelay
	if d <= 0 {
		d = time.Millisecond
	}
	return MotionCommand{Kind: Stop, Duration: d}
}

func (c Config) command(kind Kind, d time.Duration) MotionCommand {
	return MotionCommand{
		Kind:         kind,
		Duration:     d,
		LinearSpeed:  c.LinearSpeed,
		AngularSpeed: c.AngularSpeed,
	}
}

func (c Config) turnDuration(s span) time.Duration {
	if s == halfTurn {
		return time.Duration(float64(c.TurnTime) * c.UTurnFactor)
	}
	return c.TurnTime
}
