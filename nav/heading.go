package nav

import (
	"fmt"
	"strings"

	"github.com/beka-birhanu/vinom-nav/maze"
)

// Heading is the direction the vehicle is assumed to face, in grid terms.
// The zero value is Undefined: nothing has moved yet.
type Heading int

const (
	Undefined Heading = iota
	North
	South
	East
	West
)

var headingNames = map[Heading]string{
	Undefined: "undefined",
	North:     "north",
	South:     "south",
	East:      "east",
	West:      "west",
}

func (h Heading) String() string {
	if name, ok := headingNames[h]; ok {
		return name
	}
	return fmt.Sprintf("Heading(%d)", int(h))
}

// MarshalText implements encoding.TextMarshaler.
func (h Heading) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Heading) UnmarshalText(b []byte) error {
	normalized := strings.ToLower(strings.TrimSpace(string(b)))
	for k, name := range headingNames {
		if name == normalized {
			*h = k
			return nil
		}
	}
	return fmt.Errorf("unknown heading %q", string(b))
}

// headingOf maps a unit grid step to its cardinal heading. Rows grow to the
// South and columns grow to the East.
func headingOf(delta maze.CellPosition) (Heading, bool) {
	switch delta {
	case maze.South.Delta:
		return South, true
	case maze.North.Delta:
		return North, true
	case maze.East.Delta:
		return East, true
	case maze.West.Delta:
		return West, true
	}
	return Undefined, false
}
