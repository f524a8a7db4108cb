// Package navigation exposes route planning and mission control over HTTP.
package navigation

import (
	"time"

	"github.com/beka-birhanu/vinom-nav/domain"
	"github.com/beka-birhanu/vinom-nav/maze"
	"github.com/beka-birhanu/vinom-nav/nav"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a continuous 2D position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func pointOf(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// PathRequest asks for a grid route.
type PathRequest struct {
	Grid  maze.Grid         `json:"grid"`
	Start maze.CellPosition `json:"start"`
	Goal  maze.CellPosition `json:"goal"`
}

// PathResponse carries a found route. An empty path means unreachable.
type PathResponse struct {
	Path  maze.Path `json:"path"`
	Found bool      `json:"found"`
}

// CommandsRequest asks for the commands that drive a path.
type CommandsRequest struct {
	Path maze.Path `json:"path" binding:"required"`
}

// CommandsResponse carries a command sequence.
type CommandsResponse struct {
	Commands        []nav.MotionCommand `json:"commands"`
	TotalDurationMs int64               `json:"total_duration_ms"`
}

// DirectRequest asks for a straight line route.
type DirectRequest struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// DirectResponse carries a straight line route.
type DirectResponse struct {
	Bearing  float64             `json:"bearing"`
	Heading  nav.Heading         `json:"heading"`
	Distance float64             `json:"distance"`
	Commands []nav.MotionCommand `json:"commands"`
}

// RandomGridResponse carries a generated maze and a start and goal at two
// opposite corners.
type RandomGridResponse struct {
	Grid  maze.Grid         `json:"grid"`
	Start maze.CellPosition `json:"start"`
	Goal  maze.CellPosition `json:"goal"`
}

// MissionRequest submits a mission.
type MissionRequest struct {
	Mode  domain.MissionMode `json:"mode" binding:"required,oneof=grid direct"`
	Grid  maze.Grid          `json:"grid"`
	Start maze.CellPosition  `json:"start"`
	Goal  maze.CellPosition  `json:"goal"`
	From  Point              `json:"from"`
	To    Point              `json:"to"`
}

// MissionResponse describes a mission.
type MissionResponse struct {
	ID        uuid.UUID            `json:"id"`
	Mode      domain.MissionMode   `json:"mode"`
	Status    domain.MissionStatus `json:"status"`
	Start     maze.CellPosition    `json:"start"`
	Goal      maze.CellPosition    `json:"goal"`
	From      Point                `json:"from"`
	To        Point                `json:"to"`
	Path      maze.Path            `json:"path"`
	Commands  []nav.MotionCommand  `json:"commands"`
	Executed  int                  `json:"executed"`
	Error     string               `json:"error,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func missionResponse(m *domain.Mission) *MissionResponse {
	return &MissionResponse{
		ID:        m.ID,
		Mode:      m.Mode,
		Status:    m.Status,
		Start:     m.Start,
		Goal:      m.Goal,
		From:      pointOf(m.From),
		To:        pointOf(m.To),
		Path:      m.Path,
		Commands:  m.Commands,
		Executed:  m.Executed,
		Error:     m.Error,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func totalDuration(commands []nav.MotionCommand) time.Duration {
	var total time.Duration
	for _, c := range commands {
		total += c.Duration
	}
	return total
}
