package maze

import "fmt"

// Cell states of an occupancy grid. Any non-zero value is treated as Blocked.
const (
	Free    = 0
	Blocked = 1
)

// CellPosition represents the position of a cell in the grid.
type CellPosition struct {
	Row int `json:"row" bson:"row"` // Row index of the cell
	Col int `json:"col" bson:"col"` // Column index of the cell
}

// Add returns the position shifted by delta.
func (cp CellPosition) Add(delta CellPosition) CellPosition {
	return CellPosition{Row: cp.Row + delta.Row, Col: cp.Col + delta.Col}
}

// Sub returns the (row, col) delta from other to cp.
func (cp CellPosition) Sub(other CellPosition) CellPosition {
	return CellPosition{Row: cp.Row - other.Row, Col: cp.Col - other.Col}
}

func (cp CellPosition) String() string {
	return fmt.Sprintf("(%d,%d)", cp.Row, cp.Col)
}

// wallCell is a cell of a wall maze, used while generating random grids.
type wallCell struct {
	northWall bool
	southWall bool
	eastWall  bool
	westWall  bool
}
