package maze

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGrid = errors.New("invalid grid: grid is absent")
	ErrRaggedGrid  = errors.New("invalid grid: rows have different lengths")
	ErrEmptyGrid   = errors.New("invalid grid: grid has no cells")
)

// Grid is a rectangular occupancy grid indexed as grid[row][col].
// 0 marks a free cell, any other value a blocked one.
type Grid [][]int

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the number of columns, taken from the first row.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// InBound reports whether pos lies inside the grid.
func (g Grid) InBound(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < g.Rows() && pos.Col >= 0 && pos.Col < g.Cols()
}

// IsFree reports whether pos is inside the grid and not blocked.
func (g Grid) IsFree(pos CellPosition) bool {
	return g.InBound(pos) && g[pos.Row][pos.Col] == Free
}

// Validate checks that the grid is present, non-empty and rectangular.
// The search itself never calls it; it is meant for validating external input.
func (g Grid) Validate() error {
	if g == nil {
		return ErrInvalidGrid
	}
	if g.Rows() == 0 || g.Cols() == 0 {
		return ErrEmptyGrid
	}
	for i, row := range g {
		if len(row) != g.Cols() {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedGrid, i, len(row), g.Cols())
		}
	}
	return nil
}

// Path is an ordered sequence of cells from start to goal.
type Path []CellPosition

// Valid reports whether every step of the path is a single orthogonal unit
// move and no cell repeats.
func (p Path) Valid() bool {
	seen := make(map[CellPosition]struct{}, len(p))
	for i, cell := range p {
		if _, dup := seen[cell]; dup {
			return false
		}
		seen[cell] = struct{}{}
		if i == 0 {
			continue
		}
		d := cell.Sub(p[i-1])
		if abs(d.Row)+abs(d.Col) != 1 {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
