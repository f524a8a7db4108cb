/*
Package maze provides the occupancy grid model and the grid path search.

FindPath runs a deterministic depth-first search over a Grid. NewRandomGrid
builds demo grids from a maze generated with Wilson's algorithm, rasterised so
that every pair of maze cell centres is connected.
*/
package maze

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	maxMazeDimension = 20
)

// WillsonMaze is a rectangular wall maze used as the source of random grids.
type WillsonMaze struct {
	Width  int          // Width of the maze (number of columns)
	Height int          // Height of the maze (number of rows)
	grid   [][]wallCell // 2D grid of cells forming the maze
	rng    *rand.Rand
}

// move is a step between two adjacent maze cells.
type move struct {
	from CellPosition
	to   CellPosition
	dir  Direction
}

// NewWillsonMaze initializes a maze of the given dimensions and carves it.
// A nil rng uses a time seeded source.
func NewWillsonMaze(width, height int, rng *rand.Rand) (*WillsonMaze, error) {
	if min(width, height) <= 0 || max(width, height) > maxMazeDimension {
		return nil, fmt.Errorf("invalid maze dimensions %dx%d: each side must be in [1, %d]", width, height, maxMazeDimension)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	grid := make([][]wallCell, height)
	for i := range grid {
		grid[i] = make([]wallCell, width)
		for j := range grid[i] {
			grid[i][j] = wallCell{northWall: true, southWall: true, eastWall: true, westWall: true}
		}
	}

	m := &WillsonMaze{Width: width, Height: height, grid: grid, rng: rng}
	m.generateMaze()
	return m, nil
}

// NewRandomGrid generates a maze of width x height cells and rasterises it
// into an occupancy grid of (2*height+1) x (2*width+1).
func NewRandomGrid(width, height int, rng *rand.Rand) (Grid, error) {
	m, err := NewWillsonMaze(width, height, rng)
	if err != nil {
		return nil, err
	}
	return m.Grid(), nil
}

// CellCenter maps a maze cell to its free cell in the rasterised grid.
func CellCenter(pos CellPosition) CellPosition {
	return CellPosition{Row: 2*pos.Row + 1, Col: 2*pos.Col + 1}
}

// Grid rasterises the maze. Cell centres and opened walls are free, every
// other cell is blocked.
func (m *WillsonMaze) Grid() Grid {
	g := make(Grid, 2*m.Height+1)
	for i := range g {
		g[i] = make([]int, 2*m.Width+1)
		for j := range g[i] {
			g[i][j] = Blocked
		}
	}

	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			c := CellCenter(CellPosition{Row: row, Col: col})
			g[c.Row][c.Col] = Free
			if !m.grid[row][col].eastWall {
				g[c.Row][c.Col+1] = Free
			}
			if !m.grid[row][col].southWall {
				g[c.Row+1][c.Col] = Free
			}
		}
	}
	return g
}

func (m *WillsonMaze) inBound(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < m.Height && pos.Col >= 0 && pos.Col < m.Width
}

func (m *WillsonMaze) randomCellPosition() CellPosition {
	return CellPosition{Row: m.rng.Intn(m.Height), Col: m.rng.Intn(m.Width)}
}

func (m *WillsonMaze) randomUnvisitedCellPosition(visited map[CellPosition]struct{}) CellPosition {
	for {
		pos := m.randomCellPosition()
		if _, included := visited[pos]; !included {
			return pos
		}
	}
}

// neighbors lists every in-bound move from pos.
func (m *WillsonMaze) neighbors(pos CellPosition) []move {
	var result []move
	for _, dir := range SearchOrder {
		to := pos.Add(dir.Delta)
		if m.inBound(to) {
			result = append(result, move{from: pos, to: to, dir: dir})
		}
	}
	return result
}

// openWall removes the wall between two adjacent cells.
func (m *WillsonMaze) openWall(mv move) {
	from := &m.grid[mv.from.Row][mv.from.Col]
	to := &m.grid[mv.to.Row][mv.to.Col]
	switch mv.dir {
	case North:
		from.northWall, to.southWall = false, false
	case South:
		from.southWall, to.northWall = false, false
	case East:
		from.eastWall, to.westWall = false, false
	case West:
		from.westWall, to.eastWall = false, false
	}
}

// randomWalk walks from an unvisited cell until it hits the visited set and
// records the last exit taken from each cell. Following the recorded exits
// from any walked cell leads to the visited set without loops.
func (m *WillsonMaze) randomWalk(visited map[CellPosition]struct{}) map[CellPosition]move {
	visits := make(map[CellPosition]move)
	cell := m.randomUnvisitedCellPosition(visited)

	for {
		neighbors := m.neighbors(cell)
		next := neighbors[m.rng.Intn(len(neighbors))]
		visits[cell] = next
		if _, included := visited[next.to]; included {
			break
		}
		cell = next.to
	}

	return visits
}

func (m *WillsonMaze) generateMaze() {
	visited := map[CellPosition]struct{}{m.randomCellPosition(): {}}

	for len(visited) < m.Width*m.Height {
		for cell, mv := range m.randomWalk(visited) {
			m.openWall(mv)
			visited[cell] = struct{}{}
		}
	}
}

// String provides an ASCII rendering of the maze.
func (m *WillsonMaze) String() string {
	var output strings.Builder

	output.WriteString("+" + strings.Repeat("---+", m.Width) + "\n")
	for row := 0; row < m.Height; row++ {
		output.WriteString("|")
		for col := 0; col < m.Width; col++ {
			if m.grid[row][col].eastWall {
				output.WriteString("   |")
			} else {
				output.WriteString("    ")
			}
		}
		output.WriteString("\n+")
		for col := 0; col < m.Width; col++ {
			if m.grid[row][col].southWall {
				output.WriteString("---+")
			} else {
				output.WriteString("   +")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}
