package maze

// Direction is a cardinal grid direction.
type Direction struct {
	Name  string
	Delta CellPosition
}

var (
	East  = Direction{Name: "East", Delta: CellPosition{Row: 0, Col: 1}}
	South = Direction{Name: "South", Delta: CellPosition{Row: 1, Col: 0}}
	West  = Direction{Name: "West", Delta: CellPosition{Row: 0, Col: -1}}
	North = Direction{Name: "North", Delta: CellPosition{Row: -1, Col: 0}}

	// SearchOrder is the neighbour exploration order of FindPath.
	// Changing it changes which path is returned.
	SearchOrder = [...]Direction{East, South, West, North}
)

// frame is one level of the explicit DFS stack.
type frame struct {
	cell CellPosition
	next int // index into SearchOrder of the next neighbour to try
}

// FindPath runs a depth-first search from start to goal and returns the
// first path found, which is not necessarily the shortest.
//
// The goal test runs before the validity and visited tests, so a goal cell is
// accepted even when it is blocked, and start == goal returns [start] without
// looking at the grid. An empty path with a nil error means the goal is
// unreachable. ErrInvalidGrid is returned only for a nil grid.
func FindPath(grid Grid, start, goal CellPosition) (Path, error) {
	if grid == nil {
		return nil, ErrInvalidGrid
	}

	if start == goal {
		return Path{start}, nil
	}
	if !grid.IsFree(start) {
		return Path{}, nil
	}

	visited := map[CellPosition]struct{}{start: {}}
	path := Path{start}
	stack := []frame{{cell: start}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(SearchOrder) {
			// dead end: drop it from the path but keep it visited
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]
			continue
		}

		neighbor := top.cell.Add(SearchOrder[top.next].Delta)
		top.next++

		if neighbor == goal {
			return append(path, neighbor), nil
		}
		if !grid.IsFree(neighbor) {
			continue
		}
		if _, seen := visited[neighbor]; seen {
			continue
		}

		visited[neighbor] = struct{}{}
		path = append(path, neighbor)
		stack = append(stack, frame{cell: neighbor})
	}

	return Path{}, nil
}
