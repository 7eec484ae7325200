package geo

// PathOracle finds a walking route between two tiles of the same view.
// The returned route starts at from and may end short of to when to is
// unreachable; ok is false when there is no route at all.
type PathOracle interface {
	ShortestPath(from, to LocalTile, fullPath bool) (route []TileHandle, ok bool)
}

// step is a move of up to one tile on each axis.
type step struct {
	dx, dy int
}

// Expansion order: cardinals first, then diagonals.
var oracleSteps = [8]step{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// GridOracle is a breadth-first PathOracle over the collision view.
// Diagonal moves are allowed only when both L-shaped cardinal detours are legal.
type GridOracle struct {
	maxSearchTiles int
}

var _ PathOracle = (*GridOracle)(nil)

// NewGridOracle creates an oracle. Only WithMaxSearchTiles applies.
func NewGridOracle(opts ...Option) *GridOracle {
	o := buildOptions(opts)
	return &GridOracle{maxSearchTiles: o.maxSearchTiles}
}

// ShortestPath returns the minimum-step route from from to to. If to cannot be
// reached the route leads to the reached tile closest to to by Chebyshev
// distance. With fullPath unset only checkpoints (direction changes) are kept.
func (o *GridOracle) ShortestPath(from, to LocalTile, fullPath bool) ([]TileHandle, bool) {
	view := from.View()
	if view == nil || to.View() != view {
		return nil, false
	}
	if from.X == to.X && from.Y == to.Y {
		return []TileHandle{from}, true
	}

	var prev [RegionCells]int32
	for i := range prev {
		prev[i] = -1
	}

	startIdx := from.X*RegionSize + from.Y
	targetIdx := to.X*RegionSize + to.Y
	prev[startIdx] = int32(startIdx)

	best := startIdx
	bestDist := max(abs(from.X-to.X), abs(from.Y-to.Y))

	queue := make([]int, 0, 512)
	queue = append(queue, startIdx)

	reached := false
	for head := 0; head < len(queue) && head < o.maxSearchTiles; head++ {
		cur := queue[head]
		x, y := cur/RegionSize, cur%RegionSize

		if cur == targetIdx {
			reached = true
			break
		}
		if d := max(abs(x-to.X), abs(y-to.Y)); d < bestDist {
			best, bestDist = cur, d
		}

		for _, s := range oracleSteps {
			nx, ny := x+s.dx, y+s.dy
			if !InBounds(nx, ny) || prev[nx*RegionSize+ny] >= 0 {
				continue
			}
			if !view.canWalk(x, y, s) {
				continue
			}
			prev[nx*RegionSize+ny] = int32(cur)
			queue = append(queue, nx*RegionSize+ny)
		}
	}

	end := best
	if reached {
		end = targetIdx
	}
	if end == startIdx {
		return nil, false
	}

	route := tracePath(view, &prev, startIdx, end)
	if !fullPath {
		route = checkpoints(route)
	}
	return route, true
}

// canWalk reports whether the single- or double-axis step s from local (x, y) is legal.
func (v *View) canWalk(x, y int, s step) bool {
	horizontal, hasH := cardinalFor(s.dx, 0)
	vertical, hasV := cardinalFor(0, s.dy)

	switch {
	case hasH && !hasV:
		return v.canStep(x, y, horizontal)
	case hasV && !hasH:
		return v.canStep(x, y, vertical)
	case hasH && hasV:
		if v.grid.At(x, y).Has(diagonalBlock(s)) {
			return false
		}
		return v.canStep(x, y, horizontal) &&
			v.canStep(x, y, vertical) &&
			v.canStep(x+s.dx, y, vertical) &&
			v.canStep(x, y+s.dy, horizontal)
	default:
		return false
	}
}

// diagonalBlock returns the source-cell bit that blocks the diagonal step s.
func diagonalBlock(s step) Flag {
	switch {
	case s.dx > 0 && s.dy > 0:
		return BlockMovementNorthEast
	case s.dx < 0 && s.dy > 0:
		return BlockMovementNorthWest
	case s.dx > 0 && s.dy < 0:
		return BlockMovementSouthEast
	default:
		return BlockMovementSouthWest
	}
}

func cardinalFor(dx, dy int) (direction, bool) {
	for _, d := range cardinals {
		if d.dx == dx && d.dy == dy {
			return d, true
		}
	}
	return direction{}, false
}

// tracePath walks predecessors back from end and returns the route from start.
func tracePath(view *View, prev *[RegionCells]int32, start, end int) []TileHandle {
	route := make([]TileHandle, 0, 32)
	for cur := end; ; cur = int(prev[cur]) {
		route = append(route, LocalTile{X: cur / RegionSize, Y: cur % RegionSize, view: view})
		if cur == start {
			break
		}
	}

	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}

// checkpoints keeps the first tile, every tile where the step direction
// changes, and the last tile.
func checkpoints(route []TileHandle) []TileHandle {
	if len(route) <= 2 {
		return route
	}

	out := make([]TileHandle, 0, len(route))
	out = append(out, route[0])
	for i := 1; i < len(route)-1; i++ {
		a, b, c := route[i-1].WorldLocation(), route[i].WorldLocation(), route[i+1].WorldLocation()
		if b.X-a.X != c.X-b.X || b.Y-a.Y != c.Y-b.Y {
			out = append(out, route[i])
		}
	}
	return append(out, route[len(route)-1])
}
