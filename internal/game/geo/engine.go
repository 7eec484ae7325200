package geo

import (
	"fmt"
	"log/slog"
)

// PathEngine turns oracle routes into validated walking paths and distances.
// It does not cache.
type PathEngine struct {
	acc    *Accessor
	oracle PathOracle
	rec    Recorder
}

// NewPathEngine creates a path engine reading from snap and routing with oracle.
func NewPathEngine(snap WorldSnapshot, oracle PathOracle, opts ...Option) *PathEngine {
	o := buildOptions(opts)
	return &PathEngine{
		acc:    NewAccessor(snap),
		oracle: oracle,
		rec:    o.recorder,
	}
}

// PathTo returns the oracle's route from origin toward target, or nil if
// there is none. The route may end short of target.
func (e *PathEngine) PathTo(origin, target Tile, fullPath bool) []Tile {
	path, err := e.Resolve(origin, target, fullPath)
	e.rec.PathQuery(Outcome(err))
	if err != nil {
		slog.Debug("path query failed", "origin", origin, "target", target, "err", err)
		return nil
	}
	return path
}

// DistanceToPath returns the walking distance from origin to target along
// the oracle's checkpoint route, or MaxDistance when the route is missing or
// does not end on target.
func (e *PathEngine) DistanceToPath(origin, target Tile) int {
	dist, err := e.Measure(origin, target)
	e.rec.PathQuery(Outcome(err))
	if err != nil {
		slog.Debug("path distance unavailable", "origin", origin, "target", target, "err", err)
		return MaxDistance
	}
	return dist
}

// Resolve is PathTo with the failure reason.
func (e *PathEngine) Resolve(origin, target Tile, fullPath bool) ([]Tile, error) {
	if origin.Plane != target.Plane {
		return nil, fmt.Errorf("path %s -> %s: %w", origin, target, ErrPlaneMismatch)
	}

	view, err := e.acc.View(origin.Plane)
	if err != nil {
		return nil, fmt.Errorf("path %s -> %s: %w", origin, target, err)
	}
	from, err := view.Local(origin)
	if err != nil {
		return nil, fmt.Errorf("path origin: %w", err)
	}
	to, err := view.Local(target)
	if err != nil {
		return nil, fmt.Errorf("path target: %w", err)
	}

	route, ok := e.oracle.ShortestPath(from, to, fullPath)
	if !ok || len(route) == 0 {
		return nil, fmt.Errorf("path %s -> %s: %w", origin, target, ErrNoRoute)
	}

	path := make([]Tile, len(route))
	for i, h := range route {
		path[i] = h.WorldLocation()
	}
	return path, nil
}

// Measure is DistanceToPath with the failure reason.
func (e *PathEngine) Measure(origin, target Tile) (int, error) {
	path, err := e.Resolve(origin, target, false)
	if err != nil {
		return MaxDistance, err
	}

	last := path[len(path)-1]
	if last.X != target.X || last.Y != target.Y {
		return MaxDistance, fmt.Errorf("path %s -> %s ends at %s: %w", origin, target, last, ErrPartialRoute)
	}

	return PathLength(origin, path), nil
}

// PathLength sums Distance2D over consecutive waypoints, starting at origin.
func PathLength(origin Tile, path []Tile) int {
	total := 0
	prev := origin
	for _, p := range path {
		total += Distance2D(prev, p)
		prev = p
	}
	return total
}
