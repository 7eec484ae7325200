package geo

import "fmt"

// WorldSnapshot is the live game state the engines read from.
// Implementations own the data and may replace it between calls.
type WorldSnapshot interface {
	// CurrentTick returns the monotonically increasing game tick.
	CurrentTick() int64
	// ActivePlane returns the plane the local player is on.
	ActivePlane() int
	// RegionBase returns the world position of local (0, 0) for plane.
	RegionBase(plane int) (baseX, baseY int, ok bool)
	// CollisionFlags returns the collision grid of plane, false if not loaded.
	CollisionFlags(plane int) (*Grid, bool)
}

// direction is a single cardinal step and the source-tile bit that forbids it.
type direction struct {
	dx, dy int
	block  Flag
}

// Flood fill expansion order. Changing it changes traversal order, never the result.
var cardinals = [4]direction{
	{0, -1, BlockMovementSouth},
	{0, 1, BlockMovementNorth},
	{-1, 0, BlockMovementWest},
	{1, 0, BlockMovementEast},
}

// Accessor resolves read-only collision views from a snapshot.
type Accessor struct {
	snap WorldSnapshot
}

// NewAccessor wraps snap.
func NewAccessor(snap WorldSnapshot) *Accessor {
	return &Accessor{snap: snap}
}

// Tick returns the snapshot's current tick, or 0 without a snapshot.
func (a *Accessor) Tick() int64 {
	if a.snap == nil {
		return 0
	}
	return a.snap.CurrentTick()
}

// ActivePlane returns the snapshot's active plane, or 0 without a snapshot.
func (a *Accessor) ActivePlane() int {
	if a.snap == nil {
		return 0
	}
	return a.snap.ActivePlane()
}

// View returns the collision view of plane.
// The view must not outlive the query it was resolved for.
func (a *Accessor) View(plane int) (*View, error) {
	if a.snap == nil {
		return nil, ErrSnapshotUnavailable
	}
	baseX, baseY, ok := a.snap.RegionBase(plane)
	if !ok {
		return nil, fmt.Errorf("plane %d base: %w", plane, ErrSnapshotUnavailable)
	}
	grid, ok := a.snap.CollisionFlags(plane)
	if !ok || grid == nil {
		return nil, fmt.Errorf("plane %d flags: %w", plane, ErrSnapshotUnavailable)
	}
	return &View{plane: plane, baseX: baseX, baseY: baseY, grid: grid}, nil
}

// View is one plane of the loaded scene.
type View struct {
	plane        int
	baseX, baseY int
	grid         *Grid
}

// NewView builds a view directly, bypassing a snapshot.
func NewView(plane, baseX, baseY int, grid *Grid) *View {
	return &View{plane: plane, baseX: baseX, baseY: baseY, grid: grid}
}

// Plane returns the view's plane.
func (v *View) Plane() int { return v.plane }

// Base returns the world position of local (0, 0).
func (v *View) Base() (int, int) { return v.baseX, v.baseY }

// Flags returns the flags at local (x, y). Out-of-bounds cells read as fully blocked.
func (v *View) Flags(x, y int) Flag {
	if !InBounds(x, y) {
		return BlockMovementFull
	}
	return v.grid.At(x, y)
}

// World converts local (x, y) to a world tile.
func (v *View) World(x, y int) Tile {
	return Tile{X: x + v.baseX, Y: y + v.baseY, Plane: v.plane}
}

// Local resolves t to a local tile handle.
func (v *View) Local(t Tile) (LocalTile, error) {
	if t.Plane != v.plane {
		return LocalTile{}, fmt.Errorf("tile %s on view plane %d: %w", t, v.plane, ErrPlaneMismatch)
	}
	x, y := t.X-v.baseX, t.Y-v.baseY
	if !InBounds(x, y) {
		return LocalTile{}, fmt.Errorf("tile %s local (%d, %d): %w", t, x, y, ErrOutOfRegion)
	}
	return LocalTile{X: x, Y: y, view: v}, nil
}

// canStep reports whether the cardinal move d from local (x, y) is legal:
// the destination is in bounds, the source does not block d and the
// destination is not fully blocked.
func (v *View) canStep(x, y int, d direction) bool {
	nx, ny := x+d.dx, y+d.dy
	if !InBounds(nx, ny) {
		return false
	}
	if v.grid.At(x, y).Has(d.block) {
		return false
	}
	return !v.grid.At(nx, ny).Has(BlockMovementFull)
}

// CanMove reports whether a single cardinal step (dx, dy) from local (x, y) is legal.
func (v *View) CanMove(x, y, dx, dy int) bool {
	for _, d := range cardinals {
		if d.dx == dx && d.dy == dy {
			return InBounds(x, y) && v.canStep(x, y, d)
		}
	}
	return false
}

// TileHandle is a tile as returned by a path oracle.
type TileHandle interface {
	WorldLocation() Tile
}

// LocalTile is a tile resolved against a View.
type LocalTile struct {
	X, Y int
	view *View
}

// WorldLocation returns the world tile.
func (l LocalTile) WorldLocation() Tile {
	return l.view.World(l.X, l.Y)
}

// View returns the view l was resolved against.
func (l LocalTile) View() *View {
	return l.view
}
