package geo

import (
	"log/slog"
	"slices"
	"time"

	"github.com/zyedidia/generic/mapset"
)

// ReachEngine computes the set of tiles reachable from an origin by legal
// cardinal steps. Results are cached for one tick and one origin.
type ReachEngine struct {
	acc   *Accessor
	codec Codec
	rec   Recorder
	cache TickCache[Tile, *ReachableSet]
}

// NewReachEngine creates a reachability engine reading from snap.
func NewReachEngine(snap WorldSnapshot, opts ...Option) *ReachEngine {
	o := buildOptions(opts)
	return &ReachEngine{
		acc:   NewAccessor(snap),
		codec: o.codec,
		rec:   o.recorder,
	}
}

// ReachableTiles returns the reachable set of origin for the current tick.
// Missing collision data or an origin outside the scene yields an empty set.
func (e *ReachEngine) ReachableTiles(origin Tile) *ReachableSet {
	tick := e.acc.Tick()
	if set, ok := e.cache.Get(tick, origin); ok {
		e.rec.ReachCacheHit()
		return set
	}

	start := time.Now()
	set := e.compute(tick, origin)
	e.rec.ReachFill(origin.Plane, set.Len(), time.Since(start))

	e.cache.Put(tick, origin, set)
	return set
}

// IsReachable reports whether target is in the reachable set of origin.
func (e *ReachEngine) IsReachable(origin, target Tile) bool {
	if origin.Plane != target.Plane {
		return false
	}
	return e.ReachableTiles(origin).Contains(target)
}

// NearestReachable returns the reachable candidate closest to origin by
// QuickDistance. Ties keep the earlier candidate.
func (e *ReachEngine) NearestReachable(origin Tile, candidates []Tile) (Tile, bool) {
	set := e.ReachableTiles(origin)

	var best Tile
	bestDist := MaxDistance
	found := false
	for _, c := range candidates {
		if !set.Contains(c) {
			continue
		}
		if d := QuickDistance(origin, c); d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}

// Invalidate drops the cached set.
func (e *ReachEngine) Invalidate() {
	e.cache.Invalidate()
}

func (e *ReachEngine) compute(tick int64, origin Tile) *ReachableSet {
	set := newReachableSet(origin, tick, e.codec)

	view, err := e.acc.View(origin.Plane)
	if err != nil {
		slog.Debug("reachable tiles: no collision data", "origin", origin, "tick", tick, "err", err)
		return set
	}
	local, err := view.Local(origin)
	if err != nil {
		slog.Debug("reachable tiles: origin outside scene", "origin", origin, "tick", tick, "err", err)
		return set
	}

	visited := floodFill(view, local.X, local.Y)
	for i, seen := range visited {
		if !seen {
			continue
		}
		set.add(view.World(i/RegionSize, i%RegionSize))
	}
	return set
}

// floodFill runs a BFS from local (sx, sy) and returns the visited mask,
// indexed like Grid cells.
func floodFill(view *View, sx, sy int) *[RegionCells]bool {
	var visited [RegionCells]bool

	// Queue entries are local coordinates packed as x<<16 | y.
	queue := make([]int32, 0, 512)
	visited[sx*RegionSize+sy] = true
	queue = append(queue, int32(sx<<16|sy))

	for head := 0; head < len(queue); head++ {
		x, y := int(queue[head]>>16), int(queue[head]&0xFFFF)
		for _, d := range cardinals {
			nx, ny := x+d.dx, y+d.dy
			if !view.canStep(x, y, d) || visited[nx*RegionSize+ny] {
				continue
			}
			visited[nx*RegionSize+ny] = true
			queue = append(queue, int32(nx<<16|ny))
		}
	}
	return &visited
}

// ReachableSet is an immutable set of packed tile keys sharing one plane.
type ReachableSet struct {
	origin Tile
	tick   int64
	codec  Codec
	keys   mapset.Set[PackedKey]
}

func newReachableSet(origin Tile, tick int64, codec Codec) *ReachableSet {
	return &ReachableSet{
		origin: origin,
		tick:   tick,
		codec:  codec,
		keys:   mapset.New[PackedKey](),
	}
}

func (s *ReachableSet) add(t Tile) {
	key := s.codec.Pack(t.X, t.Y, t.Plane)
	if key == UndefinedKey {
		return
	}
	s.keys.Put(key)
}

// Origin returns the tile the set was computed from.
func (s *ReachableSet) Origin() Tile { return s.origin }

// Tick returns the tick the set was computed on.
func (s *ReachableSet) Tick() int64 { return s.tick }

// Len returns the number of reachable tiles.
func (s *ReachableSet) Len() int { return s.keys.Size() }

// Contains reports whether t is reachable.
func (s *ReachableSet) Contains(t Tile) bool {
	if t.Plane != s.origin.Plane {
		return false
	}
	key := s.codec.Pack(t.X, t.Y, t.Plane)
	return key != UndefinedKey && s.keys.Has(key)
}

// ContainsKey reports whether the packed key is reachable.
func (s *ReachableSet) ContainsKey(key PackedKey) bool {
	return s.keys.Has(key)
}

// Keys returns the packed keys in ascending order.
func (s *ReachableSet) Keys() []PackedKey {
	keys := make([]PackedKey, 0, s.keys.Size())
	s.keys.Each(func(k PackedKey) {
		keys = append(keys, k)
	})
	slices.Sort(keys)
	return keys
}

// Tiles returns the reachable tiles ordered by packed key.
func (s *ReachableSet) Tiles() []Tile {
	keys := s.Keys()
	tiles := make([]Tile, len(keys))
	for i, k := range keys {
		x, y, plane := s.codec.Unpack(k)
		tiles[i] = Tile{X: x, Y: y, Plane: plane}
	}
	return tiles
}
