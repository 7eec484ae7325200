// Package snapshot provides geo.WorldSnapshot implementations: an in-memory
// scene, a thread-affine wrapper, a tick clock and a database-backed loader.
package snapshot

import (
	"sync"
	"sync/atomic"

	"github.com/udisondev/tilereach/internal/game/geo"
)

// Memory is a mutable in-memory scene. Safe for concurrent use.
type Memory struct {
	tick  atomic.Int64
	plane atomic.Int32

	mu     sync.RWMutex
	planes map[int]planeData
}

type planeData struct {
	baseX, baseY int
	grid         *geo.Grid
}

var _ geo.WorldSnapshot = (*Memory)(nil)

// NewMemory creates an empty scene at tick 0 on plane 0.
func NewMemory() *Memory {
	return &Memory{planes: make(map[int]planeData)}
}

func (m *Memory) CurrentTick() int64 {
	return m.tick.Load()
}

func (m *Memory) ActivePlane() int {
	return int(m.plane.Load())
}

func (m *Memory) RegionBase(plane int) (int, int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.planes[plane]
	if !ok {
		return 0, 0, false
	}
	return p.baseX, p.baseY, true
}

func (m *Memory) CollisionFlags(plane int) (*geo.Grid, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.planes[plane]
	if !ok {
		return nil, false
	}
	return p.grid, true
}

// Advance increments the tick and returns the new value.
func (m *Memory) Advance() int64 {
	return m.tick.Add(1)
}

// SetTick forces the tick counter.
func (m *Memory) SetTick(tick int64) {
	m.tick.Store(tick)
}

// SetActivePlane changes the active plane.
func (m *Memory) SetActivePlane(plane int) {
	m.plane.Store(int32(plane))
}

// Load installs the collision grid of plane with its region base.
// The grid is owned by the snapshot afterwards.
func (m *Memory) Load(plane, baseX, baseY int, grid *geo.Grid) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.planes[plane] = planeData{baseX: baseX, baseY: baseY, grid: grid}
}

// Unload removes plane.
func (m *Memory) Unload(plane int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.planes, plane)
}

// Planes returns the number of loaded planes.
func (m *Memory) Planes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.planes)
}

// Reset unloads every plane and rewinds the tick (for tests).
func (m *Memory) Reset() {
	m.mu.Lock()
	m.planes = make(map[int]planeData)
	m.mu.Unlock()

	m.tick.Store(0)
	m.plane.Store(0)
}
