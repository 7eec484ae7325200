package testutil

import (
	"sync/atomic"
	"testing"

	"github.com/udisondev/tilereach/internal/game/geo"
)

// Grid builds a collision grid from rows listed north to south.
func Grid(tb testing.TB, rows ...string) *geo.Grid {
	tb.Helper()

	g, err := geo.GridFromRows(rows...)
	if err != nil {
		tb.Fatalf("building grid: %v", err)
	}
	return g
}

// CountingSnapshot wraps a snapshot and counts collision flag reads.
type CountingSnapshot struct {
	geo.WorldSnapshot
	reads atomic.Int64
}

// NewCountingSnapshot wraps inner.
func NewCountingSnapshot(inner geo.WorldSnapshot) *CountingSnapshot {
	return &CountingSnapshot{WorldSnapshot: inner}
}

func (s *CountingSnapshot) CollisionFlags(plane int) (*geo.Grid, bool) {
	s.reads.Add(1)
	return s.WorldSnapshot.CollisionFlags(plane)
}

// FlagReads returns the number of CollisionFlags calls so far.
func (s *CountingSnapshot) FlagReads() int {
	return int(s.reads.Load())
}

// ScriptedOracle answers every query with the same world route.
type ScriptedOracle struct {
	Route []geo.Tile
	OK    bool

	calls atomic.Int64
}

var _ geo.PathOracle = (*ScriptedOracle)(nil)

func (o *ScriptedOracle) ShortestPath(_, _ geo.LocalTile, _ bool) ([]geo.TileHandle, bool) {
	o.calls.Add(1)
	if !o.OK {
		return nil, false
	}
	out := make([]geo.TileHandle, len(o.Route))
	for i, t := range o.Route {
		out[i] = t
	}
	return out, true
}

// Calls returns the number of ShortestPath calls so far.
func (o *ScriptedOracle) Calls() int {
	return int(o.calls.Load())
}
