package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testSnapshot is a minimal WorldSnapshot with one base shared by all planes.
type testSnapshot struct {
	tick         int64
	plane        int
	baseX, baseY int
	grids        map[int]*Grid
	flagReads    int
}

func (s *testSnapshot) CurrentTick() int64 { return s.tick }
func (s *testSnapshot) ActivePlane() int   { return s.plane }

func (s *testSnapshot) RegionBase(plane int) (int, int, bool) {
	if _, ok := s.grids[plane]; !ok {
		return 0, 0, false
	}
	return s.baseX, s.baseY, true
}

func (s *testSnapshot) CollisionFlags(plane int) (*Grid, bool) {
	s.flagReads++
	g, ok := s.grids[plane]
	return g, ok
}

// newTestSnapshot loads rows (north to south) as plane 0 at base (3200, 3200).
func newTestSnapshot(t *testing.T, rows ...string) *testSnapshot {
	t.Helper()
	g, err := GridFromRows(rows...)
	require.NoError(t, err)
	return &testSnapshot{
		tick:  1,
		baseX: 3200,
		baseY: 3200,
		grids: map[int]*Grid{0: g},
	}
}

// at returns the world tile for local (x, y) on plane 0 of a newTestSnapshot.
func at(x, y int) Tile {
	return Tile{X: 3200 + x, Y: 3200 + y, Plane: 0}
}

// fakeOracle returns a fixed route for any query.
type fakeOracle struct {
	route []TileHandle
	ok    bool
	calls int
	full  []bool
}

func (o *fakeOracle) ShortestPath(_, _ LocalTile, fullPath bool) ([]TileHandle, bool) {
	o.calls++
	o.full = append(o.full, fullPath)
	return o.route, o.ok
}

func handles(tiles ...Tile) []TileHandle {
	out := make([]TileHandle, len(tiles))
	for i, t := range tiles {
		out[i] = t
	}
	return out
}
