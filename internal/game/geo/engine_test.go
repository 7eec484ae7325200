package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceToPathNoRoute(t *testing.T) {
	snap := newTestSnapshot(t, ".....")
	oracle := &fakeOracle{}
	e := NewPathEngine(snap, oracle)

	assert.Equal(t, MaxDistance, e.DistanceToPath(at(0, 0), at(4, 0)))
	assert.Nil(t, e.PathTo(at(0, 0), at(4, 0), true))
	assert.Equal(t, 2, oracle.calls)
}

func TestDistanceToPathPartialRoute(t *testing.T) {
	snap := newTestSnapshot(t, ".....")
	oracle := &fakeOracle{route: handles(at(0, 0), at(2, 0)), ok: true}
	e := NewPathEngine(snap, oracle)

	assert.Equal(t, MaxDistance, e.DistanceToPath(at(0, 0), at(4, 0)))

	// PathTo hands the partial route back untouched.
	assert.Equal(t, []Tile{at(0, 0), at(2, 0)}, e.PathTo(at(0, 0), at(4, 0), false))

	_, err := e.Measure(at(0, 0), at(4, 0))
	assert.ErrorIs(t, err, ErrPartialRoute)
}

func TestDistanceToPathSummation(t *testing.T) {
	snap := newTestSnapshot(t, ".....", ".....", ".....")
	p0, p1, p2 := at(0, 0), at(3, 0), at(3, 2)
	oracle := &fakeOracle{route: handles(p0, p1, p2), ok: true}
	e := NewPathEngine(snap, oracle)

	assert.Equal(t, 5, e.DistanceToPath(p0, p2))
	assert.Equal(t, []bool{false}, oracle.full, "distance uses checkpoint mode")
}

func TestDistanceToPathIgnoresPlaneInMetric(t *testing.T) {
	// Final waypoint is compared on (x, y) only.
	snap := newTestSnapshot(t, "...")
	target := at(2, 0)
	oracle := &fakeOracle{route: handles(at(0, 0), Tile{X: target.X, Y: target.Y, Plane: 3}), ok: true}
	e := NewPathEngine(snap, oracle)

	assert.Equal(t, 2, e.DistanceToPath(at(0, 0), target))
}

func TestPathToPlaneMismatch(t *testing.T) {
	snap := newTestSnapshot(t, "...")
	oracle := &fakeOracle{route: handles(at(0, 0)), ok: true}
	e := NewPathEngine(snap, oracle)
	upstairs := Tile{X: 3201, Y: 3200, Plane: 1}

	assert.Nil(t, e.PathTo(at(0, 0), upstairs, true))
	assert.Equal(t, MaxDistance, e.DistanceToPath(at(0, 0), upstairs))
	assert.Zero(t, oracle.calls)

	_, err := e.Resolve(at(0, 0), upstairs, true)
	assert.ErrorIs(t, err, ErrPlaneMismatch)
}

func TestPathToOutOfRegion(t *testing.T) {
	snap := newTestSnapshot(t, "...")
	oracle := &fakeOracle{route: handles(at(0, 0)), ok: true}
	e := NewPathEngine(snap, oracle)

	far := Tile{X: 3200 + RegionSize + 5, Y: 3200}
	assert.Nil(t, e.PathTo(at(0, 0), far, true))
	assert.Nil(t, e.PathTo(far, at(0, 0), true))
	assert.Zero(t, oracle.calls)

	_, err := e.Resolve(at(0, 0), far, false)
	assert.ErrorIs(t, err, ErrOutOfRegion)
}

func TestPathToSnapshotUnavailable(t *testing.T) {
	snap := newTestSnapshot(t, "...")
	oracle := &fakeOracle{route: handles(at(0, 0)), ok: true}
	e := NewPathEngine(snap, oracle)
	a, b := Tile{X: 3200, Y: 3200, Plane: 2}, Tile{X: 3201, Y: 3200, Plane: 2}

	assert.Equal(t, MaxDistance, e.DistanceToPath(a, b))

	_, err := e.Resolve(a, b, false)
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)
}

func TestPathEngineWithGridOracle(t *testing.T) {
	snap := newTestSnapshot(t,
		".......",
		".#####.",
		".#...#.",
		".#.#.#.",
		".....#.",
	)
	e := NewPathEngine(snap, NewGridOracle())

	// From inside the enclosure out and round to the far side.
	origin, target := at(2, 2), at(6, 0)
	path := e.PathTo(origin, target, true)
	require.NotEmpty(t, path)
	assert.Equal(t, origin, path[0])
	assert.Equal(t, target, path[len(path)-1])

	for i := 1; i < len(path); i++ {
		assert.Equal(t, 1, Distance2D(path[i-1], path[i]), "full path moves one tile at a time")
	}

	dist := e.DistanceToPath(origin, target)
	assert.Equal(t, len(path)-1, dist, "checkpoint distance equals step count")
	assert.Greater(t, dist, Distance2D(origin, target), "walls lengthen the walk")

	// (3, 1) is blocked and diagonals may not clip it, so the walk takes four steps.
	assert.Equal(t, 4, e.DistanceToPath(at(2, 1), at(4, 1)))
}

func TestPathEngineRecorder(t *testing.T) {
	snap := newTestSnapshot(t, "...")
	rec := &countingRecorder{}
	oracle := &fakeOracle{route: handles(at(0, 0), at(1, 0)), ok: true}
	e := NewPathEngine(snap, oracle, WithRecorder(rec))

	e.DistanceToPath(at(0, 0), at(1, 0))
	e.DistanceToPath(at(0, 0), at(2, 0))
	e.PathTo(at(0, 0), Tile{X: 3200, Y: 3200, Plane: 1}, false)

	assert.Equal(t, []string{OutcomeOK, OutcomePartialRoute, OutcomePlaneMismatch}, rec.outcomes)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeOK, Outcome(nil))
	assert.Equal(t, OutcomeNoRoute, Outcome(ErrNoRoute))
	assert.Equal(t, OutcomeOutOfRegion, Outcome(ErrOutOfRegion))
	assert.Equal(t, OutcomeSnapshotUnavailable, Outcome(ErrSnapshotUnavailable))
}
