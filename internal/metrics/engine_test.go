package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tilereach/internal/game/geo"
	"github.com/udisondev/tilereach/internal/snapshot"
	tu "github.com/udisondev/tilereach/internal/testutil"
)

func TestEngineRecordsReachActivity(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewEngine(reg)
	require.NoError(t, err)

	scene := snapshot.NewMemory()
	scene.Load(0, 3200, 3200, tu.Grid(t, "...", "..."))
	scene.SetTick(1)

	e := geo.NewReachEngine(scene, geo.WithRecorder(m))
	e.ReachableTiles(geo.Tile{X: 3200, Y: 3200})
	e.ReachableTiles(geo.Tile{X: 3200, Y: 3200})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fills.WithLabelValues("0")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.fillSeconds))
}

func TestEngineRecordsPathOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewEngine(reg)
	require.NoError(t, err)

	scene := snapshot.NewMemory()
	scene.Load(0, 3200, 3200, tu.Grid(t, "...."))
	scene.SetTick(1)

	origin, target := geo.Tile{X: 3200, Y: 3200}, geo.Tile{X: 3203, Y: 3200}
	oracle := &tu.ScriptedOracle{Route: []geo.Tile{origin, target}, OK: true}
	e := geo.NewPathEngine(scene, oracle, geo.WithRecorder(m))

	assert.Equal(t, 3, e.DistanceToPath(origin, target))
	e.PathTo(origin, geo.Tile{X: 3200, Y: 3200, Plane: 1}, true)
	oracle.OK = false
	e.DistanceToPath(origin, target)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.pathQueries.WithLabelValues(geo.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pathQueries.WithLabelValues(geo.OutcomePlaneMismatch)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pathQueries.WithLabelValues(geo.OutcomeNoRoute)))
	assert.Equal(t, 2, oracle.Calls())
}

func TestNewEngineDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewEngine(reg)
	require.NoError(t, err)

	_, err = NewEngine(reg)
	assert.Error(t, err)
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewEngine(reg)
	require.NoError(t, err)
	m.PathQuery(geo.OutcomeOK)
	m.ReachFill(7, 10, time.Millisecond)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tilereach_path_queries_total{outcome="ok"} 1`)
	assert.Contains(t, string(body), `tilereach_reach_fills_total{plane="other"} 1`)
}
