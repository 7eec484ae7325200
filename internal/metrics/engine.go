// Package metrics exports reachability and path query counters to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/udisondev/tilereach/internal/game/geo"
)

const namespace = "tilereach"

// Engine records geo engine activity. It implements geo.Recorder.
type Engine struct {
	cacheHits   prometheus.Counter
	fills       *prometheus.CounterVec
	fillSeconds prometheus.Histogram
	fillSize    prometheus.Histogram
	pathQueries *prometheus.CounterVec
}

var _ geo.Recorder = (*Engine)(nil)

// NewEngine creates the collectors and registers them with reg.
func NewEngine(reg prometheus.Registerer) (*Engine, error) {
	e := &Engine{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reach_cache_hits_total",
			Help:      "Reachable set lookups served from the tick cache.",
		}),
		fills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reach_fills_total",
			Help:      "Flood fills computed, by plane.",
		}, []string{"plane"}),
		fillSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reach_fill_seconds",
			Help:      "Flood fill duration.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
		fillSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reach_fill_tiles",
			Help:      "Tiles in each computed reachable set.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		pathQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_queries_total",
			Help:      "Path and distance queries, by outcome.",
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{e.cacheHits, e.fills, e.fillSeconds, e.fillSize, e.pathQueries} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Engine) ReachCacheHit() {
	e.cacheHits.Inc()
}

func (e *Engine) ReachFill(plane, size int, elapsed time.Duration) {
	e.fills.WithLabelValues(planeLabel(plane)).Inc()
	e.fillSeconds.Observe(elapsed.Seconds())
	e.fillSize.Observe(float64(size))
}

func (e *Engine) PathQuery(outcome string) {
	e.pathQueries.WithLabelValues(outcome).Inc()
}

func planeLabel(plane int) string {
	if plane < 0 || plane >= geo.PlaneCount {
		return "other"
	}
	return strconv.Itoa(plane)
}
