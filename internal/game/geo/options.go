package geo

import (
	"errors"
	"time"
)

// Recorder receives engine events. internal/metrics provides the Prometheus one.
type Recorder interface {
	ReachCacheHit()
	ReachFill(plane, size int, elapsed time.Duration)
	PathQuery(outcome string)
}

type noopRecorder struct{}

func (noopRecorder) ReachCacheHit()                    {}
func (noopRecorder) ReachFill(int, int, time.Duration) {}
func (noopRecorder) PathQuery(string)                  {}

// Path query outcomes reported to the Recorder.
const (
	OutcomeOK                  = "ok"
	OutcomeSnapshotUnavailable = "snapshot_unavailable"
	OutcomeOutOfRegion         = "out_of_region"
	OutcomePlaneMismatch       = "plane_mismatch"
	OutcomeNoRoute             = "no_route"
	OutcomePartialRoute        = "partial_route"
)

// Outcome classifies a path query error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrSnapshotUnavailable):
		return OutcomeSnapshotUnavailable
	case errors.Is(err, ErrOutOfRegion):
		return OutcomeOutOfRegion
	case errors.Is(err, ErrPlaneMismatch):
		return OutcomePlaneMismatch
	case errors.Is(err, ErrPartialRoute):
		return OutcomePartialRoute
	default:
		return OutcomeNoRoute
	}
}

type options struct {
	codec          Codec
	recorder       Recorder
	maxSearchTiles int
}

// Option configures an engine.
type Option func(*options)

// WithCodec overrides the packed key codec.
func WithCodec(c Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithRecorder installs an event recorder.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithMaxSearchTiles bounds how many tiles the grid oracle may expand.
func WithMaxSearchTiles(n int) Option {
	return func(o *options) { o.maxSearchTiles = n }
}

func buildOptions(opts []Option) options {
	o := options{
		codec:          PointCodec{},
		recorder:       noopRecorder{},
		maxSearchTiles: DefaultMaxSearchTiles,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.codec == nil {
		o.codec = PointCodec{}
	}
	if o.recorder == nil {
		o.recorder = noopRecorder{}
	}
	if o.maxSearchTiles <= 0 {
		o.maxSearchTiles = DefaultMaxSearchTiles
	}
	return o
}
