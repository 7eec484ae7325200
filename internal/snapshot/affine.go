package snapshot

import (
	"context"

	"github.com/udisondev/tilereach/internal/game/geo"
)

// Affine runs every read of the wrapped snapshot on the goroutine executing
// Run. Callers block until their read completes. Once Run returns, reads
// report no data (tick 0, no planes).
//
// Grids are cloned on the owner goroutine so callers never share memory
// the owner may mutate.
type Affine struct {
	inner   geo.WorldSnapshot
	calls   chan func()
	stopped chan struct{}
}

var _ geo.WorldSnapshot = (*Affine)(nil)

// NewAffine wraps inner. Run must be started for reads to proceed.
func NewAffine(inner geo.WorldSnapshot) *Affine {
	return &Affine{
		inner:   inner,
		calls:   make(chan func()),
		stopped: make(chan struct{}),
	}
}

// Run serves reads until ctx is cancelled. It must be called once.
func (a *Affine) Run(ctx context.Context) error {
	defer close(a.stopped)

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-a.calls:
			fn()
		}
	}
}

// Do runs fn on the owner goroutine and waits for it.
// It returns false if the owner has stopped.
func (a *Affine) Do(fn func(s geo.WorldSnapshot)) bool {
	done := make(chan struct{})
	call := func() {
		defer close(done)
		fn(a.inner)
	}

	select {
	case a.calls <- call:
	case <-a.stopped:
		return false
	}
	<-done
	return true
}

func (a *Affine) CurrentTick() int64 {
	var tick int64
	a.Do(func(s geo.WorldSnapshot) { tick = s.CurrentTick() })
	return tick
}

func (a *Affine) ActivePlane() int {
	var plane int
	a.Do(func(s geo.WorldSnapshot) { plane = s.ActivePlane() })
	return plane
}

func (a *Affine) RegionBase(plane int) (int, int, bool) {
	var x, y int
	var ok bool
	a.Do(func(s geo.WorldSnapshot) { x, y, ok = s.RegionBase(plane) })
	return x, y, ok
}

func (a *Affine) CollisionFlags(plane int) (*geo.Grid, bool) {
	var grid *geo.Grid
	var ok bool
	a.Do(func(s geo.WorldSnapshot) {
		g, found := s.CollisionFlags(plane)
		if found && g != nil {
			grid, ok = g.Clone(), true
		}
	})
	return grid, ok
}
