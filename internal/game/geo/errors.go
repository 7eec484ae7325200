package geo

import "errors"

// Recoverable query conditions. Engine operations translate them into empty
// sets, nil paths or MaxDistance; they are only surfaced by Resolve-style calls.
var (
	ErrSnapshotUnavailable = errors.New("collision snapshot unavailable")
	ErrOutOfRegion         = errors.New("tile outside loaded region")
	ErrPlaneMismatch       = errors.New("tiles on different planes")
	ErrNoRoute             = errors.New("no route found")
	ErrPartialRoute        = errors.New("route does not reach target")
)
