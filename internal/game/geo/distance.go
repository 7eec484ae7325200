package geo

// Distance2D returns the Chebyshev distance between a and b, ignoring planes.
func Distance2D(a, b Tile) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

// ManhattanDistance returns |dx| + |dy| between a and b, ignoring planes.
func ManhattanDistance(a, b Tile) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Distance returns Distance2D for tiles on the same plane and MaxDistance otherwise.
func Distance(a, b Tile) int {
	if a.Plane != b.Plane {
		return MaxDistance
	}
	return Distance2D(a, b)
}

// QuickDistance is a Chebyshev distance that folds the underground band
// (y above BandThresholdY) onto the surface before comparing.
func QuickDistance(a, b Tile) int {
	return max(abs(a.X-b.X), abs(normalizeY(a.Y)-normalizeY(b.Y)))
}

func normalizeY(y int) int {
	if y > BandThresholdY {
		return y - BandThresholdY
	}
	return y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
