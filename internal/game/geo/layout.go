package geo

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Layout is a human-editable description of one plane of a region.
//
// Rows are listed north to south: the first row has the highest local y.
// '.' is an open tile, '#' is fully blocked. Tiles not covered by rows are
// fully blocked. Walls add directional blocking on top of the rows.
type Layout struct {
	RegionID int      `yaml:"region_id"`
	Plane    int      `yaml:"plane"`
	BaseX    int      `yaml:"base_x"`
	BaseY    int      `yaml:"base_y"`
	Rows     []string `yaml:"rows"`
	Walls    []Wall   `yaml:"walls"`
}

// Wall blocks movement out of local tile (X, Y) in the listed directions.
type Wall struct {
	X     int      `yaml:"x"`
	Y     int      `yaml:"y"`
	Block []string `yaml:"block"`
}

var wallFlags = map[string]Flag{
	"north":      BlockMovementNorth,
	"south":      BlockMovementSouth,
	"east":       BlockMovementEast,
	"west":       BlockMovementWest,
	"north_east": BlockMovementNorthEast,
	"north_west": BlockMovementNorthWest,
	"south_east": BlockMovementSouthEast,
	"south_west": BlockMovementSouthWest,
	"full":       BlockMovementFull,
}

// ParseLayout decodes a YAML layout.
func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parsing layout: %w", err)
	}
	if l.Plane < 0 || l.Plane >= PlaneCount {
		return Layout{}, fmt.Errorf("layout plane %d out of range", l.Plane)
	}
	return l, nil
}

// Grid builds the collision grid described by the layout.
func (l Layout) Grid() (*Grid, error) {
	g, err := GridFromRows(l.Rows...)
	if err != nil {
		return nil, err
	}

	for _, w := range l.Walls {
		if !InBounds(w.X, w.Y) {
			return nil, fmt.Errorf("wall at (%d, %d) outside region", w.X, w.Y)
		}
		for _, name := range w.Block {
			f, ok := wallFlags[name]
			if !ok {
				return nil, fmt.Errorf("wall at (%d, %d): unknown direction %q", w.X, w.Y, name)
			}
			g.Add(w.X, w.Y, f)
		}
	}
	return g, nil
}

// GridFromRows builds a grid from map rows listed north to south.
func GridFromRows(rows ...string) (*Grid, error) {
	if len(rows) > RegionSize {
		return nil, fmt.Errorf("layout has %d rows, max %d", len(rows), RegionSize)
	}

	g := NewGrid()
	for i := range g.cells {
		g.cells[i] = BlockMovementFull
	}

	for r, row := range rows {
		if len(row) > RegionSize {
			return nil, fmt.Errorf("layout row %d has %d tiles, max %d", r, len(row), RegionSize)
		}
		y := len(rows) - 1 - r
		for x, ch := range []byte(row) {
			switch ch {
			case '.':
				g.Set(x, y, 0)
			case '#':
				g.Set(x, y, BlockMovementFull)
			default:
				return nil, fmt.Errorf("layout row %d col %d: unknown tile %q", r, x, ch)
			}
		}
	}
	return g, nil
}
