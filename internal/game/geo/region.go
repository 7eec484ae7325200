package geo

import (
	"encoding/binary"
	"fmt"
)

// Flag is a per-tile collision bitmask.
type Flag uint32

// Has reports whether any bit of mask is set.
func (f Flag) Has(mask Flag) bool {
	return f&mask != 0
}

// Grid holds the collision flags of one plane of the loaded scene.
// Cells are stored x-major: index = x*RegionSize + y.
type Grid struct {
	cells [RegionCells]Flag
}

// NewGrid returns a grid with every tile open.
func NewGrid() *Grid {
	return &Grid{}
}

// InBounds reports whether (x, y) is a valid local coordinate.
func InBounds(x, y int) bool {
	return x >= 0 && x < RegionSize && y >= 0 && y < RegionSize
}

// At returns the flags at local (x, y). Callers check InBounds first.
func (g *Grid) At(x, y int) Flag {
	return g.cells[x*RegionSize+y]
}

// Set replaces the flags at local (x, y).
func (g *Grid) Set(x, y int, f Flag) {
	g.cells[x*RegionSize+y] = f
}

// Add ORs f into the flags at local (x, y).
func (g *Grid) Add(x, y int, f Flag) {
	g.cells[x*RegionSize+y] |= f
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	c := *g
	return &c
}

// GridBinarySize is the encoded size of a Grid.
const GridBinarySize = RegionCells * 4

// MarshalBinary encodes the grid as little-endian uint32 cells in storage order.
func (g *Grid) MarshalBinary() ([]byte, error) {
	data := make([]byte, GridBinarySize)
	for i, f := range g.cells {
		binary.LittleEndian.PutUint32(data[i*4:], uint32(f))
	}
	return data, nil
}

// UnmarshalBinary decodes data produced by MarshalBinary.
func (g *Grid) UnmarshalBinary(data []byte) error {
	if len(data) != GridBinarySize {
		return fmt.Errorf("grid data: got %d bytes, want %d", len(data), GridBinarySize)
	}
	for i := range g.cells {
		g.cells[i] = Flag(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return nil
}
