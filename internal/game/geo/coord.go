package geo

import "fmt"

// Tile is an absolute world position. Comparable, usable as a map key.
type Tile struct {
	X, Y, Plane int
}

// NewTile returns the tile at (x, y, plane).
func NewTile(x, y, plane int) Tile {
	return Tile{X: x, Y: y, Plane: plane}
}

// Offset returns the tile shifted by (dx, dy) on the same plane.
func (t Tile) Offset(dx, dy int) Tile {
	return Tile{X: t.X + dx, Y: t.Y + dy, Plane: t.Plane}
}

// WorldLocation makes a bare Tile usable as a TileHandle.
func (t Tile) WorldLocation() Tile {
	return t
}

// InDomain reports whether the tile fits the packed key layout.
func (t Tile) InDomain() bool {
	return t.X >= 0 && t.X < WorldMaxX &&
		t.Y >= 0 && t.Y < WorldMaxY &&
		t.Plane >= 0 && t.Plane < PlaneCount
}

func (t Tile) String() string {
	return fmt.Sprintf("(%d, %d, %d)", t.X, t.Y, t.Plane)
}

// PackedKey is an opaque integer surrogate for a Tile.
type PackedKey int64

// UndefinedKey is the key of every coordinate outside the world domain.
// In-domain keys are never negative.
const UndefinedKey PackedKey = -1

// Codec packs tiles into keys and back.
type Codec interface {
	Pack(x, y, plane int) PackedKey
	Unpack(key PackedKey) (x, y, plane int)
}

// PointCodec is the default Codec.
// Layout: bits [14:0] x, [29:15] y, [31:30] plane.
type PointCodec struct{}

var _ Codec = PointCodec{}

func (PointCodec) Pack(x, y, plane int) PackedKey {
	return Pack(x, y, plane)
}

func (PointCodec) Unpack(key PackedKey) (x, y, plane int) {
	return Unpack(key)
}

// Pack encodes (x, y, plane). Out-of-domain input yields UndefinedKey.
func Pack(x, y, plane int) PackedKey {
	if x < 0 || x >= WorldMaxX || y < 0 || y >= WorldMaxY || plane < 0 || plane >= PlaneCount {
		return UndefinedKey
	}
	return PackedKey(x&0x7FFF | (y&0x7FFF)<<15 | (plane&0x3)<<30)
}

// PackTile encodes t.
func PackTile(t Tile) PackedKey {
	return Pack(t.X, t.Y, t.Plane)
}

// Unpack decodes a key produced by Pack.
func Unpack(key PackedKey) (x, y, plane int) {
	return int(key & 0x7FFF), int((key >> 15) & 0x7FFF), int((key >> 30) & 0x3)
}

// UnpackTile decodes key into a Tile.
func UnpackTile(key PackedKey) Tile {
	x, y, plane := Unpack(key)
	return Tile{X: x, Y: y, Plane: plane}
}

// DeltaKey returns the key of the tile (dx, dy) away from key on the same plane.
func DeltaKey(key PackedKey, dx, dy int) PackedKey {
	x, y, plane := Unpack(key)
	return Pack(x+dx, y+dy, plane)
}
