package geo

import "math"

// Loaded scene dimensions.
const (
	// RegionSize is the width and height of the locally loaded scene in tiles.
	RegionSize  = 104
	RegionCells = RegionSize * RegionSize // 10816
)

// World coordinate domain covered by the packed key layout.
const (
	WorldMaxX  = 1 << 15 // exclusive
	WorldMaxY  = 1 << 15 // exclusive
	PlaneCount = 4
)

// Collision bitmask values, one uint32 per tile.
// Directional bits are checked on the source tile, the full mask on the destination.
const (
	BlockMovementNorthWest Flag = 0x1
	BlockMovementNorth     Flag = 0x2
	BlockMovementNorthEast Flag = 0x4
	BlockMovementEast      Flag = 0x8
	BlockMovementSouthEast Flag = 0x10
	BlockMovementSouth     Flag = 0x20
	BlockMovementSouthWest Flag = 0x40
	BlockMovementWest      Flag = 0x80

	BlockMovementObject          Flag = 0x100
	BlockMovementFloorDecoration Flag = 0x40000
	BlockMovementFloor           Flag = 0x200000

	// BlockMovementFull marks a tile as impassable outright.
	BlockMovementFull = BlockMovementObject | BlockMovementFloorDecoration | BlockMovementFloor
)

// Distance constants.
const (
	// MaxDistance is returned when no valid walking distance exists.
	MaxDistance = math.MaxInt32

	// BandThresholdY separates the surface from the y-offset underground band.
	BandThresholdY = 6400
)

// Pathfinding configuration.
const (
	// DefaultMaxSearchTiles bounds the oracle's BFS. The whole scene fits.
	DefaultMaxSearchTiles = RegionCells
)
