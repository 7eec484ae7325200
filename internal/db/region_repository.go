package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klauspost/compress/zstd"

	"github.com/udisondev/tilereach/internal/game/geo"
)

// ErrRegionNotFound is returned when no plane is stored for a region.
var ErrRegionNotFound = errors.New("collision region not found")

// CollisionRegion is one stored plane of a region.
type CollisionRegion struct {
	RegionID  int
	Plane     int
	BaseX     int
	BaseY     int
	Grid      *geo.Grid
	UpdatedAt time.Time
}

// RegionRepository manages the collision_regions table.
// Grids are stored as zstd-compressed geo.Grid binary blobs.
type RegionRepository struct {
	db  *pgxpool.Pool
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewRegionRepository creates a new RegionRepository.
func NewRegionRepository(db *pgxpool.Pool) (*RegionRepository, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	return &RegionRepository{db: db, enc: enc, dec: dec}, nil
}

// Close releases the decoder.
func (r *RegionRepository) Close() {
	r.dec.Close()
}

// Save inserts or replaces one plane of a region.
func (r *RegionRepository) Save(ctx context.Context, region CollisionRegion) error {
	if region.Grid == nil {
		return fmt.Errorf("saving region %d plane %d: nil grid", region.RegionID, region.Plane)
	}
	blob, err := r.encodeGrid(region.Grid)
	if err != nil {
		return fmt.Errorf("encoding region %d plane %d: %w", region.RegionID, region.Plane, err)
	}

	query := `
		INSERT INTO collision_regions (region_id, plane, base_x, base_y, flags, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (region_id, plane)
		DO UPDATE SET base_x = $3, base_y = $4, flags = $5, updated_at = now()
	`
	if _, err := r.db.Exec(ctx, query, region.RegionID, region.Plane, region.BaseX, region.BaseY, blob); err != nil {
		return fmt.Errorf("saving region %d plane %d: %w", region.RegionID, region.Plane, err)
	}
	return nil
}

// Load returns one stored plane of a region.
func (r *RegionRepository) Load(ctx context.Context, regionID, plane int) (*CollisionRegion, error) {
	query := `
		SELECT base_x, base_y, flags, updated_at
		FROM collision_regions
		WHERE region_id = $1 AND plane = $2
	`

	region := CollisionRegion{RegionID: regionID, Plane: plane}
	var blob []byte
	err := r.db.QueryRow(ctx, query, regionID, plane).
		Scan(&region.BaseX, &region.BaseY, &blob, &region.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("region %d plane %d: %w", regionID, plane, ErrRegionNotFound)
		}
		return nil, fmt.Errorf("querying region %d plane %d: %w", regionID, plane, err)
	}

	region.Grid, err = r.decodeGrid(blob)
	if err != nil {
		return nil, fmt.Errorf("decoding region %d plane %d: %w", regionID, plane, err)
	}
	return &region, nil
}

// ListPlanes returns the stored planes of a region in ascending order.
func (r *RegionRepository) ListPlanes(ctx context.Context, regionID int) ([]int, error) {
	query := `SELECT plane FROM collision_regions WHERE region_id = $1 ORDER BY plane`

	rows, err := r.db.Query(ctx, query, regionID)
	if err != nil {
		return nil, fmt.Errorf("querying planes for region %d: %w", regionID, err)
	}
	defer rows.Close()

	planes := make([]int, 0, geo.PlaneCount)
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning plane row: %w", err)
		}
		planes = append(planes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plane rows: %w", err)
	}

	if len(planes) == 0 {
		return nil, fmt.Errorf("region %d: %w", regionID, ErrRegionNotFound)
	}
	return planes, nil
}

// Delete removes every plane of a region.
func (r *RegionRepository) Delete(ctx context.Context, regionID int) error {
	query := `DELETE FROM collision_regions WHERE region_id = $1`

	if _, err := r.db.Exec(ctx, query, regionID); err != nil {
		return fmt.Errorf("deleting region %d: %w", regionID, err)
	}
	return nil
}

func (r *RegionRepository) encodeGrid(g *geo.Grid) ([]byte, error) {
	raw, err := g.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return r.enc.EncodeAll(raw, make([]byte, 0, len(raw)/16)), nil
}

func (r *RegionRepository) decodeGrid(blob []byte) (*geo.Grid, error) {
	raw, err := r.dec.DecodeAll(blob, make([]byte, 0, geo.GridBinarySize))
	if err != nil {
		return nil, err
	}
	g := geo.NewGrid()
	if err := g.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	return g, nil
}
