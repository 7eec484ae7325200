package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/tilereach/internal/db"
	"github.com/udisondev/tilereach/internal/game/geo"
)

// RegionSource reads stored collision planes.
type RegionSource interface {
	ListPlanes(ctx context.Context, regionID int) ([]int, error)
	Load(ctx context.Context, regionID, plane int) (*db.CollisionRegion, error)
}

// MaxRegionID is the largest id the collision_regions table can hold.
const MaxRegionID = math.MaxInt32

// ErrInvalidRegion is returned for region ids outside [0, MaxRegionID].
var ErrInvalidRegion = errors.New("invalid region id")

// CacheConfig sizes the decoded plane cache.
type CacheConfig struct {
	NumCounters int64
	MaxCost     int64
}

// DefaultCacheConfig holds roughly 1500 decoded planes.
var DefaultCacheConfig = CacheConfig{
	NumCounters: 10_000,
	MaxCost:     64 << 20,
}

// Loader installs stored regions into a Memory scene, keeping decoded
// planes in a cost-bounded cache.
type Loader struct {
	src   RegionSource
	cache *ristretto.Cache[uint64, *cachedPlane]
}

type cachedPlane struct {
	baseX, baseY int
	grid         *geo.Grid
}

// NewLoader creates a loader over src. Zero config fields take defaults.
func NewLoader(src RegionSource, cfg CacheConfig) (*Loader, error) {
	if cfg.NumCounters <= 0 {
		cfg.NumCounters = DefaultCacheConfig.NumCounters
	}
	if cfg.MaxCost <= 0 {
		cfg.MaxCost = DefaultCacheConfig.MaxCost
	}

	cache, err := ristretto.NewCache(&ristretto.Config[uint64, *cachedPlane]{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("creating region cache: %w", err)
	}
	return &Loader{src: src, cache: cache}, nil
}

// Close releases the cache.
func (l *Loader) Close() {
	l.cache.Close()
}

// LoadRegion fetches every stored plane of regionID concurrently and
// installs copies into scene. Nothing is installed if any plane fails.
func (l *Loader) LoadRegion(ctx context.Context, regionID int, scene *Memory) error {
	if regionID < 0 || regionID > MaxRegionID {
		return fmt.Errorf("region %d: %w", regionID, ErrInvalidRegion)
	}

	planes, err := l.src.ListPlanes(ctx, regionID)
	if err != nil {
		return fmt.Errorf("listing planes of region %d: %w", regionID, err)
	}

	loaded := make([]*cachedPlane, len(planes))
	g, gctx := errgroup.WithContext(ctx)
	for i, plane := range planes {
		g.Go(func() error {
			cp, err := l.plane(gctx, regionID, plane)
			if err != nil {
				return err
			}
			loaded[i] = cp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("loading region %d: %w", regionID, err)
	}

	for i, plane := range planes {
		cp := loaded[i]
		scene.Load(plane, cp.baseX, cp.baseY, cp.grid.Clone())
	}

	slog.Info("region loaded", "region", regionID, "planes", len(planes))
	return nil
}

func (l *Loader) plane(ctx context.Context, regionID, plane int) (*cachedPlane, error) {
	key := cacheKey(regionID, plane)
	if cp, ok := l.cache.Get(key); ok {
		slog.Debug("region plane cache hit", "region", regionID, "plane", plane)
		return cp, nil
	}

	r, err := l.src.Load(ctx, regionID, plane)
	if err != nil {
		return nil, fmt.Errorf("plane %d: %w", plane, err)
	}

	cp := &cachedPlane{baseX: r.BaseX, baseY: r.BaseY, grid: r.Grid}
	l.cache.Set(key, cp, geo.GridBinarySize)
	l.cache.Wait()
	return cp, nil
}

// cacheKey requires 0 <= regionID <= MaxRegionID.
func cacheKey(regionID, plane int) uint64 {
	return uint64(regionID)<<2 | uint64(plane&3)
}
