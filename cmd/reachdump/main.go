// Command reachdump loads one stored region and prints the reachable area
// and the walking route between two tiles.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/tilereach/internal/config"
	"github.com/udisondev/tilereach/internal/db"
	"github.com/udisondev/tilereach/internal/game/geo"
	"github.com/udisondev/tilereach/internal/metrics"
	"github.com/udisondev/tilereach/internal/snapshot"
)

type options struct {
	configPath string
	regionID   int
	plane      int
	from       string
	to         string
	radius     int
	noColor    bool
	hold       bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	flag.IntVar(&opts.regionID, "region", 0, "region id to load")
	flag.IntVar(&opts.plane, "plane", 0, "plane of the query tiles")
	flag.StringVar(&opts.from, "from", "", "origin tile as x,y")
	flag.StringVar(&opts.to, "to", "", "optional target tile as x,y")
	flag.IntVar(&opts.radius, "radius", 12, "map radius around the origin")
	flag.BoolVar(&opts.noColor, "no-color", false, "disable ANSI colors")
	flag.BoolVar(&opts.hold, "hold", false, "keep the scene and metrics endpoint running after the dump")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.LoadTool(config.ResolvePath(opts.configPath))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))

	q, err := buildQuery(opts)
	if err != nil {
		return err
	}

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	repo, err := db.NewRegionRepository(database.Pool())
	if err != nil {
		return err
	}
	defer repo.Close()

	loader, err := snapshot.NewLoader(repo, snapshot.CacheConfig{
		NumCounters: cfg.RegionCache.NumCounters,
		MaxCost:     cfg.RegionCache.MaxCost,
	})
	if err != nil {
		return err
	}
	defer loader.Close()

	scene := snapshot.NewMemory()
	if err := loader.LoadRegion(ctx, opts.regionID, scene); err != nil {
		return err
	}
	scene.SetActivePlane(opts.plane)
	scene.Advance()

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewEngine(reg)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	owner := snapshot.NewAffine(scene)
	reach := geo.NewReachEngine(owner, geo.WithRecorder(rec))
	paths := geo.NewPathEngine(owner,
		geo.NewGridOracle(geo.WithMaxSearchTiles(cfg.Path.MaxSearchTiles)),
		geo.WithRecorder(rec))

	g, gctx := errgroup.WithContext(ctx)
	gctx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error { return owner.Run(gctx) })
	g.Go(func() error { return snapshot.NewClock(scene, cfg.TickInterval).Run(gctx) })
	if cfg.MetricsAddr != "" {
		g.Go(func() error { return metrics.Serve(gctx, cfg.MetricsAddr, reg) })
	}

	g.Go(func() error {
		if !opts.hold {
			defer stop()
		}
		return dump(os.Stdout, geo.NewAccessor(owner), reach, paths, q, !opts.noColor)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func buildQuery(opts options) (query, error) {
	if opts.from == "" {
		return query{}, errors.New("-from is required")
	}
	if opts.radius < 0 {
		return query{}, errors.New("-radius must not be negative")
	}

	from, err := parseXY(opts.from, opts.plane)
	if err != nil {
		return query{}, err
	}
	q := query{from: from, radius: opts.radius}

	if opts.to != "" {
		to, err := parseXY(opts.to, opts.plane)
		if err != nil {
			return query{}, err
		}
		q.to, q.hasTo = to, true
	}
	return q, nil
}
