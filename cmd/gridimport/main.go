// Command gridimport stores a YAML collision layout in the database.
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

	"github.com/udisondev/tilereach/internal/config"
	"github.com/udisondev/tilereach/internal/db"
	"github.com/udisondev/tilereach/internal/game/geo"
)

// RegionSaver persists one region plane.
type RegionSaver interface {
	Save(ctx context.Context, region db.CollisionRegion) error
}

func main() {
	configPath := flag.String("config", "", "config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	file := flag.String("file", "", "layout YAML file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath, *file); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, file string) error {
	cfg, err := config.LoadTool(config.ResolvePath(configPath))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))

	if file == "" {
		return errors.New("-file is required")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading layout: %w", err)
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

	return importLayout(ctx, repo, data)
}

// importLayout parses a layout document and saves its grid.
func importLayout(ctx context.Context, saver RegionSaver, data []byte) error {
	layout, err := geo.ParseLayout(data)
	if err != nil {
		return err
	}
	grid, err := layout.Grid()
	if err != nil {
		return fmt.Errorf("building grid of region %d: %w", layout.RegionID, err)
	}

	region := db.CollisionRegion{
		RegionID: layout.RegionID,
		Plane:    layout.Plane,
		BaseX:    layout.BaseX,
		BaseY:    layout.BaseY,
		Grid:     grid,
	}
	if err := saver.Save(ctx, region); err != nil {
		return err
	}

	slog.Info("layout imported",
		"region", layout.RegionID,
		"plane", layout.Plane,
		"base_x", layout.BaseX,
		"base_y", layout.BaseY)
	return nil
}
