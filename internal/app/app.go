package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lcalzada-xor/aptel/internal/adapters/columnar"
	"github.com/lcalzada-xor/aptel/internal/adapters/geocode"
	"github.com/lcalzada-xor/aptel/internal/adapters/questdb"
	"github.com/lcalzada-xor/aptel/internal/adapters/storage"
	webserver "github.com/lcalzada-xor/aptel/internal/adapters/web/server"
	"github.com/lcalzada-xor/aptel/internal/config"
	"github.com/lcalzada-xor/aptel/internal/core/services/aggregate"
	"github.com/lcalzada-xor/aptel/internal/core/services/pipeline"
	"github.com/lcalzada-xor/aptel/internal/core/services/sampler"
	"github.com/lcalzada-xor/aptel/internal/cursor"
	"github.com/lcalzada-xor/aptel/internal/telemetry"
)

// Application is the facade that wires adapters and services for the two
// entry points: the batch pipeline and the search API.
type Application struct {
	Config *config.Config

	Pipeline  *pipeline.Pipeline
	Cursor    *cursor.File
	WebServer *webserver.Server

	sender *questdb.Sender
}

// NewPipeline bootstraps an Application configured for one pipeline run.
func NewPipeline(ctx context.Context, cfg *config.Config) (*Application, error) {
	app := &Application{Config: cfg}

	telemetry.InitMetrics()

	for _, dir := range []string{
		filepath.Join(cfg.DataDir, "csv"),
		filepath.Join(cfg.DataDir, "parquet", "aggregated"),
		filepath.Dir(cfg.CatalogPath),
		filepath.Dir(cfg.CursorPath),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	store := columnar.NewStore()

	aggregator, err := aggregate.New(store)
	if err != nil {
		return nil, fmt.Errorf("aggregator init failed: %w", err)
	}

	repo, err := storage.NewMetricsRepository(cfg.PGDSN, cfg.Table)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to metadata store: %w", err)
	}
	provisioner := questdb.NewProvisioner(repo, cfg.Table, cfg.IndexColumns)

	sender, err := questdb.NewSender(ctx, cfg.ILPConf)
	if err != nil {
		return nil, fmt.Errorf("failed to create row sender: %w", err)
	}
	app.sender = sender

	geocoder := geocode.NewClient(cfg.NominatimURL)

	app.Cursor = cursor.New(cfg.CursorPath)
	app.Pipeline = pipeline.New(
		cfg,
		sampler.NewAttributeSampler(),
		sampler.NewLocationSampler(geocoder),
		store,
		aggregator,
		provisioner,
		sender,
	)

	return app, nil
}

// RunPipeline loads the time cursor, executes one pipeline pass and persists
// the advanced cursor. A missing cursor file seeds the cursor at the current
// wall-clock hour.
func (app *Application) RunPipeline(ctx context.Context) error {
	defer func() {
		if err := app.sender.Close(context.Background()); err != nil {
			log.Printf("Sender close error: %v", err)
		}
	}()

	base, err := app.Cursor.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load time cursor: %w", err)
		}
		base = time.Now().UTC().Truncate(time.Hour)
		slog.Info("No time cursor found, seeding", "base_time", base.Format(time.RFC3339))
	}

	next, err := app.Pipeline.Run(ctx, base)
	if err != nil {
		return err
	}

	if err := app.Cursor.Store(next); err != nil {
		return fmt.Errorf("failed to persist time cursor: %w", err)
	}
	return nil
}

// NewSearch bootstraps an Application configured to serve the search API.
func NewSearch(cfg *config.Config) (*Application, error) {
	app := &Application{Config: cfg}

	telemetry.InitMetrics()

	repo, err := storage.NewMetricsRepository(cfg.PGDSN, cfg.Table)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to metrics store: %w", err)
	}

	app.WebServer = webserver.NewServer(cfg.Addr, repo)
	return app, nil
}

// RunSearch serves the search API until ctx is cancelled.
func (app *Application) RunSearch(ctx context.Context) error {
	return app.WebServer.Run(ctx)
}
