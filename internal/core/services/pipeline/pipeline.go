// Package pipeline orchestrates one synchronous generation run:
// sampling → generation → conversion → aggregation → ingestion.
//
// Stages execute sequentially; each fully consumes its predecessor's output
// before the next begins. Any stage error aborts the run with no retry and
// no rollback. Cross-run concurrency is unsupported: the device catalog, the
// CSV artifacts and the target table assume a single writer.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/lcalzada-xor/aptel/internal/config"
	"github.com/lcalzada-xor/aptel/internal/core/domain"
	"github.com/lcalzada-xor/aptel/internal/core/ports"
	"github.com/lcalzada-xor/aptel/internal/core/services/aggregate"
	"github.com/lcalzada-xor/aptel/internal/core/services/generator"
	"github.com/lcalzada-xor/aptel/internal/core/services/sampler"
	"github.com/lcalzada-xor/aptel/internal/telemetry"
)

// Pipeline wires the samplers, the generator and the downstream adapters
// into one runnable unit.
type Pipeline struct {
	cfg *config.Config

	attrs       *sampler.AttributeSampler
	locations   *sampler.LocationSampler
	store       ports.RowStore
	aggregator  *aggregate.Aggregator
	provisioner ports.SchemaProvisioner
	sender      ports.RowSender
}

// New assembles a pipeline from its collaborators.
func New(
	cfg *config.Config,
	attrs *sampler.AttributeSampler,
	locations *sampler.LocationSampler,
	store ports.RowStore,
	aggregator *aggregate.Aggregator,
	provisioner ports.SchemaProvisioner,
	sender ports.RowSender,
) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		attrs:       attrs,
		locations:   locations,
		store:       store,
		aggregator:  aggregator,
		provisioner: provisioner,
		sender:      sender,
	}
}

// Run executes one full pipeline pass with base as the simulated "now".
// It returns the advanced cursor value; the caller owns cursor persistence
// and single-writer discipline.
func (p *Pipeline) Run(ctx context.Context, base time.Time) (time.Time, error) {
	runID := uuid.NewString()
	log := slog.With("run_id", runID, "base_time", base.Format(time.RFC3339))
	log.Info("Pipeline run starting")

	if err := p.run(ctx, base, log); err != nil {
		telemetry.RunsTotal.WithLabelValues("error").Inc()
		return time.Time{}, err
	}

	telemetry.RunsTotal.WithLabelValues("ok").Inc()
	next := base.Add(p.cfg.CursorStep)
	log.Info("Pipeline run complete", "next_base_time", next.Format(time.RFC3339))
	return next, nil
}

func (p *Pipeline) run(ctx context.Context, base time.Time, log *slog.Logger) error {
	catalog, err := p.ensureCatalog(ctx, log)
	if err != nil {
		return err
	}

	stem := base.UTC().Format("2006-01-02T15-04-05")
	csvPath := filepath.Join(p.cfg.DataDir, "csv", stem+".csv")
	parquetPath := filepath.Join(p.cfg.DataDir, "parquet", stem+".parquet")
	aggregatedPath := filepath.Join(p.cfg.DataDir, "parquet", "aggregated", stem+".parquet")

	if err := p.generate(base, catalog, csvPath, log); err != nil {
		return err
	}

	convertStart := time.Now()
	if err := p.store.CSVToParquet(csvPath, parquetPath, p.cfg.DeleteCSV); err != nil {
		return fmt.Errorf("convert stage: %w", err)
	}
	telemetry.StageDuration.WithLabelValues("convert").Observe(time.Since(convertStart).Seconds())

	aggStart := time.Now()
	rows, err := p.aggregator.Aggregate(parquetPath)
	if err != nil {
		return fmt.Errorf("aggregate stage: %w", err)
	}
	if err := p.store.WriteAggregates(aggregatedPath, rows); err != nil {
		return fmt.Errorf("aggregate stage: %w", err)
	}
	telemetry.StageDuration.WithLabelValues("aggregate").Observe(time.Since(aggStart).Seconds())
	log.Info("Aggregation complete", "access_points", len(rows))

	return p.ingest(ctx, base, aggregatedPath, log)
}

// ensureCatalog applies the regeneration policy: reuse the existing catalog
// as-is, unless it holds fewer rows than requested, in which case it is
// fully regenerated and replaced (never incrementally extended).
func (p *Pipeline) ensureCatalog(ctx context.Context, log *slog.Logger) (map[int64]domain.AccessPoint, error) {
	count, err := p.store.Count(p.cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("inspect catalog: %w", err)
	}

	if count < p.cfg.NumAPs {
		log.Info("Regenerating device catalog", "existing", count, "requested", p.cfg.NumAPs)
		aps := p.attrs.Sample(p.cfg.NumAPs)
		locations, err := p.locations.Sample(ctx, p.cfg.NumAPs)
		if err != nil {
			return nil, fmt.Errorf("sample locations: %w", err)
		}
		// Positional zip; the location sampler guarantees at least one
		// location per device, surplus from per-state rounding is dropped.
		for i := range aps {
			aps[i].Longitude = locations[i].Longitude
			aps[i].Latitude = locations[i].Latitude
			aps[i].State = locations[i].State
			aps[i].Region = locations[i].Region
		}
		if err := p.store.Write(p.cfg.CatalogPath, aps); err != nil {
			return nil, fmt.Errorf("write catalog: %w", err)
		}
	} else {
		log.Info("Reusing existing device catalog", "rows", count)
	}

	aps, err := p.store.Read(p.cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	byID := make(map[int64]domain.AccessPoint, len(aps))
	for _, ap := range aps {
		byID[ap.ID] = ap
	}
	return byID, nil
}

// generate runs the record generator and lands each batch, joined with its
// catalog attributes, in the raw CSV file.
func (p *Pipeline) generate(base time.Time, catalog map[int64]domain.AccessPoint, csvPath string, log *slog.Logger) error {
	start := time.Now()

	w, err := p.store.CreateCSV(csvPath)
	if err != nil {
		return fmt.Errorf("generate stage: %w", err)
	}

	it := generator.New(generator.Config{
		NumAPs:            p.cfg.NumAPs,
		BaseTime:          base,
		SessionsPerAP:     p.cfg.SessionsPerAP,
		RecordsPerSession: p.cfg.RecordsPerSession,
		BatchSize:         p.cfg.BatchSize,
	})

	var total int
	for it.Next() {
		batch := it.Batch()
		joined := make([]domain.FullRecord, len(batch))
		for i, rec := range batch {
			ap := catalog[rec.APID]
			joined[i] = domain.FullRecord{
				TelemetryRecord: rec,
				Band:            ap.Band,
				VendorSource:    ap.VendorSource,
				SSID:            ap.SSID,
				VendorName:      ap.VendorName,
				Model:           ap.Model,
				Longitude:       ap.Longitude,
				Latitude:        ap.Latitude,
				State:           ap.State,
				Region:          ap.Region,
			}
		}
		if err := w.Append(joined); err != nil {
			w.Close()
			return fmt.Errorf("generate stage: %w", err)
		}
		total += len(joined)
		telemetry.BatchesEmitted.Inc()
		telemetry.RowsGenerated.Add(float64(len(joined)))
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("generate stage: %w", err)
	}

	telemetry.StageDuration.WithLabelValues("generate").Observe(time.Since(start).Seconds())
	log.Info("Generation complete", "rows", total)
	return nil
}

// ingest provisions schema and indexes, then streams the aggregate rows.
func (p *Pipeline) ingest(ctx context.Context, base time.Time, aggregatedPath string, log *slog.Logger) error {
	start := time.Now()

	rows, err := p.store.ReadAggregates(aggregatedPath)
	if err != nil {
		return fmt.Errorf("ingest stage: %w", err)
	}

	if err := p.provisioner.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ingest stage: %w", err)
	}
	created, err := p.provisioner.EnsureIndexes(ctx)
	if err != nil {
		return fmt.Errorf("ingest stage: %w", err)
	}
	if len(created) > 0 {
		log.Info("Provisioned indexes", "columns", created)
	}

	if err := p.sender.Send(ctx, p.cfg.Table, base, rows); err != nil {
		return fmt.Errorf("ingest stage: %w", err)
	}

	telemetry.RowsIngested.Add(float64(len(rows)))
	telemetry.StageDuration.WithLabelValues("ingest").Observe(time.Since(start).Seconds())
	log.Info("Ingestion complete", "rows", len(rows))
	return nil
}
