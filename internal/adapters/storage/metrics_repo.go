// Package storage implements the query-side repository over QuestDB's
// postgres wire protocol using GORM.
package storage

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/lcalzada-xor/aptel/internal/core/domain"
)

// MetricsRepository implements ports.MetricsRepository and
// ports.MetadataStore against the metrics table.
type MetricsRepository struct {
	db    *gorm.DB
	table string
}

// NewMetricsRepository opens the postgres-wire connection and instruments it
// with OpenTelemetry.
func NewMetricsRepository(dsn, table string) (*MetricsRepository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open metrics store: %w", err)
	}
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, fmt.Errorf("instrument metrics store: %w", err)
	}
	return &MetricsRepository{db: db, table: table}, nil
}

// Search returns the rows matching the filter's time window and equality
// qualifiers.
func (r *MetricsRepository) Search(ctx context.Context, f domain.SearchFilter) ([]domain.MetricRow, error) {
	q := r.db.WithContext(ctx).
		Table(r.table).
		Where("timestamp >= ? AND timestamp < ?", f.From, f.To)

	if f.APID != "" {
		q = q.Where("ap_id = ?", f.APID)
	}
	if f.Channel != "" {
		q = q.Where("channel = ?", f.Channel)
	}
	if f.Band != "" {
		q = q.Where("band = ?", f.Band)
	}
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.Region != "" {
		q = q.Where("region = ?", f.Region)
	}

	var rows []domain.MetricRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("search metrics: %w", err)
	}
	return rows, nil
}

// Exec runs a DDL statement against the store.
func (r *MetricsRepository) Exec(ctx context.Context, stmt string) error {
	return r.db.WithContext(ctx).Exec(stmt).Error
}

// IndexedColumns returns the per-column index state of a table from the
// store's metadata.
func (r *MetricsRepository) IndexedColumns(ctx context.Context, table string) (map[string]bool, error) {
	var results []struct {
		Column  string `gorm:"column:column"`
		Indexed bool   `gorm:"column:indexed"`
	}
	query := fmt.Sprintf(`SELECT "column", "indexed" FROM table_columns('%s')`, table)
	if err := r.db.WithContext(ctx).Raw(query).Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("read table metadata: %w", err)
	}

	indexed := make(map[string]bool, len(results))
	for _, c := range results {
		indexed[c.Column] = c.Indexed
	}
	return indexed, nil
}
