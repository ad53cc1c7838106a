package ports

import (
	"context"
	"time"

	"github.com/lcalzada-xor/aptel/internal/core/domain"
	"github.com/paulmach/orb"
)

// Geocoder resolves an administrative area name to its boundary polygon.
// Implementations talk to an external geocoding service; an unreachable
// service is a fatal error for the current run, never retried here.
type Geocoder interface {
	StateBoundary(ctx context.Context, state string) (orb.MultiPolygon, error)
}

// CatalogStore persists the static device catalog as a columnar file.
// Regeneration replaces the file wholesale; there is no incremental append.
type CatalogStore interface {
	// Count returns the number of catalog rows, or 0 when the catalog does
	// not exist yet.
	Count(path string) (int, error)
	Read(path string) ([]domain.AccessPoint, error)
	Write(path string, aps []domain.AccessPoint) error
}

// RowConverter streams a row-oriented file into a compressed columnar file
// without materializing the dataset in memory.
type RowConverter interface {
	CSVToParquet(input, output string, deleteCSV bool) error
}

// BatchWriter lands generated row batches in the row-oriented intermediate
// file.
type BatchWriter interface {
	Append(rows []domain.FullRecord) error
	Close() error
}

// AggregateStore persists reduced rows to a columnar file and reads them
// back for ingestion.
type AggregateStore interface {
	WriteAggregates(path string, rows []domain.AggregateRow) error
	ReadAggregates(path string) ([]domain.AggregateRow, error)
}

// RowStore is the full columnar file surface the pipeline drives.
type RowStore interface {
	CatalogStore
	RowConverter
	AggregateStore
	CreateCSV(path string) (BatchWriter, error)
}

// SchemaProvisioner performs idempotent schema and secondary-index
// provisioning against the target store.
type SchemaProvisioner interface {
	EnsureSchema(ctx context.Context) error
	// EnsureIndexes returns the columns it indexed; a repeat run returns an
	// empty slice.
	EnsureIndexes(ctx context.Context) ([]string, error)
}

// RowSender appends aggregate rows to the time-series store using a
// line-oriented streaming protocol, binding ts as the event timestamp of
// every row. Append-only: there is no update or delete path.
type RowSender interface {
	Send(ctx context.Context, table string, ts time.Time, rows []domain.AggregateRow) error
	Close(ctx context.Context) error
}

// MetadataStore exposes the target store's DDL surface: statement execution
// and the per-column index metadata used for idempotent provisioning.
type MetadataStore interface {
	Exec(ctx context.Context, stmt string) error
	IndexedColumns(ctx context.Context, table string) (map[string]bool, error)
}

// MetricsRepository serves the downstream search surface.
type MetricsRepository interface {
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.MetricRow, error)
}
