package columnar

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/lcalzada-xor/aptel/internal/core/domain"
)

// parallelism for parquet encode/decode workers.
const parallelism = 2

// readChunk bounds how many rows are resident while streaming a parquet file.
const readChunk = 8192

// Store reads and writes the pipeline's columnar files. All files are
// written with zstd compression: a deliberate throughput-for-size tradeoff
// for write-once/read-many artifacts.
type Store struct{}

// NewStore creates a columnar file store.
func NewStore() *Store {
	return &Store{}
}

// Count returns the number of rows in the catalog file, or 0 when the file
// does not exist yet.
func (s *Store) Count(path string) (int, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, nil
	}
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return 0, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(catalogRow), parallelism)
	if err != nil {
		return 0, fmt.Errorf("read catalog %s: %w", path, err)
	}
	defer pr.ReadStop()

	return int(pr.GetNumRows()), nil
}

// Read loads the full device catalog.
func (s *Store) Read(path string) ([]domain.AccessPoint, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(catalogRow), parallelism)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	defer pr.ReadStop()

	total := int(pr.GetNumRows())
	aps := make([]domain.AccessPoint, 0, total)
	for read := 0; read < total; {
		n := readChunk
		if total-read < n {
			n = total - read
		}
		rows := make([]catalogRow, n)
		if err := pr.Read(&rows); err != nil {
			return nil, fmt.Errorf("read catalog rows: %w", err)
		}
		for _, r := range rows {
			aps = append(aps, fromCatalogRow(r))
		}
		read += n
	}
	return aps, nil
}

// Write replaces the device catalog wholesale. The new catalog is written to
// a temporary file and renamed over the target so a reader never observes a
// partially written catalog.
func (s *Store) Write(path string, aps []domain.AccessPoint) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}

	tmp := path + ".tmp"
	fw, err := local.NewLocalFileWriter(tmp)
	if err != nil {
		return fmt.Errorf("create catalog %s: %w", tmp, err)
	}

	pw, err := writer.NewParquetWriter(fw, new(catalogRow), parallelism)
	if err != nil {
		fw.Close()
		return fmt.Errorf("create catalog writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_ZSTD

	for _, ap := range aps {
		if err := pw.Write(toCatalogRow(ap)); err != nil {
			fw.Close()
			return fmt.Errorf("write catalog row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("finalize catalog: %w", err)
	}
	if err := fw.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
