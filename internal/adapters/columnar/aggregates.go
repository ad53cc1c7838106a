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

// WriteAggregates persists reduced rows as a zstd-compressed parquet file.
func (s *Store) WriteAggregates(path string, rows []domain.AggregateRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("create parquet %s: %w", path, err)
	}

	pw, err := writer.NewParquetWriter(fw, new(aggRow), parallelism)
	if err != nil {
		fw.Close()
		return fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_ZSTD

	for _, row := range rows {
		if err := pw.Write(toAggRow(row)); err != nil {
			fw.Close()
			return fmt.Errorf("write aggregate row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("finalize parquet: %w", err)
	}
	return fw.Close()
}

// ReadAggregates loads reduced rows back for ingestion.
func (s *Store) ReadAggregates(path string) ([]domain.AggregateRow, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(aggRow), parallelism)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	defer pr.ReadStop()

	total := int(pr.GetNumRows())
	out := make([]domain.AggregateRow, 0, total)
	for read := 0; read < total; {
		n := readChunk
		if total-read < n {
			n = total - read
		}
		rows := make([]aggRow, n)
		if err := pr.Read(&rows); err != nil {
			return nil, fmt.Errorf("read aggregate rows: %w", err)
		}
		for _, r := range rows {
			out = append(out, fromAggRow(r))
		}
		read += n
	}
	return out, nil
}
