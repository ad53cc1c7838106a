package columnar

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/lcalzada-xor/aptel/internal/core/domain"
)

// CSVToParquet stream-converts a row-oriented CSV file into a
// zstd-compressed parquet file, one record at a time; the dataset is never
// resident in memory. When deleteCSV is set the source file is removed after
// a successful conversion.
func (s *Store) CSVToParquet(input, output string, deleteCSV bool) error {
	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open csv %s: %w", input, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fw, err := local.NewLocalFileWriter(output)
	if err != nil {
		return fmt.Errorf("create parquet %s: %w", output, err)
	}

	pw, err := writer.NewParquetWriter(fw, new(fullRow), parallelism)
	if err != nil {
		fw.Close()
		return fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_ZSTD

	cr := csv.NewReader(in)
	// header
	if _, err := cr.Read(); err != nil {
		fw.Close()
		return fmt.Errorf("read csv header: %w", err)
	}

	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fw.Close()
			return fmt.Errorf("read csv row: %w", err)
		}
		rec, err := parseCells(cells)
		if err != nil {
			fw.Close()
			return fmt.Errorf("parse csv row: %w", err)
		}
		if err := pw.Write(toFullRow(rec)); err != nil {
			fw.Close()
			return fmt.Errorf("write parquet row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("finalize parquet: %w", err)
	}
	if err := fw.Close(); err != nil {
		return err
	}

	if deleteCSV {
		return os.Remove(input)
	}
	return nil
}

// ReadFull streams joined telemetry rows from a parquet file in bounded
// chunks, invoking fn once per chunk. It is the scan primitive behind the
// aggregator.
func (s *Store) ReadFull(path string, fn func([]domain.FullRecord) error) error {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return fmt.Errorf("open parquet %s: %w", path, err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(fullRow), parallelism)
	if err != nil {
		return fmt.Errorf("read parquet %s: %w", path, err)
	}
	defer pr.ReadStop()

	total := int(pr.GetNumRows())
	for read := 0; read < total; {
		n := readChunk
		if total-read < n {
			n = total - read
		}
		rows := make([]fullRow, n)
		if err := pr.Read(&rows); err != nil {
			return fmt.Errorf("read parquet rows: %w", err)
		}
		records := make([]domain.FullRecord, len(rows))
		for i, r := range rows {
			records[i] = fromFullRow(r)
		}
		if err := fn(records); err != nil {
			return err
		}
		read += n
	}
	return nil
}
