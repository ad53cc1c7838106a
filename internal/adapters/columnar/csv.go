package columnar

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lcalzada-xor/aptel/internal/core/domain"
	"github.com/lcalzada-xor/aptel/internal/core/ports"
)

// CreateCSV opens a fresh row-oriented intermediate file for batch appends.
func (s *Store) CreateCSV(path string) (ports.BatchWriter, error) {
	return NewCSVWriter(path)
}

// CSVWriter appends joined telemetry rows to the row-oriented intermediate
// file consumed by the columnar converter.
type CSVWriter struct {
	f *os.File
	w *csv.Writer
}

// NewCSVWriter creates the file (and its directory) and writes the header.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create csv directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(domain.FullColumns); err != nil {
		f.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	return &CSVWriter{f: f, w: w}, nil
}

// Append writes one batch of rows.
func (c *CSVWriter) Append(rows []domain.FullRecord) error {
	for _, r := range rows {
		if err := c.w.Write(csvCells(r)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	c.w.Flush()
	return c.w.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.f.Close()
		return err
	}
	return c.f.Close()
}

// csvCells renders a row in the on-disk column order.
func csvCells(r domain.FullRecord) []string {
	return []string{
		r.SessionID,
		r.UserMAC,
		r.Timestamp,
		strconv.FormatInt(r.RSSI, 10),
		strconv.FormatInt(r.NoiseFloor, 10),
		strconv.FormatInt(r.SNR, 10),
		strconv.FormatInt(r.BytesIn, 10),
		strconv.FormatInt(r.BytesOut, 10),
		strconv.FormatInt(r.PacketsIn, 10),
		strconv.FormatInt(r.PacketsOut, 10),
		strconv.FormatFloat(r.ThroughputMbps, 'f', -1, 64),
		strconv.FormatInt(r.Retries, 10),
		strconv.FormatInt(r.Errors, 10),
		strconv.FormatInt(r.TxPower, 10),
		strconv.FormatInt(r.RxPower, 10),
		strconv.FormatInt(r.TxRate, 10),
		strconv.FormatInt(r.RxRate, 10),
		strconv.FormatInt(r.MCSTx, 10),
		strconv.FormatInt(r.MCSRx, 10),
		strconv.FormatInt(r.AssocClients, 10),
		strconv.FormatInt(r.RoamEvents, 10),
		strconv.FormatFloat(r.APTemperature, 'f', -1, 64),
		strconv.FormatInt(r.UptimeSec, 10),
		r.FWVersion,
		strconv.FormatInt(r.Channel, 10),
		strconv.FormatInt(r.ChannelWidth, 10),
		strconv.FormatInt(r.APID, 10),
		r.Band,
		r.VendorSource,
		r.SSID,
		r.VendorName,
		r.Model,
		strconv.FormatFloat(r.Longitude, 'f', -1, 64),
		strconv.FormatFloat(r.Latitude, 'f', -1, 64),
		r.State,
		r.Region,
	}
}

// parseCells is the inverse of csvCells.
func parseCells(cells []string) (domain.FullRecord, error) {
	if len(cells) != len(domain.FullColumns) {
		return domain.FullRecord{}, fmt.Errorf("expected %d columns, got %d", len(domain.FullColumns), len(cells))
	}

	var firstErr error
	num := func(s string) int64 {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return v
	}
	fnum := func(s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return v
	}

	r := domain.FullRecord{
		TelemetryRecord: domain.TelemetryRecord{
			SessionID:      cells[0],
			UserMAC:        cells[1],
			Timestamp:      cells[2],
			RSSI:           num(cells[3]),
			NoiseFloor:     num(cells[4]),
			SNR:            num(cells[5]),
			BytesIn:        num(cells[6]),
			BytesOut:       num(cells[7]),
			PacketsIn:      num(cells[8]),
			PacketsOut:     num(cells[9]),
			ThroughputMbps: fnum(cells[10]),
			Retries:        num(cells[11]),
			Errors:         num(cells[12]),
			TxPower:        num(cells[13]),
			RxPower:        num(cells[14]),
			TxRate:         num(cells[15]),
			RxRate:         num(cells[16]),
			MCSTx:          num(cells[17]),
			MCSRx:          num(cells[18]),
			AssocClients:   num(cells[19]),
			RoamEvents:     num(cells[20]),
			APTemperature:  fnum(cells[21]),
			UptimeSec:      num(cells[22]),
			FWVersion:      cells[23],
			Channel:        num(cells[24]),
			ChannelWidth:   num(cells[25]),
			APID:           num(cells[26]),
		},
		Band:         cells[27],
		VendorSource: cells[28],
		SSID:         cells[29],
		VendorName:   cells[30],
		Model:        cells[31],
		Longitude:    fnum(cells[32]),
		Latitude:     fnum(cells[33]),
		State:        cells[34],
		Region:       cells[35],
	}
	return r, firstErr
}
