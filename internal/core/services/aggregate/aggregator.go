// Package aggregate reduces raw telemetry rows into one summary row per
// access point, applying a fixed, column-specific reduction rule.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/lcalzada-xor/aptel/internal/core/domain"
)

// Scanner streams joined telemetry rows from a columnar file in bounded
// chunks. Satisfied by the columnar store.
type Scanner interface {
	ReadFull(path string, fn func([]domain.FullRecord) error) error
}

// Aggregator performs a single-pass streaming group-by over a columnar file.
// Per-row data is never retained beyond the current chunk; only one
// accumulator per distinct access point is held.
type Aggregator struct {
	scanner Scanner
}

// New creates an aggregator over the given scanner.
func New(scanner Scanner) (*Aggregator, error) {
	if err := validateReductions(); err != nil {
		return nil, err
	}
	return &Aggregator{scanner: scanner}, nil
}

// validateReductions checks the reduction table against the declared row
// schema: every reduced column must exist, and every non-key column must
// have a reduction. A schema drift fails construction instead of silently
// dropping a column.
func validateReductions() error {
	schema := make(map[string]bool, len(domain.FullColumns))
	for _, col := range domain.FullColumns {
		schema[col] = true
	}
	for col := range domain.Reductions {
		if !schema[col] {
			return fmt.Errorf("reduction table references unknown column %q", col)
		}
	}
	for _, col := range domain.FullColumns {
		switch col {
		case "ap_id", "user_mac", "timestamp":
			// grouping key and unreduced columns
			continue
		}
		if _, ok := domain.Reductions[col]; !ok {
			return fmt.Errorf("column %q has no reduction rule", col)
		}
	}
	return nil
}

// Aggregate reduces the rows of a columnar file grouped by access-point id.
// Output cardinality equals the number of distinct ids present in the input;
// an access point with zero rows never appears. Rows are returned ordered by
// ascending id.
func (a *Aggregator) Aggregate(path string) ([]domain.AggregateRow, error) {
	groups := make(map[int64]*accumulator)

	err := a.scanner.ReadFull(path, func(records []domain.FullRecord) error {
		for i := range records {
			acc, ok := groups[records[i].APID]
			if !ok {
				acc = newAccumulator(&records[i])
				groups[records[i].APID] = acc
			}
			acc.add(&records[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]domain.AggregateRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, groups[id].finalize(id))
	}
	return rows, nil
}

// accumulator holds per-group reduction state. The "first" fields are
// captured from the first row observed for the group, in row order as read.
type accumulator struct {
	count    int64
	sessions map[string]struct{}

	sumRSSI       float64
	maxNoiseFloor int64
	sumNoiseFloor float64
	sumSNR        float64

	// Sums fold the stored cumulative counters; per-record deltas are
	// not recovered.
	totalBytesIn    int64
	totalBytesOut   int64
	totalPacketsIn  int64
	totalPacketsOut int64

	sumThroughput float64
	totalRetries  int64
	totalErrors   int64
	sumTxPower    float64
	sumRxPower    float64
	sumTxRate     float64
	sumRxRate     float64
	sumMCSTx      float64
	sumMCSRx      float64

	maxAssocClients int64
	totalRoamEvents int64
	sumTemperature  float64
	maxUptimeSec    int64

	firstFWVersion    string
	firstChannel      int64
	firstChannelWidth int64
	firstLongitude    float64
	firstLatitude     float64
	firstState        string
	firstRegion       string
	firstBand         string
	firstVendorSource string
	firstVendorName   string
	firstModel        string
	firstSSID         string
}

func newAccumulator(first *domain.FullRecord) *accumulator {
	return &accumulator{
		sessions:          make(map[string]struct{}),
		maxNoiseFloor:     first.NoiseFloor,
		maxAssocClients:   first.AssocClients,
		maxUptimeSec:      first.UptimeSec,
		firstFWVersion:    first.FWVersion,
		firstChannel:      first.Channel,
		firstChannelWidth: first.ChannelWidth,
		firstLongitude:    first.Longitude,
		firstLatitude:     first.Latitude,
		firstState:        first.State,
		firstRegion:       first.Region,
		firstBand:         first.Band,
		firstVendorSource: first.VendorSource,
		firstVendorName:   first.VendorName,
		firstModel:        first.Model,
		firstSSID:         first.SSID,
	}
}

func (acc *accumulator) add(r *domain.FullRecord) {
	acc.count++
	acc.sessions[r.SessionID] = struct{}{}

	acc.sumRSSI += float64(r.RSSI)
	if r.NoiseFloor > acc.maxNoiseFloor {
		acc.maxNoiseFloor = r.NoiseFloor
	}
	acc.sumNoiseFloor += float64(r.NoiseFloor)
	acc.sumSNR += float64(r.SNR)

	acc.totalBytesIn += r.BytesIn
	acc.totalBytesOut += r.BytesOut
	acc.totalPacketsIn += r.PacketsIn
	acc.totalPacketsOut += r.PacketsOut

	acc.sumThroughput += r.ThroughputMbps
	acc.totalRetries += r.Retries
	acc.totalErrors += r.Errors
	acc.sumTxPower += float64(r.TxPower)
	acc.sumRxPower += float64(r.RxPower)
	acc.sumTxRate += float64(r.TxRate)
	acc.sumRxRate += float64(r.RxRate)
	acc.sumMCSTx += float64(r.MCSTx)
	acc.sumMCSRx += float64(r.MCSRx)

	if r.AssocClients > acc.maxAssocClients {
		acc.maxAssocClients = r.AssocClients
	}
	acc.totalRoamEvents += r.RoamEvents
	acc.sumTemperature += r.APTemperature
	if r.UptimeSec > acc.maxUptimeSec {
		acc.maxUptimeSec = r.UptimeSec
	}
}

func (acc *accumulator) finalize(id int64) domain.AggregateRow {
	n := float64(acc.count)
	return domain.AggregateRow{
		APID:              id,
		UniqueSessions:    int64(len(acc.sessions)),
		AvgRSSI:           acc.sumRSSI / n,
		MaxNoiseFloor:     acc.maxNoiseFloor,
		AvgNoiseFloor:     acc.sumNoiseFloor / n,
		AvgSNR:            acc.sumSNR / n,
		TotalBytesIn:      acc.totalBytesIn,
		TotalBytesOut:     acc.totalBytesOut,
		TotalPacketsIn:    acc.totalPacketsIn,
		TotalPacketsOut:   acc.totalPacketsOut,
		AvgThroughputMbps: acc.sumThroughput / n,
		TotalRetries:      acc.totalRetries,
		TotalErrors:       acc.totalErrors,
		AvgTxPower:        acc.sumTxPower / n,
		AvgRxPower:        acc.sumRxPower / n,
		AvgTxRate:         acc.sumTxRate / n,
		AvgRxRate:         acc.sumRxRate / n,
		AvgMCSTx:          acc.sumMCSTx / n,
		AvgMCSRx:          acc.sumMCSRx / n,
		MaxAssocClients:   acc.maxAssocClients,
		TotalRoamEvents:   acc.totalRoamEvents,
		AvgAPTemperature:  acc.sumTemperature / n,
		MaxUptimeSec:      acc.maxUptimeSec,
		FWVersion:         acc.firstFWVersion,
		Channel:           acc.firstChannel,
		ChannelWidth:      acc.firstChannelWidth,
		Longitude:         acc.firstLongitude,
		Latitude:          acc.firstLatitude,
		State:             acc.firstState,
		Region:            acc.firstRegion,
		Band:              acc.firstBand,
		VendorSource:      acc.firstVendorSource,
		VendorName:        acc.firstVendorName,
		Model:             acc.firstModel,
		SSID:              acc.firstSSID,
	}
}
