package aggregate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/aptel/internal/core/domain"
)

// sliceScanner serves canned records in two chunks to exercise chunk
// boundaries in the streaming group-by.
type sliceScanner struct {
	records []domain.FullRecord
	err     error
}

func (s *sliceScanner) ReadFull(path string, fn func([]domain.FullRecord) error) error {
	if s.err != nil {
		return s.err
	}
	mid := len(s.records) / 2
	if err := fn(s.records[:mid]); err != nil {
		return err
	}
	return fn(s.records[mid:])
}

func rec(apID int64, session string, bytesIn int64) domain.FullRecord {
	return domain.FullRecord{
		TelemetryRecord: domain.TelemetryRecord{
			APID:      apID,
			SessionID: session,
			BytesIn:   bytesIn,
		},
	}
}

func TestAggregator_GroupCardinalityAndOrder(t *testing.T) {
	scanner := &sliceScanner{records: []domain.FullRecord{
		rec(5, "s1", 10), rec(2, "s2", 10), rec(5, "s3", 10), rec(0, "s4", 10),
	}}
	agg, err := New(scanner)
	require.NoError(t, err)

	rows, err := agg.Aggregate("in.parquet")
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, int64(0), rows[0].APID)
	assert.Equal(t, int64(2), rows[1].APID)
	assert.Equal(t, int64(5), rows[2].APID)
}

func TestAggregator_SumsFoldStoredCumulativeCounters(t *testing.T) {
	// Two records of the same session carrying cumulative counters 100 and
	// 250: the reduction sums the stored values, yielding 350.
	scanner := &sliceScanner{records: []domain.FullRecord{
		rec(1, "s1", 100), rec(1, "s1", 250),
	}}
	agg, err := New(scanner)
	require.NoError(t, err)

	rows, err := agg.Aggregate("in.parquet")
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, int64(350), rows[0].TotalBytesIn)
	assert.Equal(t, int64(1), rows[0].UniqueSessions)
}

func TestAggregator_Reductions(t *testing.T) {
	r1 := domain.FullRecord{TelemetryRecord: domain.TelemetryRecord{
		APID: 7, SessionID: "a", RSSI: -60, NoiseFloor: -90, SNR: 30,
		ThroughputMbps: 1.0, Retries: 3, Errors: 1, AssocClients: 4,
		UptimeSec: 1000, RoamEvents: 2, APTemperature: 30.0,
		FWVersion: "1.0.0", Channel: 36, ChannelWidth: 80,
	}, Band: "5GHz", State: "California", Region: "west"}
	r2 := domain.FullRecord{TelemetryRecord: domain.TelemetryRecord{
		APID: 7, SessionID: "b", RSSI: -50, NoiseFloor: -80, SNR: 30,
		ThroughputMbps: 3.0, Retries: 1, Errors: 0, AssocClients: 9,
		UptimeSec: 500, RoamEvents: 1, APTemperature: 40.0,
		FWVersion: "2.0.0", Channel: 149, ChannelWidth: 40,
	}, Band: "2.4GHz", State: "Nevada", Region: "west"}

	agg, err := New(&sliceScanner{records: []domain.FullRecord{r1, r2}})
	require.NoError(t, err)

	rows, err := agg.Aggregate("in.parquet")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]

	assert.Equal(t, int64(2), row.UniqueSessions)
	assert.InDelta(t, -55.0, row.AvgRSSI, 1e-9)
	assert.Equal(t, int64(-80), row.MaxNoiseFloor)
	assert.InDelta(t, -85.0, row.AvgNoiseFloor, 1e-9)
	assert.InDelta(t, 30.0, row.AvgSNR, 1e-9)
	assert.InDelta(t, 2.0, row.AvgThroughputMbps, 1e-9)
	assert.Equal(t, int64(4), row.TotalRetries)
	assert.Equal(t, int64(1), row.TotalErrors)
	assert.Equal(t, int64(9), row.MaxAssocClients)
	assert.Equal(t, int64(1000), row.MaxUptimeSec)
	assert.Equal(t, int64(3), row.TotalRoamEvents)
	assert.InDelta(t, 35.0, row.AvgAPTemperature, 1e-9)

	// first-observed categoricals come from the first row in read order
	assert.Equal(t, "1.0.0", row.FWVersion)
	assert.Equal(t, int64(36), row.Channel)
	assert.Equal(t, int64(80), row.ChannelWidth)
	assert.Equal(t, "5GHz", row.Band)
	assert.Equal(t, "California", row.State)
}

func TestAggregator_EmptyInput(t *testing.T) {
	agg, err := New(&sliceScanner{})
	require.NoError(t, err)

	rows, err := agg.Aggregate("in.parquet")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAggregator_ScanErrorPropagates(t *testing.T) {
	agg, err := New(&sliceScanner{err: errors.New("corrupt file")})
	require.NoError(t, err)

	_, err = agg.Aggregate("in.parquet")
	assert.Error(t, err)
}
