package generator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/aptel/internal/core/domain"
)

func collect(it *Iterator) []domain.TelemetryRecord {
	var all []domain.TelemetryRecord
	for it.Next() {
		all = append(all, it.Batch()...)
	}
	return all
}

func testConfig() Config {
	return Config{
		NumAPs:            3,
		BaseTime:          time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		SessionsPerAP:     2,
		RecordsPerSession: 5,
		BatchSize:         1000,
	}
}

func TestIterator_TotalRows(t *testing.T) {
	it := NewWithSource(testConfig(), rand.NewSource(1))
	rows := collect(it)
	assert.Len(t, rows, 3*2*5)
}

func TestIterator_BatchSizeContract(t *testing.T) {
	cfg := testConfig()
	cfg.BatchSize = 7 // 30 rows -> 4 full batches of 7 plus a final 2

	it := NewWithSource(cfg, rand.NewSource(1))
	var sizes []int
	for it.Next() {
		sizes = append(sizes, len(it.Batch()))
	}

	require.Len(t, sizes, 5)
	for _, n := range sizes[:4] {
		assert.Equal(t, 7, n)
	}
	assert.Equal(t, 2, sizes[4])
}

func TestIterator_ExhaustedStaysExhausted(t *testing.T) {
	it := NewWithSource(testConfig(), rand.NewSource(1))
	for it.Next() {
	}
	assert.False(t, it.Next())
}

func TestIterator_EmptyConfig(t *testing.T) {
	it := NewWithSource(Config{BatchSize: 10}, rand.NewSource(1))
	assert.False(t, it.Next())
}

func TestIterator_InvalidBatchSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		cfg := testConfig()
		cfg.BatchSize = size
		it := NewWithSource(cfg, rand.NewSource(1))
		assert.False(t, it.Next(), "batch size %d", size)
	}
}

func TestIterator_TimestampsStrictlyIncreasePerSession(t *testing.T) {
	cfg := testConfig()
	cfg.RecordsPerSession = 20

	rows := collect(NewWithSource(cfg, rand.NewSource(42)))
	last := map[string]time.Time{}
	for _, r := range rows {
		ts, err := time.Parse(time.RFC3339, r.Timestamp)
		require.NoError(t, err)
		if prev, ok := last[r.SessionID]; ok {
			assert.True(t, ts.After(prev), "session %s: %s not after %s", r.SessionID, ts, prev)
		}
		last[r.SessionID] = ts
	}
}

func TestIterator_SessionStartWithinBaseHour(t *testing.T) {
	cfg := testConfig()
	cfg.RecordsPerSession = 1

	rows := collect(NewWithSource(cfg, rand.NewSource(7)))
	for _, r := range rows {
		ts, err := time.Parse(time.RFC3339, r.Timestamp)
		require.NoError(t, err)
		offset := ts.Sub(cfg.BaseTime)
		assert.GreaterOrEqual(t, offset, time.Duration(0))
		assert.LessOrEqual(t, offset, 60*time.Minute)
	}
}

func TestIterator_CumulativeCountersMonotonic(t *testing.T) {
	cfg := testConfig()
	cfg.RecordsPerSession = 10

	rows := collect(NewWithSource(cfg, rand.NewSource(3)))
	type counters struct{ bi, bo, pi, po int64 }
	last := map[string]counters{}
	for _, r := range rows {
		if prev, ok := last[r.SessionID]; ok {
			assert.Greater(t, r.BytesIn, prev.bi)
			assert.Greater(t, r.BytesOut, prev.bo)
			assert.GreaterOrEqual(t, r.PacketsIn, prev.pi)
			assert.GreaterOrEqual(t, r.PacketsOut, prev.po)
		}
		last[r.SessionID] = counters{r.BytesIn, r.BytesOut, r.PacketsIn, r.PacketsOut}
	}
}

func TestIterator_DerivedAndBoundedFields(t *testing.T) {
	rows := collect(NewWithSource(testConfig(), rand.NewSource(11)))
	validChannels := map[int64]bool{1: true, 6: true, 11: true, 36: true, 40: true,
		44: true, 48: true, 149: true, 153: true, 157: true, 161: true}
	validWidths := map[int64]bool{20: true, 40: true, 80: true, 160: true}

	for _, r := range rows {
		assert.Equal(t, r.RSSI-r.NoiseFloor, r.SNR)
		assert.Equal(t, r.RSSI, r.RxPower)
		assert.GreaterOrEqual(t, r.RSSI, int64(-85))
		assert.LessOrEqual(t, r.RSSI, int64(-45))
		assert.GreaterOrEqual(t, r.NoiseFloor, int64(-95))
		assert.LessOrEqual(t, r.NoiseFloor, int64(-75))
		assert.True(t, validChannels[r.Channel], "channel %d", r.Channel)
		assert.True(t, validWidths[r.ChannelWidth], "width %d", r.ChannelWidth)
		assert.GreaterOrEqual(t, r.ThroughputMbps, 0.0)
		assert.GreaterOrEqual(t, r.AssocClients, int64(1))
		assert.NotEmpty(t, r.SessionID)
		assert.NotEmpty(t, r.UserMAC)
		assert.NotEmpty(t, r.FWVersion)
	}
}

func TestIterator_APIDsCoverRange(t *testing.T) {
	rows := collect(NewWithSource(testConfig(), rand.NewSource(5)))
	seen := map[int64]bool{}
	for _, r := range rows {
		seen[r.APID] = true
	}
	assert.Equal(t, map[int64]bool{0: true, 1: true, 2: true}, seen)
}

func TestIterator_SessionsDistinctPerAP(t *testing.T) {
	rows := collect(NewWithSource(testConfig(), rand.NewSource(9)))
	perAP := map[int64]map[string]bool{}
	for _, r := range rows {
		if perAP[r.APID] == nil {
			perAP[r.APID] = map[string]bool{}
		}
		perAP[r.APID][r.SessionID] = true
	}
	for id, sessions := range perAP {
		assert.Len(t, sessions, 2, "ap %d", id)
	}
}
