// Package generator produces synthetic, internally-consistent telemetry time
// series as a lazy sequence of bounded row batches.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lcalzada-xor/aptel/internal/core/domain"
)

// Categorical domains drawn per record. Channel and width are intentionally
// re-drawn on every record, so a session may appear to change channel between
// records; this is accepted synthetic noise.
var (
	channels      = []int64{1, 6, 11, 36, 40, 44, 48, 149, 153, 157, 161}
	channelWidths = []int64{20, 40, 80, 160}
)

// Config parameterizes one generation run.
type Config struct {
	NumAPs            int
	BaseTime          time.Time
	SessionsPerAP     int
	RecordsPerSession int
	BatchSize         int
}

// Iterator is a pull-based producer of record batches. Every batch except
// possibly the last holds exactly BatchSize rows; the final batch holds the
// remainder. The iterator holds no cross-run state: restartability across
// runs is provided by the external time cursor.
//
//	it := generator.New(cfg)
//	for it.Next() {
//		flush(it.Batch())
//	}
type Iterator struct {
	cfg Config
	rng *rand.Rand

	ap, session, record int

	// per-session state, carried across batch boundaries
	sessionID  string
	userMAC    string
	lastTime   time.Time
	bytesIn    int64
	bytesOut   int64
	packetsIn  int64
	packetsOut int64

	batch     []domain.TelemetryRecord
	exhausted bool
}

// New creates an iterator seeded from the wall clock.
func New(cfg Config) *Iterator {
	return NewWithSource(cfg, rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource creates an iterator with a caller-owned random source, used
// for reproducible generation.
func NewWithSource(cfg Config, src rand.Source) *Iterator {
	it := &Iterator{cfg: cfg, rng: rand.New(src)}
	if cfg.NumAPs <= 0 || cfg.SessionsPerAP <= 0 || cfg.RecordsPerSession <= 0 || cfg.BatchSize <= 0 {
		it.exhausted = true
	}
	return it
}

// Next advances to the next batch. It returns false once the finite sequence
// of devices x sessions x records is exhausted.
func (it *Iterator) Next() bool {
	if it.exhausted {
		return false
	}
	it.batch = make([]domain.TelemetryRecord, 0, it.cfg.BatchSize)
	for it.ap < it.cfg.NumAPs {
		for it.session < it.cfg.SessionsPerAP {
			if it.record == 0 {
				it.startSession()
			}
			for it.record < it.cfg.RecordsPerSession {
				it.batch = append(it.batch, it.nextRecord())
				it.record++
				if len(it.batch) >= it.cfg.BatchSize {
					return true
				}
			}
			it.record = 0
			it.session++
		}
		it.session = 0
		it.ap++
	}
	it.exhausted = true
	// final partial flush
	return len(it.batch) > 0
}

// Batch returns the rows produced by the last call to Next.
func (it *Iterator) Batch() []domain.TelemetryRecord {
	return it.batch
}

// startSession draws the session identity and resets cumulative counters.
func (it *Iterator) startSession() {
	it.sessionID = fmt.Sprintf("AP:%d:%d:S%d", it.ap, it.session, 100000+it.rng.Intn(900000))
	it.userMAC = fmt.Sprintf("00:%02x:%02x:%02x:%02x:%02x",
		10+it.rng.Intn(90), 10+it.rng.Intn(90), 10+it.rng.Intn(90),
		10+it.rng.Intn(90), 10+it.rng.Intn(90))
	it.lastTime = it.cfg.BaseTime.Add(time.Duration(it.rng.Intn(61)) * time.Minute)
	it.bytesIn = 0
	it.bytesOut = 0
	it.packetsIn = 0
	it.packetsOut = 0
}

// nextRecord draws one observation and folds its deltas into the session's
// cumulative counters. Derived fields (SNR, throughput, packet deltas) come
// from the same record's raw draws, never from other records.
func (it *Iterator) nextRecord() domain.TelemetryRecord {
	if it.record > 0 {
		// strictly increasing within the session: advance 1-3 minutes
		it.lastTime = it.lastTime.Add(time.Duration(1+it.rng.Intn(3)) * time.Minute)
	}

	rssi := int64(-85 + it.rng.Intn(41))       // [-85, -45]
	noiseFloor := int64(-95 + it.rng.Intn(21)) // [-95, -75]

	deltaBytesIn := int64(20_000 + it.rng.Intn(80_001))
	deltaBytesOut := int64(20_000 + it.rng.Intn(80_001))
	it.bytesIn += deltaBytesIn
	it.bytesOut += deltaBytesOut
	it.packetsIn += deltaBytesIn / int64(500+it.rng.Intn(1001))
	it.packetsOut += deltaBytesOut / int64(500+it.rng.Intn(1001))

	throughput := float64(deltaBytesIn+deltaBytesOut) * 8 / (60 * 1e6)

	return domain.TelemetryRecord{
		SessionID:      it.sessionID,
		UserMAC:        it.userMAC,
		Timestamp:      it.lastTime.Format(time.RFC3339),
		RSSI:           rssi,
		NoiseFloor:     noiseFloor,
		SNR:            rssi - noiseFloor,
		BytesIn:        it.bytesIn,
		BytesOut:       it.bytesOut,
		PacketsIn:      it.packetsIn,
		PacketsOut:     it.packetsOut,
		ThroughputMbps: round2(throughput),
		Retries:        int64(it.rng.Intn(51)),
		Errors:         int64(it.rng.Intn(11)),
		TxPower:        int64(15 + it.rng.Intn(16)),
		RxPower:        rssi,
		TxRate:         int64(6 + it.rng.Intn(1195)),
		RxRate:         int64(6 + it.rng.Intn(1195)),
		MCSTx:          int64(it.rng.Intn(12)),
		MCSRx:          int64(it.rng.Intn(12)),
		AssocClients:   int64(1 + it.rng.Intn(50)),
		RoamEvents:     int64(it.rng.Intn(6)),
		APTemperature:  round1(25.0 + it.rng.Float64()*20.0),
		UptimeSec:      int64(10_000 + it.rng.Intn(490_001)),
		FWVersion: fmt.Sprintf("%d.%d.%d",
			1+it.rng.Intn(3), it.rng.Intn(10), it.rng.Intn(100)),
		Channel:      channels[it.rng.Intn(len(channels))],
		ChannelWidth: channelWidths[it.rng.Intn(len(channelWidths))],
		APID:         int64(it.ap),
	}
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
