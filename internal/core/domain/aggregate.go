package domain

// AggregateRow is one reduced summary row per access point per ingestion run.
// Rows are immutable and append-only: the ingestion adapter stamps each one
// with the run timestamp and streams it to the time-series store, which is
// never updated in place.
type AggregateRow struct {
	APID              int64
	UniqueSessions    int64
	AvgRSSI           float64
	MaxNoiseFloor     int64
	AvgNoiseFloor     float64
	AvgSNR            float64
	TotalBytesIn      int64
	TotalBytesOut     int64
	TotalPacketsIn    int64
	TotalPacketsOut   int64
	AvgThroughputMbps float64
	TotalRetries      int64
	TotalErrors       int64
	AvgTxPower        float64
	AvgRxPower        float64
	AvgTxRate         float64
	AvgRxRate         float64
	AvgMCSTx          float64
	AvgMCSRx          float64
	MaxAssocClients   int64
	TotalRoamEvents   int64
	AvgAPTemperature  float64
	MaxUptimeSec      int64
	FWVersion         string
	Channel           int64
	ChannelWidth      int64
	Longitude         float64
	Latitude          float64
	State             string
	Region            string
	Band              string
	VendorSource      string
	VendorName        string
	Model             string
	SSID              string
}

// Reduction identifies how a raw column is folded into its aggregate column.
type Reduction string

const (
	ReduceMean    Reduction = "mean"
	ReduceSum     Reduction = "sum"
	ReduceMax     Reduction = "max"
	ReduceNUnique Reduction = "n_unique"
	ReduceFirst   Reduction = "first"
	ReduceMaxMean Reduction = "max+mean" // two output columns
)

// Reductions maps every reduced raw column to its reduction rule. The
// aggregator validates this table against the raw schema at initialization so
// that a schema change cannot silently drop a column from the reduction.
//
// Note: the sum columns fold the stored cumulative counters, not per-record
// deltas. A session with cumulative bytes_in [100, 250] contributes 350, not
// 250. Per-session deltas are not recovered.
var Reductions = map[string]Reduction{
	"rssi":            ReduceMean,
	"noise_floor":     ReduceMaxMean,
	"snr":             ReduceMean,
	"bytes_in":        ReduceSum,
	"bytes_out":       ReduceSum,
	"packets_in":      ReduceSum,
	"packets_out":     ReduceSum,
	"throughput_mbps": ReduceMean,
	"retries":         ReduceSum,
	"errors":          ReduceSum,
	"tx_power":        ReduceMean,
	"rx_power":        ReduceMean,
	"tx_rate":         ReduceMean,
	"rx_rate":         ReduceMean,
	"mcs_tx":          ReduceMean,
	"mcs_rx":          ReduceMean,
	"assoc_clients":   ReduceMax,
	"roam_events":     ReduceSum,
	"ap_temperature":  ReduceMean,
	"uptime_sec":      ReduceMax,
	"session_id":      ReduceNUnique,
	"fw_version":      ReduceFirst,
	"channel":         ReduceFirst,
	"channel_width":   ReduceFirst,
	"longitude":       ReduceFirst,
	"latitude":        ReduceFirst,
	"state":           ReduceFirst,
	"region":          ReduceFirst,
	"band":            ReduceFirst,
	"vendor_source":   ReduceFirst,
	"vendor_name":     ReduceFirst,
	"model":           ReduceFirst,
	"ssid":            ReduceFirst,
}
