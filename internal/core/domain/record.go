package domain

// TelemetryRecord is one point-in-time observation within a session.
// Records are created once by the generator and never mutated; they exist
// only transiently inside a batch before being flushed downstream.
//
// The cumulative counters (BytesIn/Out, PacketsIn/Out) carry running totals
// for their session: they are non-decreasing across successive records and
// reset to zero at session start.
type TelemetryRecord struct {
	SessionID      string
	UserMAC        string
	Timestamp      string // ISO-8601 at generation time
	RSSI           int64
	NoiseFloor     int64
	SNR            int64 // always RSSI - NoiseFloor
	BytesIn        int64
	BytesOut       int64
	PacketsIn      int64
	PacketsOut     int64
	ThroughputMbps float64
	Retries        int64
	Errors         int64
	TxPower        int64
	RxPower        int64
	TxRate         int64
	RxRate         int64
	MCSTx          int64
	MCSRx          int64
	AssocClients   int64
	RoamEvents     int64
	APTemperature  float64
	UptimeSec      int64
	FWVersion      string
	Channel        int64
	ChannelWidth   int64
	APID           int64
}

// FullRecord is a telemetry record joined with the static catalog attributes
// of its access point. This is the row shape written to the raw CSV and
// columnar files.
type FullRecord struct {
	TelemetryRecord
	Band         string
	VendorSource string
	SSID         string
	VendorName   string
	Model        string
	Longitude    float64
	Latitude     float64
	State        string
	Region       string
}

// RawColumns lists the raw telemetry columns in wire order. Consumers that
// address columns by position rely on this ordering.
var RawColumns = []string{
	"session_id", "user_mac", "timestamp", "rssi", "noise_floor", "snr",
	"bytes_in", "bytes_out", "packets_in", "packets_out", "throughput_mbps",
	"retries", "errors", "tx_power", "rx_power", "tx_rate", "rx_rate",
	"mcs_tx", "mcs_rx", "assoc_clients", "roam_events", "ap_temperature",
	"uptime_sec", "fw_version", "channel", "channel_width", "ap_id",
}

// CatalogColumns lists the catalog attributes appended to each raw row by the
// catalog join, in order.
var CatalogColumns = []string{
	"band", "vendor_source", "ssid", "vendor_name", "model",
	"longitude", "latitude", "state", "region",
}

// FullColumns is the complete on-disk row schema: raw columns followed by the
// joined catalog columns.
var FullColumns = append(append([]string{}, RawColumns...), CatalogColumns...)
