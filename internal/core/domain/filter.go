package domain

import (
	"errors"
	"time"
)

// Domain errors for search filtering
var (
	ErrInvalidTimeRange = errors.New("from must be earlier than to")
)

// DefaultSearchWindow is applied when a search request omits its time bounds.
const DefaultSearchWindow = 24 * time.Hour

// SearchFilter defines criteria for querying aggregated metrics: a time
// window plus optional equality filters on the indexed qualifiers.
type SearchFilter struct {
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
	APID    string    `json:"ap_id"`
	Channel string    `json:"channel"`
	Band    string    `json:"band"`
	State   string    `json:"state"`
	Region  string    `json:"region"`
}

// ApplyDefaults fills missing time bounds with the default window ending at
// now: [now - 24h, now).
func (f *SearchFilter) ApplyDefaults(now time.Time) {
	if f.From.IsZero() {
		f.From = now.Add(-DefaultSearchWindow)
	}
	if f.To.IsZero() {
		f.To = now
	}
}

// Validate ensures the filter describes a coherent time window.
func (f *SearchFilter) Validate() error {
	if !f.From.Before(f.To) {
		return ErrInvalidTimeRange
	}
	return nil
}

// MetricRow is one stored aggregate row as returned by the search API.
// Field names map 1:1 to the time-series table columns.
type MetricRow struct {
	APID              string    `gorm:"column:ap_id" json:"ap_id"`
	UniqueSessions    int64     `gorm:"column:unique_sessions" json:"unique_sessions"`
	AvgRSSI           float64   `gorm:"column:avg_rssi" json:"avg_rssi"`
	MaxNoiseFloor     int64     `gorm:"column:max_noise_floor" json:"max_noise_floor"`
	AvgNoiseFloor     float64   `gorm:"column:avg_noise_floor" json:"avg_noise_floor"`
	AvgSNR            float64   `gorm:"column:avg_snr" json:"avg_snr"`
	TotalBytesIn      int64     `gorm:"column:total_bytes_in" json:"total_bytes_in"`
	TotalBytesOut     int64     `gorm:"column:total_bytes_out" json:"total_bytes_out"`
	TotalPacketsIn    int64     `gorm:"column:total_packets_in" json:"total_packets_in"`
	TotalPacketsOut   int64     `gorm:"column:total_packets_out" json:"total_packets_out"`
	AvgThroughputMbps float64   `gorm:"column:avg_throughput_mbps" json:"avg_throughput_mbps"`
	TotalRetries      int64     `gorm:"column:total_retries" json:"total_retries"`
	TotalErrors       int64     `gorm:"column:total_errors" json:"total_errors"`
	AvgTxPower        float64   `gorm:"column:avg_tx_power" json:"avg_tx_power"`
	AvgRxPower        float64   `gorm:"column:avg_rx_power" json:"avg_rx_power"`
	AvgTxRate         float64   `gorm:"column:avg_tx_rate" json:"avg_tx_rate"`
	AvgRxRate         float64   `gorm:"column:avg_rx_rate" json:"avg_rx_rate"`
	AvgMCSTx          float64   `gorm:"column:avg_mcs_tx" json:"avg_mcs_tx"`
	AvgMCSRx          float64   `gorm:"column:avg_mcs_rx" json:"avg_mcs_rx"`
	MaxAssocClients   int64     `gorm:"column:max_assoc_clients" json:"max_assoc_clients"`
	TotalRoamEvents   int64     `gorm:"column:total_roam_events" json:"total_roam_events"`
	AvgAPTemperature  float64   `gorm:"column:avg_ap_temperature" json:"avg_ap_temperature"`
	MaxUptimeSec      int64     `gorm:"column:max_uptime_sec" json:"max_uptime_sec"`
	FWVersion         string    `gorm:"column:fw_version" json:"fw_version"`
	Channel           string    `gorm:"column:channel" json:"channel"`
	ChannelWidth      int64     `gorm:"column:channel_width" json:"channel_width"`
	Longitude         float64   `gorm:"column:longitude" json:"longitude"`
	Latitude          float64   `gorm:"column:latitude" json:"latitude"`
	State             string    `gorm:"column:state" json:"state"`
	Region            string    `gorm:"column:region" json:"region"`
	Band              string    `gorm:"column:band" json:"band"`
	VendorSource      string    `gorm:"column:vendor_source" json:"vendor_source"`
	VendorName        string    `gorm:"column:vendor_name" json:"vendor_name"`
	Model             string    `gorm:"column:model" json:"model"`
	SSID              string    `gorm:"column:ssid" json:"ssid"`
	Timestamp         time.Time `gorm:"column:timestamp" json:"timestamp"`
}
