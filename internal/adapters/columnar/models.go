// Package columnar persists pipeline data as zstd-compressed parquet files:
// the device catalog, the raw telemetry rows and the aggregated rows.
package columnar

import (
	"github.com/lcalzada-xor/aptel/internal/core/domain"
)

// fullRow is the parquet model for one joined telemetry row. Column order
// follows the raw wire schema with the catalog columns appended.
type fullRow struct {
	SessionID      string  `parquet:"name=session_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	UserMAC        string  `parquet:"name=user_mac, type=BYTE_ARRAY, convertedtype=UTF8"`
	Timestamp      string  `parquet:"name=timestamp, type=BYTE_ARRAY, convertedtype=UTF8"`
	RSSI           int64   `parquet:"name=rssi, type=INT64"`
	NoiseFloor     int64   `parquet:"name=noise_floor, type=INT64"`
	SNR            int64   `parquet:"name=snr, type=INT64"`
	BytesIn        int64   `parquet:"name=bytes_in, type=INT64"`
	BytesOut       int64   `parquet:"name=bytes_out, type=INT64"`
	PacketsIn      int64   `parquet:"name=packets_in, type=INT64"`
	PacketsOut     int64   `parquet:"name=packets_out, type=INT64"`
	ThroughputMbps float64 `parquet:"name=throughput_mbps, type=DOUBLE"`
	Retries        int64   `parquet:"name=retries, type=INT64"`
	Errors         int64   `parquet:"name=errors, type=INT64"`
	TxPower        int64   `parquet:"name=tx_power, type=INT64"`
	RxPower        int64   `parquet:"name=rx_power, type=INT64"`
	TxRate         int64   `parquet:"name=tx_rate, type=INT64"`
	RxRate         int64   `parquet:"name=rx_rate, type=INT64"`
	MCSTx          int64   `parquet:"name=mcs_tx, type=INT64"`
	MCSRx          int64   `parquet:"name=mcs_rx, type=INT64"`
	AssocClients   int64   `parquet:"name=assoc_clients, type=INT64"`
	RoamEvents     int64   `parquet:"name=roam_events, type=INT64"`
	APTemperature  float64 `parquet:"name=ap_temperature, type=DOUBLE"`
	UptimeSec      int64   `parquet:"name=uptime_sec, type=INT64"`
	FWVersion      string  `parquet:"name=fw_version, type=BYTE_ARRAY, convertedtype=UTF8"`
	Channel        int64   `parquet:"name=channel, type=INT64"`
	ChannelWidth   int64   `parquet:"name=channel_width, type=INT64"`
	APID           int64   `parquet:"name=ap_id, type=INT64"`
	Band           string  `parquet:"name=band, type=BYTE_ARRAY, convertedtype=UTF8"`
	VendorSource   string  `parquet:"name=vendor_source, type=BYTE_ARRAY, convertedtype=UTF8"`
	SSID           string  `parquet:"name=ssid, type=BYTE_ARRAY, convertedtype=UTF8"`
	VendorName     string  `parquet:"name=vendor_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Model          string  `parquet:"name=model, type=BYTE_ARRAY, convertedtype=UTF8"`
	Longitude      float64 `parquet:"name=longitude, type=DOUBLE"`
	Latitude       float64 `parquet:"name=latitude, type=DOUBLE"`
	State          string  `parquet:"name=state, type=BYTE_ARRAY, convertedtype=UTF8"`
	Region         string  `parquet:"name=region, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// catalogRow is the parquet model for one device catalog entry.
type catalogRow struct {
	APID         int64   `parquet:"name=ap_id, type=INT64"`
	Band         string  `parquet:"name=band, type=BYTE_ARRAY, convertedtype=UTF8"`
	VendorSource string  `parquet:"name=vendor_source, type=BYTE_ARRAY, convertedtype=UTF8"`
	SSID         string  `parquet:"name=ssid, type=BYTE_ARRAY, convertedtype=UTF8"`
	VendorName   string  `parquet:"name=vendor_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Model        string  `parquet:"name=model, type=BYTE_ARRAY, convertedtype=UTF8"`
	Longitude    float64 `parquet:"name=longitude, type=DOUBLE"`
	Latitude     float64 `parquet:"name=latitude, type=DOUBLE"`
	State        string  `parquet:"name=state, type=BYTE_ARRAY, convertedtype=UTF8"`
	Region       string  `parquet:"name=region, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// aggRow is the parquet model for one aggregate row.
type aggRow struct {
	APID              int64   `parquet:"name=ap_id, type=INT64"`
	UniqueSessions    int64   `parquet:"name=unique_sessions, type=INT64"`
	AvgRSSI           float64 `parquet:"name=avg_rssi, type=DOUBLE"`
	MaxNoiseFloor     int64   `parquet:"name=max_noise_floor, type=INT64"`
	AvgNoiseFloor     float64 `parquet:"name=avg_noise_floor, type=DOUBLE"`
	AvgSNR            float64 `parquet:"name=avg_snr, type=DOUBLE"`
	TotalBytesIn      int64   `parquet:"name=total_bytes_in, type=INT64"`
	TotalBytesOut     int64   `parquet:"name=total_bytes_out, type=INT64"`
	TotalPacketsIn    int64   `parquet:"name=total_packets_in, type=INT64"`
	TotalPacketsOut   int64   `parquet:"name=total_packets_out, type=INT64"`
	AvgThroughputMbps float64 `parquet:"name=avg_throughput_mbps, type=DOUBLE"`
	TotalRetries      int64   `parquet:"name=total_retries, type=INT64"`
	TotalErrors       int64   `parquet:"name=total_errors, type=INT64"`
	AvgTxPower        float64 `parquet:"name=avg_tx_power, type=DOUBLE"`
	AvgRxPower        float64 `parquet:"name=avg_rx_power, type=DOUBLE"`
	AvgTxRate         float64 `parquet:"name=avg_tx_rate, type=DOUBLE"`
	AvgRxRate         float64 `parquet:"name=avg_rx_rate, type=DOUBLE"`
	AvgMCSTx          float64 `parquet:"name=avg_mcs_tx, type=DOUBLE"`
	AvgMCSRx          float64 `parquet:"name=avg_mcs_rx, type=DOUBLE"`
	MaxAssocClients   int64   `parquet:"name=max_assoc_clients, type=INT64"`
	TotalRoamEvents   int64   `parquet:"name=total_roam_events, type=INT64"`
	AvgAPTemperature  float64 `parquet:"name=avg_ap_temperature, type=DOUBLE"`
	MaxUptimeSec      int64   `parquet:"name=max_uptime_sec, type=INT64"`
	FWVersion         string  `parquet:"name=fw_version, type=BYTE_ARRAY, convertedtype=UTF8"`
	Channel           int64   `parquet:"name=channel, type=INT64"`
	ChannelWidth      int64   `parquet:"name=channel_width, type=INT64"`
	Longitude         float64 `parquet:"name=longitude, type=DOUBLE"`
	Latitude          float64 `parquet:"name=latitude, type=DOUBLE"`
	State             string  `parquet:"name=state, type=BYTE_ARRAY, convertedtype=UTF8"`
	Region            string  `parquet:"name=region, type=BYTE_ARRAY, convertedtype=UTF8"`
	Band              string  `parquet:"name=band, type=BYTE_ARRAY, convertedtype=UTF8"`
	VendorSource      string  `parquet:"name=vendor_source, type=BYTE_ARRAY, convertedtype=UTF8"`
	VendorName        string  `parquet:"name=vendor_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Model             string  `parquet:"name=model, type=BYTE_ARRAY, convertedtype=UTF8"`
	SSID              string  `parquet:"name=ssid, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// toFullRow converts a domain record to its parquet model.
func toFullRow(r domain.FullRecord) fullRow {
	return fullRow{
		SessionID:      r.SessionID,
		UserMAC:        r.UserMAC,
		Timestamp:      r.Timestamp,
		RSSI:           r.RSSI,
		NoiseFloor:     r.NoiseFloor,
		SNR:            r.SNR,
		BytesIn:        r.BytesIn,
		BytesOut:       r.BytesOut,
		PacketsIn:      r.PacketsIn,
		PacketsOut:     r.PacketsOut,
		ThroughputMbps: r.ThroughputMbps,
		Retries:        r.Retries,
		Errors:         r.Errors,
		TxPower:        r.TxPower,
		RxPower:        r.RxPower,
		TxRate:         r.TxRate,
		RxRate:         r.RxRate,
		MCSTx:          r.MCSTx,
		MCSRx:          r.MCSRx,
		AssocClients:   r.AssocClients,
		RoamEvents:     r.RoamEvents,
		APTemperature:  r.APTemperature,
		UptimeSec:      r.UptimeSec,
		FWVersion:      r.FWVersion,
		Channel:        r.Channel,
		ChannelWidth:   r.ChannelWidth,
		APID:           r.APID,
		Band:           r.Band,
		VendorSource:   r.VendorSource,
		SSID:           r.SSID,
		VendorName:     r.VendorName,
		Model:          r.Model,
		Longitude:      r.Longitude,
		Latitude:       r.Latitude,
		State:          r.State,
		Region:         r.Region,
	}
}

// fromFullRow converts a parquet model back to the domain record.
func fromFullRow(r fullRow) domain.FullRecord {
	return domain.FullRecord{
		TelemetryRecord: domain.TelemetryRecord{
			SessionID:      r.SessionID,
			UserMAC:        r.UserMAC,
			Timestamp:      r.Timestamp,
			RSSI:           r.RSSI,
			NoiseFloor:     r.NoiseFloor,
			SNR:            r.SNR,
			BytesIn:        r.BytesIn,
			BytesOut:       r.BytesOut,
			PacketsIn:      r.PacketsIn,
			PacketsOut:     r.PacketsOut,
			ThroughputMbps: r.ThroughputMbps,
			Retries:        r.Retries,
			Errors:         r.Errors,
			TxPower:        r.TxPower,
			RxPower:        r.RxPower,
			TxRate:         r.TxRate,
			RxRate:         r.RxRate,
			MCSTx:          r.MCSTx,
			MCSRx:          r.MCSRx,
			AssocClients:   r.AssocClients,
			RoamEvents:     r.RoamEvents,
			APTemperature:  r.APTemperature,
			UptimeSec:      r.UptimeSec,
			FWVersion:      r.FWVersion,
			Channel:        r.Channel,
			ChannelWidth:   r.ChannelWidth,
			APID:           r.APID,
		},
		Band:         r.Band,
		VendorSource: r.VendorSource,
		SSID:         r.SSID,
		VendorName:   r.VendorName,
		Model:        r.Model,
		Longitude:    r.Longitude,
		Latitude:     r.Latitude,
		State:        r.State,
		Region:       r.Region,
	}
}

func toCatalogRow(a domain.AccessPoint) catalogRow {
	return catalogRow{
		APID:         a.ID,
		Band:         a.Band,
		VendorSource: a.VendorSource,
		SSID:         a.SSID,
		VendorName:   a.VendorName,
		Model:        a.Model,
		Longitude:    a.Longitude,
		Latitude:     a.Latitude,
		State:        a.State,
		Region:       a.Region,
	}
}

func fromCatalogRow(r catalogRow) domain.AccessPoint {
	return domain.AccessPoint{
		ID:           r.APID,
		Band:         r.Band,
		VendorSource: r.VendorSource,
		SSID:         r.SSID,
		VendorName:   r.VendorName,
		Model:        r.Model,
		Longitude:    r.Longitude,
		Latitude:     r.Latitude,
		State:        r.State,
		Region:       r.Region,
	}
}

func toAggRow(a domain.AggregateRow) aggRow {
	return aggRow(a)
}

func fromAggRow(r aggRow) domain.AggregateRow {
	return domain.AggregateRow(r)
}
