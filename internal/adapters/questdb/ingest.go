package questdb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	qdb "github.com/questdb/go-questdb-client/v3"

	"github.com/lcalzada-xor/aptel/internal/core/domain"
)

// Sender streams aggregate rows to QuestDB over the influx line protocol,
// one line per row, with the run timestamp bound as the designated event
// timestamp. Append-only; a mid-stream failure leaves whatever the writer
// already flushed (no transaction, no retry).
type Sender struct {
	sender qdb.LineSender
}

// NewSender creates a sender from a QuestDB configuration string, e.g.
// "http::addr=localhost:9000;".
func NewSender(ctx context.Context, conf string) (*Sender, error) {
	s, err := qdb.LineSenderFromConf(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("create line sender: %w", err)
	}
	return &Sender{sender: s}, nil
}

// Send appends the rows to table, stamping every line with ts.
func (s *Sender) Send(ctx context.Context, table string, ts time.Time, rows []domain.AggregateRow) error {
	for _, r := range rows {
		err := s.sender.Table(table).
			Symbol("ap_id", domain.APLabel(r.APID)).
			Symbol("channel", strconv.FormatInt(r.Channel, 10)).
			Symbol("band", r.Band).
			Symbol("state", r.State).
			Symbol("region", r.Region).
			Symbol("vendor_source", r.VendorSource).
			Symbol("vendor_name", r.VendorName).
			Symbol("model", r.Model).
			Symbol("ssid", r.SSID).
			Int64Column("unique_sessions", r.UniqueSessions).
			Float64Column("avg_rssi", r.AvgRSSI).
			Int64Column("max_noise_floor", r.MaxNoiseFloor).
			Float64Column("avg_noise_floor", r.AvgNoiseFloor).
			Float64Column("avg_snr", r.AvgSNR).
			Int64Column("total_bytes_in", r.TotalBytesIn).
			Int64Column("total_bytes_out", r.TotalBytesOut).
			Int64Column("total_packets_in", r.TotalPacketsIn).
			Int64Column("total_packets_out", r.TotalPacketsOut).
			Float64Column("avg_throughput_mbps", r.AvgThroughputMbps).
			Int64Column("total_retries", r.TotalRetries).
			Int64Column("total_errors", r.TotalErrors).
			Float64Column("avg_tx_power", r.AvgTxPower).
			Float64Column("avg_rx_power", r.AvgRxPower).
			Float64Column("avg_tx_rate", r.AvgTxRate).
			Float64Column("avg_rx_rate", r.AvgRxRate).
			Float64Column("avg_mcs_tx", r.AvgMCSTx).
			Float64Column("avg_mcs_rx", r.AvgMCSRx).
			Int64Column("max_assoc_clients", r.MaxAssocClients).
			Int64Column("total_roam_events", r.TotalRoamEvents).
			Float64Column("avg_ap_temperature", r.AvgAPTemperature).
			Int64Column("max_uptime_sec", r.MaxUptimeSec).
			StringColumn("fw_version", r.FWVersion).
			Int64Column("channel_width", r.ChannelWidth).
			Float64Column("longitude", r.Longitude).
			Float64Column("latitude", r.Latitude).
			At(ctx, ts)
		if err != nil {
			return fmt.Errorf("send row ap_id=%d: %w", r.APID, err)
		}
	}
	if err := s.sender.Flush(ctx); err != nil {
		return fmt.Errorf("flush ingestion: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *Sender) Close(ctx context.Context) error {
	return s.sender.Close(ctx)
}
