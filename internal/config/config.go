package config

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Generation
	NumAPs            int
	SessionsPerAP     int
	RecordsPerSession int
	BatchSize         int

	// Paths
	DataDir     string
	CatalogPath string
	CursorPath  string
	DeleteCSV   bool

	// Time cursor
	CursorStep time.Duration

	// Target store
	ILPConf      string
	PGDSN        string
	Table        string
	IndexColumns []string

	// Search API
	Addr string

	// Geocoding
	NominatimURL string

	Debug bool
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables.
func Load() *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.NumAPs = getEnvInt("APTEL_APS", 100)
	cfg.SessionsPerAP = getEnvInt("APTEL_SESSIONS", 2)
	cfg.RecordsPerSession = getEnvInt("APTEL_RECORDS", 1)
	cfg.BatchSize = getEnvInt("APTEL_BATCH", 1_000_000)
	cfg.DataDir = getEnv("APTEL_DATA", "data")
	cfg.CursorStep = time.Duration(getEnvInt("APTEL_CURSOR_STEP_HOURS", 1)) * time.Hour
	cfg.ILPConf = getEnv("APTEL_ILP", "http::addr=localhost:9000;")
	cfg.PGDSN = getEnv("APTEL_PG", "host=localhost port=8812 user=admin password=quest dbname=qdb sslmode=disable")
	cfg.Table = getEnv("APTEL_TABLE", "wifi_metrics")
	indexCols := getEnv("APTEL_INDEX_COLUMNS", "ap_id,channel,band,state,region")
	cfg.Addr = getEnv("APTEL_ADDR", ":8000")
	cfg.NominatimURL = getEnv("APTEL_NOMINATIM", "https://nominatim.openstreetmap.org")

	// Command Line Flags (Override Env)
	flag.IntVar(&cfg.NumAPs, "aps", cfg.NumAPs, "Number of access points to simulate")
	flag.IntVar(&cfg.SessionsPerAP, "sessions", cfg.SessionsPerAP, "Sessions per access point")
	flag.IntVar(&cfg.RecordsPerSession, "records", cfg.RecordsPerSession, "Records per session")
	flag.IntVar(&cfg.BatchSize, "batch", cfg.BatchSize, "Maximum rows per generated batch")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Data directory for CSV and columnar files")
	flag.BoolVar(&cfg.DeleteCSV, "delete-csv", false, "Delete the raw CSV after columnar conversion")
	flag.StringVar(&cfg.ILPConf, "ilp", cfg.ILPConf, "QuestDB ILP sender configuration string")
	flag.StringVar(&cfg.PGDSN, "pg", cfg.PGDSN, "QuestDB postgres-wire DSN")
	flag.StringVar(&cfg.Table, "table", cfg.Table, "Metrics table name")
	flag.StringVar(&indexCols, "index-columns", indexCols, "Columns to index (comma separated)")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Search API listen address")
	flag.StringVar(&cfg.NominatimURL, "nominatim", cfg.NominatimURL, "Geocoding service base URL")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")

	flag.Parse()

	cfg.IndexColumns = parseList(indexCols)
	cfg.CatalogPath = filepath.Join(cfg.DataDir, ".metadata", "access_points", "data.parquet")
	cfg.CursorPath = filepath.Join(cfg.DataDir, ".metadata", "config.toml")

	return cfg
}

func parseList(s string) []string {
	var items []string
	for _, p := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
