package pipeline

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/aptel/internal/config"
	"github.com/lcalzada-xor/aptel/internal/core/domain"
	"github.com/lcalzada-xor/aptel/internal/core/ports"
	"github.com/lcalzada-xor/aptel/internal/core/services/aggregate"
	"github.com/lcalzada-xor/aptel/internal/core/services/sampler"
)

// memStore is an in-memory stand-in for the columnar file store. Paths are
// used as map keys only; nothing touches the filesystem.
type memStore struct {
	catalogs   map[string][]domain.AccessPoint
	rows       map[string][]domain.FullRecord
	aggregates map[string][]domain.AggregateRow

	converted    []string
	catalogReads int
}

func newMemStore() *memStore {
	return &memStore{
		catalogs:   map[string][]domain.AccessPoint{},
		rows:       map[string][]domain.FullRecord{},
		aggregates: map[string][]domain.AggregateRow{},
	}
}

func (m *memStore) Count(path string) (int, error) {
	return len(m.catalogs[path]), nil
}

func (m *memStore) Read(path string) ([]domain.AccessPoint, error) {
	m.catalogReads++
	return m.catalogs[path], nil
}

func (m *memStore) Write(path string, aps []domain.AccessPoint) error {
	m.catalogs[path] = aps
	return nil
}

func (m *memStore) CSVToParquet(input, output string, deleteCSV bool) error {
	m.rows[output] = m.rows[input]
	m.converted = append(m.converted, output)
	if deleteCSV {
		delete(m.rows, input)
	}
	return nil
}

func (m *memStore) ReadFull(path string, fn func([]domain.FullRecord) error) error {
	return fn(m.rows[path])
}

func (m *memStore) WriteAggregates(path string, rows []domain.AggregateRow) error {
	m.aggregates[path] = rows
	return nil
}

func (m *memStore) ReadAggregates(path string) ([]domain.AggregateRow, error) {
	return m.aggregates[path], nil
}

type memBatchWriter struct {
	store *memStore
	path  string
}

func (m *memStore) CreateCSV(path string) (ports.BatchWriter, error) {
	m.rows[path] = nil
	return &memBatchWriter{store: m, path: path}, nil
}

func (w *memBatchWriter) Append(rows []domain.FullRecord) error {
	w.store.rows[w.path] = append(w.store.rows[w.path], rows...)
	return nil
}

func (w *memBatchWriter) Close() error { return nil }

type fakeProvisioner struct {
	schemaCalls int
	indexCalls  int
}

func (f *fakeProvisioner) EnsureSchema(ctx context.Context) error {
	f.schemaCalls++
	return nil
}

func (f *fakeProvisioner) EnsureIndexes(ctx context.Context) ([]string, error) {
	f.indexCalls++
	if f.indexCalls == 1 {
		return []string{"ap_id"}, nil
	}
	return nil, nil
}

type fakeSender struct {
	table string
	ts    time.Time
	rows  []domain.AggregateRow
}

func (f *fakeSender) Send(ctx context.Context, table string, ts time.Time, rows []domain.AggregateRow) error {
	f.table = table
	f.ts = ts
	f.rows = rows
	return nil
}

func (f *fakeSender) Close(ctx context.Context) error { return nil }

type unitSquareGeocoder struct{}

func (unitSquareGeocoder) StateBoundary(ctx context.Context, state string) (orb.MultiPolygon, error) {
	return orb.MultiPolygon{{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}}, nil
}

func testFixture(t *testing.T, cfg *config.Config, store *memStore) (*Pipeline, *fakeProvisioner, *fakeSender) {
	t.Helper()
	aggregator, err := aggregate.New(store)
	require.NoError(t, err)

	prov := &fakeProvisioner{}
	sender := &fakeSender{}
	p := New(
		cfg,
		sampler.NewAttributeSamplerWithSource(rand.NewSource(1)),
		sampler.NewLocationSamplerWithSource(unitSquareGeocoder{}, rand.NewSource(2)),
		store,
		aggregator,
		prov,
		sender,
	)
	return p, prov, sender
}

func testPipelineConfig() *config.Config {
	return &config.Config{
		NumAPs:            4,
		SessionsPerAP:     2,
		RecordsPerSession: 3,
		BatchSize:         1000,
		DataDir:           "data",
		CatalogPath:       "data/.metadata/access_points/data.parquet",
		CursorStep:        time.Hour,
		Table:             "wifi_metrics",
	}
}

func TestPipeline_RunAdvancesCursor(t *testing.T) {
	cfg := testPipelineConfig()
	p, _, _ := testFixture(t, cfg, newMemStore())

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	next, err := p.Run(context.Background(), base)
	require.NoError(t, err)
	assert.True(t, next.Equal(base.Add(time.Hour)))
}

func TestPipeline_EndToEnd(t *testing.T) {
	cfg := testPipelineConfig()
	store := newMemStore()
	p, prov, sender := testFixture(t, cfg, store)

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	_, err := p.Run(context.Background(), base)
	require.NoError(t, err)

	// catalog generated once, with merged locations
	catalog := store.catalogs[cfg.CatalogPath]
	require.Len(t, catalog, cfg.NumAPs)
	for _, ap := range catalog {
		assert.NotEmpty(t, ap.State)
		assert.NotEmpty(t, ap.Region)
		assert.NotEmpty(t, ap.Band)
	}

	// conversion ran on the generated rows
	require.Len(t, store.converted, 1)
	rows := store.rows[store.converted[0]]
	assert.Len(t, rows, cfg.NumAPs*cfg.SessionsPerAP*cfg.RecordsPerSession)

	// every generated row carries its device's catalog attributes
	byID := map[int64]domain.AccessPoint{}
	for _, ap := range catalog {
		byID[ap.ID] = ap
	}
	for _, r := range rows {
		assert.Equal(t, byID[r.APID].Band, r.Band)
		assert.Equal(t, byID[r.APID].State, r.State)
	}

	// provisioning ran before ingestion, one aggregate row per device
	assert.Equal(t, 1, prov.schemaCalls)
	assert.Equal(t, 1, prov.indexCalls)
	assert.Equal(t, cfg.Table, sender.table)
	assert.True(t, sender.ts.Equal(base))
	require.Len(t, sender.rows, cfg.NumAPs)
	for _, row := range sender.rows {
		assert.Equal(t, int64(cfg.SessionsPerAP), row.UniqueSessions)
	}
}

func TestPipeline_CatalogReusedWhenLargeEnough(t *testing.T) {
	cfg := testPipelineConfig()
	store := newMemStore()

	existing := make([]domain.AccessPoint, cfg.NumAPs)
	for i := range existing {
		existing[i] = domain.AccessPoint{
			ID:    int64(i),
			Band:  "5GHz",
			State: "Texas",
		}
	}
	require.NoError(t, store.Write(cfg.CatalogPath, existing))

	p, _, sender := testFixture(t, cfg, store)
	_, err := p.Run(context.Background(), time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// the catalog on disk is untouched and its attributes flow through
	assert.Equal(t, existing, store.catalogs[cfg.CatalogPath])
	for _, row := range sender.rows {
		assert.Equal(t, "Texas", row.State)
	}
}

func TestPipeline_CatalogRegeneratedWhenTooSmall(t *testing.T) {
	cfg := testPipelineConfig()
	store := newMemStore()

	require.NoError(t, store.Write(cfg.CatalogPath, make([]domain.AccessPoint, cfg.NumAPs-1)))

	p, _, _ := testFixture(t, cfg, store)
	_, err := p.Run(context.Background(), time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Len(t, store.catalogs[cfg.CatalogPath], cfg.NumAPs)
}
