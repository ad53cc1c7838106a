package questdb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMetadataStore records executed statements and simulates index state.
type fakeMetadataStore struct {
	stmts   []string
	indexed map[string]bool
	execErr error
	metaErr error
}

func (f *fakeMetadataStore) Exec(ctx context.Context, stmt string) error {
	if f.execErr != nil {
		return f.execErr
	}
	f.stmts = append(f.stmts, stmt)
	return nil
}

func (f *fakeMetadataStore) IndexedColumns(ctx context.Context, table string) (map[string]bool, error) {
	if f.metaErr != nil {
		return nil, f.metaErr
	}
	return f.indexed, nil
}

func TestProvisioner_EnsureSchemaExecutesDDL(t *testing.T) {
	store := &fakeMetadataStore{}
	p := NewProvisioner(store, "wifi_metrics", nil)

	require.NoError(t, p.EnsureSchema(context.Background()))
	require.Len(t, store.stmts, 1)
	assert.Contains(t, store.stmts[0], "CREATE TABLE IF NOT EXISTS wifi_metrics")
	assert.Contains(t, store.stmts[0], "PARTITION BY DAY")
}

func TestProvisioner_EnsureIndexesCreatesMissing(t *testing.T) {
	store := &fakeMetadataStore{indexed: map[string]bool{"ap_id": true}}
	p := NewProvisioner(store, "wifi_metrics", []string{"ap_id", "channel", "band"})

	created, err := p.EnsureIndexes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"channel", "band"}, created)
	assert.Equal(t, []string{
		"ALTER TABLE wifi_metrics ALTER COLUMN channel ADD INDEX",
		"ALTER TABLE wifi_metrics ALTER COLUMN band ADD INDEX",
	}, store.stmts)
}

func TestProvisioner_EnsureIndexesIdempotent(t *testing.T) {
	store := &fakeMetadataStore{indexed: map[string]bool{
		"ap_id": true, "channel": true, "band": true,
	}}
	p := NewProvisioner(store, "wifi_metrics", []string{"ap_id", "channel", "band"})

	created, err := p.EnsureIndexes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Empty(t, store.stmts)
}

func TestProvisioner_EnsureIndexesMetadataError(t *testing.T) {
	store := &fakeMetadataStore{metaErr: errors.New("connection refused")}
	p := NewProvisioner(store, "wifi_metrics", []string{"ap_id"})

	_, err := p.EnsureIndexes(context.Background())
	assert.Error(t, err)
}

func TestProvisioner_EnsureIndexesExecError(t *testing.T) {
	store := &fakeMetadataStore{execErr: errors.New("table does not exist")}
	p := NewProvisioner(store, "wifi_metrics", []string{"ap_id"})

	created, err := p.EnsureIndexes(context.Background())
	assert.Error(t, err)
	assert.Empty(t, created)
}
