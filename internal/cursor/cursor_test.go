package cursor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	f := New(path)

	want := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	require.NoError(t, f.Store(want))

	got, err := f.Load()
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

func TestCursor_MissingFile(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "missing.toml"))

	_, err := f.Load()
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestCursor_StoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".metadata", "config.toml")
	f := New(path)

	require.NoError(t, f.Store(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestCursor_OverwriteReplacesValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	f := New(path)

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	require.NoError(t, f.Store(first))
	require.NoError(t, f.Store(second))

	got, err := f.Load()
	require.NoError(t, err)
	assert.True(t, got.Equal(second))

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCursor_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[params]\ncurrent_time = \"not-a-time\"\n"), 0o644))

	_, err := New(path).Load()
	assert.Error(t, err)
}

func TestCursor_StoresRFC3339UTC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	f := New(path)

	loc := time.FixedZone("CET", 3600)
	require.NoError(t, f.Store(time.Date(2026, 6, 1, 12, 0, 0, 0, loc)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "2026-06-01T11:00:00Z")
}
