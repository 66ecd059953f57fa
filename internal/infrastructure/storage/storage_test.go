package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/core/internal/infrastructure/config"
)

func testConfig(t *testing.T) config.StoreConfig {
	t.Helper()
	return config.StoreConfig{
		Path:   filepath.Join(t.TempDir(), "data", "products.json"),
		Pretty: true,
	}
}

func TestNew_InitializesEmptyCollection(t *testing.T) {
	cfg := testConfig(t)

	store, err := New(cfg)
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, store.Read(&items))
	assert.Empty(t, items)
}

func TestNew_KeepsExistingFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Path), 0o755))
	require.NoError(t, os.WriteFile(cfg.Path, []byte(`[{"id":"p1"}]`), 0o644))

	store, err := New(cfg)
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, store.Read(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0]["id"])
}

func TestWrite_RoundTrip(t *testing.T) {
	store, err := New(testConfig(t))
	require.NoError(t, err)

	in := []map[string]any{{"id": "a"}, {"id": "b"}}
	require.NoError(t, store.Write(in))

	var out []map[string]any
	require.NoError(t, store.Read(&out))
	assert.Len(t, out, 2)
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	cfg := testConfig(t)
	store, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, store.Write([]string{"x"}))

	entries, err := os.ReadDir(filepath.Dir(cfg.Path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(cfg.Path), entries[0].Name())
}

func TestRead_CorruptedFileSurfacesError(t *testing.T) {
	cfg := testConfig(t)
	store, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfg.Path, []byte("{not json"), 0o644))

	var out []map[string]any
	err = store.Read(&out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestHealthCheck(t *testing.T) {
	cfg := testConfig(t)
	store, err := New(cfg)
	require.NoError(t, err)

	assert.NoError(t, store.HealthCheck())

	require.NoError(t, os.WriteFile(cfg.Path, []byte("oops"), 0o644))
	assert.Error(t, store.HealthCheck())
}
