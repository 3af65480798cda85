package history

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/cpitrend/schema"
)

func TestStoreManagerConcurrency(t *testing.T) {
	mgr := &StoreManager{}
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			mgr.Lock()
			mgr.store = store
			mgr.Unlock()
		}()
		go func() {
			defer wg.Done()
			_ = mgr.GetHistoryStore()
		}()
	}
	wg.Wait()
	assert.Equal(t, store, mgr.GetHistoryStore())
}

func TestClear(t *testing.T) {
	t.Run("sqlite removes file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.db")
		store, err := NewStore(schema.SQLiteBackend, path)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		require.NoError(t, Clear(schema.SQLiteBackend, path, ""))
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("sqlite missing file", func(t *testing.T) {
		assert.NoError(t, Clear(schema.SQLiteBackend, filepath.Join(t.TempDir(), "absent.db"), ""))
	})

	t.Run("sqlite empty path", func(t *testing.T) {
		assert.Error(t, Clear(schema.SQLiteBackend, "", ""))
	})

	t.Run("none", func(t *testing.T) {
		assert.NoError(t, Clear(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, Clear(schema.DatabaseBackend("oracle"), "", ""))
	})
}

func TestMigrate_NoneBackend(t *testing.T) {
	err := Migrate(&bytes.Buffer{}, schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not supported for NoneBackend")
}

func TestMigrate_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")
	var buf bytes.Buffer

	require.NoError(t, Migrate(&buf, schema.SQLiteBackend, path, -1))
	assert.Contains(t, buf.String(), "to version 2")

	buf.Reset()
	require.NoError(t, Migrate(&buf, schema.SQLiteBackend, path, -1))
	assert.Contains(t, buf.String(), "already at the latest version")

	require.NoError(t, Migrate(&buf, schema.SQLiteBackend, path, 1))
	require.NoError(t, Migrate(&buf, schema.SQLiteBackend, path, 0))
	require.NoError(t, Migrate(&buf, schema.SQLiteBackend, path, -1))

	// A migrated database is usable by the store.
	store, err := NewStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	_, err = store.BeginRun(context.Background(), time.Now(), "cpi.csv", "CPI", nil)
	assert.NoError(t, err)
}

func TestExportParquet(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	prefix := filepath.Join(t.TempDir(), "export")

	err := ExportParquet(ctx, &bytes.Buffer{}, store, prefix)
	assert.ErrorContains(t, err, "no history data")

	runID, err := store.BeginRun(ctx, time.Now(), "cpi.csv", "CPI", nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordObservations(ctx, runID, reportRows()))
	require.NoError(t, store.EndRun(ctx, runID, time.Now(), schema.RunSummary{Observations: 3}))

	var buf bytes.Buffer
	require.NoError(t, ExportParquet(ctx, &buf, store, prefix))
	assert.Contains(t, buf.String(), "Exported 1 runs")
	assert.Contains(t, buf.String(), "Exported 3 observations")

	for _, suffix := range []string{".runs.parquet", ".observations.parquet"} {
		info, err := os.Stat(prefix + suffix)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	assert.Error(t, ExportParquet(ctx, &buf, store, ""))
}
