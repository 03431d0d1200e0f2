package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/chiclet/internal/core/identity"
	"github.com/colonyops/chiclet/internal/core/selection"
	"github.com/colonyops/chiclet/internal/data/db"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func newTestSelectionStore(t *testing.T, database *db.DB, maxSelected int) *SelectionStore {
	t.Helper()
	store, err := NewSelectionStore(context.Background(), database, "regions.yaml", maxSelected)
	require.NoError(t, err)
	return store
}

func TestSelectionStore_Replace(t *testing.T) {
	ctx := context.Background()
	store := newTestSelectionStore(t, openTestDB(t), 0)

	got, err := store.Select(ctx, []identity.ID{"a", "b", "a"}, false)
	require.NoError(t, err)
	assert.Equal(t, []identity.ID{"a", "b"}, got)
	assert.True(t, store.HasSelection())

	got, err = store.Select(ctx, []identity.ID{"c"}, false)
	require.NoError(t, err)
	assert.Equal(t, []identity.ID{"c"}, got)
}

func TestSelectionStore_AdditiveToggles(t *testing.T) {
	ctx := context.Background()
	store := newTestSelectionStore(t, openTestDB(t), 0)

	_, err := store.Select(ctx, []identity.ID{"a", "b"}, false)
	require.NoError(t, err)

	got, err := store.Select(ctx, []identity.ID{"b", "c"}, true)
	require.NoError(t, err)
	assert.Equal(t, []identity.ID{"a", "c"}, got)
}

func TestSelectionStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := newTestSelectionStore(t, openTestDB(t), 0)

	got, err := store.Clear(ctx)
	require.NoError(t, err, "clearing an empty selection is fine")
	assert.Empty(t, got)

	_, err = store.Select(ctx, []identity.ID{"a"}, false)
	require.NoError(t, err)
	_, err = store.Clear(ctx)
	require.NoError(t, err)
	assert.False(t, store.HasSelection())
	assert.Empty(t, store.Selected())
}

func TestSelectionStore_MaxSelected(t *testing.T) {
	ctx := context.Background()
	store := newTestSelectionStore(t, openTestDB(t), 2)

	got, err := store.Select(ctx, []identity.ID{"a", "b", "c"}, false)
	require.NoError(t, err)
	assert.Equal(t, []identity.ID{"a", "b"}, got, "identities beyond the cap are rejected")

	got, err = store.Select(ctx, []identity.ID{"d"}, true)
	require.NoError(t, err)
	assert.Equal(t, []identity.ID{"a", "b"}, got)
}

func TestSelectionStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	first := newTestSelectionStore(t, database, 0)
	_, err := first.Select(ctx, []identity.ID{"z", "a"}, false)
	require.NoError(t, err)

	second := newTestSelectionStore(t, database, 0)
	assert.Equal(t, []identity.ID{"z", "a"}, second.Selected(), "selection order survives")

	other, err := NewSelectionStore(ctx, database, "other.yaml", 0)
	require.NoError(t, err)
	assert.False(t, other.HasSelection(), "scopes are isolated")

	scopes, err := Scopes(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, []string{"regions.yaml"}, scopes)
}

func TestSelectionStore_RangeThroughExecute(t *testing.T) {
	ctx := context.Background()
	store := newTestSelectionStore(t, openTestDB(t), 0)

	_, err := store.Select(ctx, []identity.ID{"b", "x"}, false)
	require.NoError(t, err)

	res := selection.Execute(ctx, store, selection.Request{
		Token: 1,
		Kind:  selection.KindRange,
		IDs:   []identity.ID{"b", "c", "d"},
	})
	require.NoError(t, res.Err)
	assert.Equal(t, []identity.ID{"b", "c", "d"}, res.IDs)
	assert.Equal(t, res.IDs, store.Selected())
}

func TestPropertyStore(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	store := NewPropertyStore(database, "regions.yaml")

	require.NoError(t, store.Persist(ctx, "general", map[string]any{
		"searchText": "ea",
		"filter":     map[string]any{"scope_ids": []string{"east"}, "is_not": false},
	}))
	require.NoError(t, store.Persist(ctx, "general", map[string]any{"searchText": "we"}))

	props, err := store.Properties(ctx, "general")
	require.NoError(t, err)
	assert.Equal(t, "we", props["searchText"], "upsert overwrites")
	assert.Equal(t, map[string]any{"scope_ids": []any{"east"}, "is_not": false}, props["filter"])

	missing, err := store.Properties(ctx, "header")
	require.NoError(t, err)
	assert.Empty(t, missing)

	objects, err := store.Objects(ctx)
	require.NoError(t, err)
	assert.Len(t, objects["general"], 2)

	other := NewPropertyStore(database, "other.yaml")
	otherProps, err := other.Properties(ctx, "general")
	require.NoError(t, err)
	assert.Empty(t, otherProps)

	require.NoError(t, store.Delete(ctx))
	objects, err = store.Objects(ctx)
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestRecoverFromCorruption(t *testing.T) {
	dir := t.TempDir()
	dbPath := db.Path(dir)
	require.NoError(t, os.WriteFile(dbPath, []byte("not a database"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("wal"), 0o644))

	backup, err := RecoverFromCorruption(dir)
	require.NoError(t, err)

	assert.NoFileExists(t, dbPath)
	assert.NoFileExists(t, dbPath+"-wal")
	assert.FileExists(t, backup)
	assert.FileExists(t, backup+"-wal")
	assert.Equal(t, dir, filepath.Dir(backup))

	database, err := db.Open(dir, db.DefaultOpenOptions())
	require.NoError(t, err)
	_ = database.Close()
}

func TestErrorClassifiers(t *testing.T) {
	assert.False(t, IsCorruptionError(nil))
	assert.False(t, IsCorruptionError(assert.AnError))
	assert.True(t, IsCorruptionError(fmt.Errorf("query: %w", errors.New("database disk image is malformed"))))

	assert.False(t, IsBusyError(assert.AnError))

	assert.True(t, IsNotFoundError(fmt.Errorf("get: %w", sql.ErrNoRows)))
	assert.False(t, IsNotFoundError(assert.AnError))
}
