package revision

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_AddGet(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	first, err := store.Add(ctx, "page/1", "alice", "Hello world.")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Number)

	second, err := store.Add(ctx, "page/1", "bob", "Hello brave new world.")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Number)

	// Numbering is per entity.
	other, err := store.Add(ctx, "page/2", "alice", "Other")
	require.NoError(t, err)
	assert.Equal(t, 1, other.Number)

	got, err := store.Get(ctx, "page/1", 1)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	latest, err := store.Latest(ctx, "page/1")
	require.NoError(t, err)
	assert.Equal(t, second, latest)

	revs, err := store.List(ctx, "page/1")
	require.NoError(t, err)
	assert.Equal(t, []Revision{first, second}, revs)
}

func TestSQLiteStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.Get(ctx, "missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Latest(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.List(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Add(ctx, "", "alice", "text")
	assert.Error(t, err)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "revisions.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	rev, err := store.Add(ctx, "doc", "alice", "ünïcödé 💩")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Latest(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, rev, got)
}
