package tagger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketTags/internal/storage/postgres"
)

func TestFileCursorStoreMissing(t *testing.T) {
	store := &FileCursorStore{Path: filepath.Join(t.TempDir(), "missing.json")}

	cursor, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, cursor)
}

func TestFileCursorStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cursor.json")
	store := &FileCursorStore{Path: path, ChainID: "8453"}

	require.NoError(t, store.Save(context.Background(), 1700000000))

	cursor, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(1700000000), cursor)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileCursorStoreChainMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursor.json")
	require.NoError(t, (&FileCursorStore{Path: path, ChainID: "1284"}).Save(context.Background(), 5))

	_, _, err := (&FileCursorStore{Path: path, ChainID: "1285"}).Load(context.Background())
	assert.Error(t, err)
}

func TestFileCursorStoreDirectory(t *testing.T) {
	_, _, err := (&FileCursorStore{Path: t.TempDir()}).Load(context.Background())
	assert.Error(t, err)
}

func TestFileCursorStoreDisabled(t *testing.T) {
	var store *FileCursorStore
	require.NoError(t, store.Save(context.Background(), 1))

	_, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCursorStoreNeverMovesBackwards(t *testing.T) {
	store := &FileCursorStore{Path: filepath.Join(t.TempDir(), "cursor.json"), ChainID: "1284"}

	require.NoError(t, store.Save(context.Background(), 10))
	require.NoError(t, store.Save(context.Background(), 5))

	cursor, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(10), cursor)

	require.NoError(t, store.Save(context.Background(), 20))
	cursor, _, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(20), cursor)
}

func TestFileCursorStoreKeepsOtherChainCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursor.json")
	require.NoError(t, (&FileCursorStore{Path: path, ChainID: "1284"}).Save(context.Background(), 5))

	err := (&FileCursorStore{Path: path, ChainID: "8453"}).Save(context.Background(), 99)
	assert.Error(t, err)

	cursor, _, err := (&FileCursorStore{Path: path, ChainID: "1284"}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), cursor)
}

func TestDBCursorStoreRequiresChainID(t *testing.T) {
	store := &DBCursorStore{Store: &postgres.Store{}}

	_, _, err := store.Load(context.Background())
	assert.Error(t, err)
	assert.Error(t, store.Save(context.Background(), 1))

	var disabled *DBCursorStore
	_, ok, err := disabled.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
