package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okgoogle13/resume-copilot/internal/types"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	profile := types.SeedProfile("Dana Okafor", "dana@example.com")
	profile.CareerSummary = "Ten years in community programs."
	profile.Experience = []types.Experience{
		{JobTitle: "Coordinator", Responsibilities: []string{"Rosters"}},
	}

	require.NoError(t, store.Save(ctx, "user-1", profile))

	loaded, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, profile, loaded)
}

func TestFileStoreLoadAbsent(t *testing.T) {
	store := newTestStore(t)

	profile, err := store.Load(context.Background(), "never-saved")

	assert.NoError(t, err)
	assert.Nil(t, profile)
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := types.SeedProfile("Dana", "dana@example.com")
	require.NoError(t, store.Save(ctx, "user-1", first))

	second := types.SeedProfile("Dana Okafor", "dana@example.com")
	second.CareerSummary = "Updated."
	require.NoError(t, store.Save(ctx, "user-1", second))

	loaded, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Updated.", loaded.CareerSummary)
}

func TestFileStoreRejectsNilProfile(t *testing.T) {
	store := newTestStore(t)

	err := store.Save(context.Background(), "user-1", nil)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "save", perr.Op)
}

func TestFileStoreRejectsPathEscapes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	profile := types.SeedProfile("Dana", "dana@example.com")

	for _, id := range []string{"", "../evil", "a/b", `a\b`} {
		var perr *PersistenceError
		require.ErrorAs(t, store.Save(ctx, id, profile), &perr, "id %q", id)

		_, err := store.Load(ctx, id)
		require.ErrorAs(t, err, &perr, "id %q", id)
	}
}

func TestFileStoreLoadCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user-1.json"), []byte("{broken"), 0o644))

	_, err = store.Load(context.Background(), "user-1")

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "load", perr.Op)
	assert.Equal(t, "user-1", perr.UserID)
}

func TestNewFileStoreEmptyDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}
