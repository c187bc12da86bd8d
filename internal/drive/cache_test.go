package drive

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(store *fakeStore, defaultParent string) *FolderCache {
	return NewFolderCache(store, defaultParent, nil, slog.Default())
}

func TestRootFolders_CachesWithinTTL(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{roots: []Folder{{ID: "g1", Name: "quiz-night"}}}
	cache := newTestCache(store, "")

	now := time.Now()
	cache.now = func() time.Time { return now }

	first, err := cache.RootFolders(ctx)
	require.NoError(t, err)
	second, err := cache.RootFolders(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.rootCalls, "two calls within the TTL must issue at most one live query")

	// Advance past the TTL: exactly one more live query.
	now = now.Add(DefaultCacheTTL + time.Minute)
	_, err = cache.RootFolders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.rootCalls)
}

func TestInvalidateRoot_ForcesRefetch(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{roots: []Folder{{ID: "g1", Name: "quiz-night"}}}
	cache := newTestCache(store, "")

	_, err := cache.RootFolders(ctx)
	require.NoError(t, err)
	cache.InvalidateRoot()
	_, err = cache.RootFolders(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, store.rootCalls)
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{roots: []Folder{{ID: "g1", Name: "quiz-night"}}}
	cache := newTestCache(store, "")

	assert.False(t, cache.Status().Cached)

	_, err := cache.RootFolders(ctx)
	require.NoError(t, err)

	status := cache.Status()
	assert.True(t, status.Cached)
	assert.True(t, status.Valid)
	assert.Equal(t, 1, status.FolderCount)
	assert.Greater(t, status.ValidRemainingMs, int64(0))

	cache.now = func() time.Time { return time.Now().Add(DefaultCacheTTL + time.Minute) }
	status = cache.Status()
	assert.True(t, status.Cached)
	assert.False(t, status.Valid)
	assert.Equal(t, int64(0), status.ValidRemainingMs)
}

func TestChildren_ParentResolution(t *testing.T) {
	ctx := context.Background()

	store := &fakeStore{
		roots: []Folder{{ID: "g1", Name: "Quiz-Night"}},
		children: map[string][]Folder{
			"g1":  {{ID: "c1", Name: "march"}},
			"def": {{ID: "d1", Name: "default-child"}},
		},
	}

	t.Run("by direct identifier", func(t *testing.T) {
		cache := newTestCache(store, "")
		folders, err := cache.Children(ctx, "g1")
		require.NoError(t, err)
		require.Len(t, folders, 1)
		assert.Equal(t, "c1", folders[0].ID)
	})

	t.Run("by root name case-insensitive", func(t *testing.T) {
		cache := newTestCache(store, "")
		folders, err := cache.Children(ctx, "quiz-night")
		require.NoError(t, err)
		require.Len(t, folders, 1)
		assert.Equal(t, "c1", folders[0].ID)
	})

	t.Run("empty parent uses default", func(t *testing.T) {
		cache := newTestCache(store, "def")
		folders, err := cache.Children(ctx, "")
		require.NoError(t, err)
		require.Len(t, folders, 1)
		assert.Equal(t, "d1", folders[0].ID)
	})

	t.Run("configured default wins over a name match", func(t *testing.T) {
		cache := newTestCache(store, "def")
		folders, err := cache.Children(ctx, "quiz-night")
		require.NoError(t, err)
		require.Len(t, folders, 1)
		assert.Equal(t, "d1", folders[0].ID)
	})

	t.Run("unresolvable parent soft-fails to empty", func(t *testing.T) {
		cache := newTestCache(store, "")
		folders, err := cache.Children(ctx, "no-such-folder")
		require.NoError(t, err)
		assert.Empty(t, folders)
	})
}

func TestChildren_NameMissFallsBackToLiveLookup(t *testing.T) {
	ctx := context.Background()

	// "new-folder" was created after the root listing was cached: it is
	// absent from roots but findable by a live name query.
	store := &fakeStore{
		roots:    []Folder{{ID: "g1", Name: "quiz-night"}},
		byName:   map[string]Folder{"new-folder": {ID: "n1", Name: "new-folder"}},
		children: map[string][]Folder{"n1": {{ID: "nc1", Name: "april"}}},
	}
	cache := newTestCache(store, "")

	folders, err := cache.Children(ctx, "new-folder")
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "nc1", folders[0].ID)
	assert.Equal(t, 1, store.nameCalls)
}

func TestChildren_CachedPerParent(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{
		roots:    []Folder{{ID: "g1", Name: "quiz-night"}},
		children: map[string][]Folder{"g1": {{ID: "c1", Name: "march"}}},
	}
	cache := newTestCache(store, "")

	_, err := cache.Children(ctx, "g1")
	require.NoError(t, err)
	_, err = cache.Children(ctx, "g1")
	require.NoError(t, err)

	assert.Equal(t, 1, store.childCalls)
}

func TestFindRootFolderByName(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{roots: []Folder{{ID: "g1", Name: "Quiz-Night"}}}
	cache := newTestCache(store, "")

	found, err := cache.FindRootFolderByName(ctx, "quiz-night")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "g1", found.ID)

	missing, err := cache.FindRootFolderByName(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
