package drive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store with call counting.
type fakeStore struct {
	roots    []Folder
	children map[string][]Folder
	images   map[string][]Photo
	byName   map[string]Folder

	rootCalls  int
	childCalls int
	nameCalls  int
}

func (s *fakeStore) ListRootFolders(ctx context.Context) ([]Folder, error) {
	s.rootCalls++
	return s.roots, nil
}

func (s *fakeStore) ListChildFolders(ctx context.Context, parentID string) ([]Folder, error) {
	s.childCalls++
	return s.children[parentID], nil
}

func (s *fakeStore) GetFolder(ctx context.Context, id string) (*Folder, error) {
	for i := range s.roots {
		if s.roots[i].ID == id {
			return &s.roots[i], nil
		}
	}
	for _, kids := range s.children {
		for i := range kids {
			if kids[i].ID == id {
				return &kids[i], nil
			}
		}
	}
	return nil, nil
}

func (s *fakeStore) FindFolderByName(ctx context.Context, name string) (*Folder, error) {
	s.nameCalls++
	for i := range s.roots {
		if s.roots[i].Name == name {
			return &s.roots[i], nil
		}
	}
	if f, ok := s.byName[name]; ok {
		return &f, nil
	}
	return nil, nil
}

func (s *fakeStore) ListImages(ctx context.Context, folderID string, limit int) ([]Photo, error) {
	return s.images[folderID], nil
}

func (s *fakeStore) Download(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	return nil, "", fmt.Errorf("not implemented")
}

func photosNamed(names ...string) []Photo {
	photos := make([]Photo, 0, len(names))
	for i, name := range names {
		photos = append(photos, Photo{ID: fmt.Sprintf("p%d", i), Name: name, MimeType: "image/png"})
	}
	return photos
}

func newTestResolver(t *testing.T, store *fakeStore) (*Resolver, *GameMap) {
	t.Helper()

	logger := slog.Default()
	cache := NewFolderCache(store, "", nil, logger)
	games := NewGameMap(cache, logger)
	return NewResolver(store, cache, games, logger), games
}

func TestPickTitlePhoto_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"exact title wins", []string{"title.png", "title-2.jpg", "cover.png"}, "title.png"},
		{"title prefix beats cover", []string{"title-2.jpg", "cover.png"}, "title-2.jpg"},
		{"cover as last resort", []string{"cover.png"}, "cover.png"},
		{"no match means no title", []string{"randomname.png"}, ""},
		{"contains title beats cover", []string{"my-title-shot.jpg", "cover.png"}, "my-title-shot.jpg"},
		{"non-image extension ignored", []string{"title.txt", "cover.png"}, "cover.png"},
		{"case insensitive", []string{"TITLE.PNG"}, "TITLE.PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PickTitlePhoto(photosNamed(tt.files...))
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestResolveGamePath_AutoDescent(t *testing.T) {
	ctx := context.Background()

	t.Run("exactly one child descends", func(t *testing.T) {
		store := &fakeStore{
			roots:    []Folder{{ID: "g1", Name: "quiz-night"}},
			children: map[string][]Folder{"g1": {{ID: "c1", Name: "wrapped"}}},
			images:   map[string][]Photo{"c1": photosNamed("a.png", "b.png")},
		}
		resolver, games := newTestResolver(t, store)
		_, err := games.Initialize(ctx)
		require.NoError(t, err)

		set, state, err := resolver.ResolveGamePath(ctx, "quiz-night")
		require.NoError(t, err)
		require.Equal(t, ResolveFound, state)
		assert.True(t, set.Redirected)
		assert.Equal(t, "c1", set.FolderID)
		assert.Len(t, set.Photos, 2)
	})

	t.Run("zero children stays put", func(t *testing.T) {
		store := &fakeStore{
			roots:  []Folder{{ID: "g1", Name: "quiz-night"}},
			images: map[string][]Photo{"g1": photosNamed("a.png")},
		}
		resolver, games := newTestResolver(t, store)
		_, err := games.Initialize(ctx)
		require.NoError(t, err)

		set, state, err := resolver.ResolveGamePath(ctx, "quiz-night")
		require.NoError(t, err)
		require.Equal(t, ResolveFound, state)
		assert.False(t, set.Redirected)
		assert.Equal(t, "g1", set.FolderID)
	})

	t.Run("two children stays put", func(t *testing.T) {
		store := &fakeStore{
			roots: []Folder{{ID: "g1", Name: "quiz-night"}},
			children: map[string][]Folder{
				"g1": {{ID: "c1", Name: "march"}, {ID: "c2", Name: "april"}},
			},
			images: map[string][]Photo{"g1": photosNamed("a.png")},
		}
		resolver, games := newTestResolver(t, store)
		_, err := games.Initialize(ctx)
		require.NoError(t, err)

		set, state, err := resolver.ResolveGamePath(ctx, "quiz-night")
		require.NoError(t, err)
		require.Equal(t, ResolveFound, state)
		assert.False(t, set.Redirected)
		assert.Equal(t, "g1", set.FolderID)
	})

	t.Run("multi-segment path never descends", func(t *testing.T) {
		store := &fakeStore{
			roots: []Folder{{ID: "g1", Name: "quiz-night"}},
			children: map[string][]Folder{
				"g1": {{ID: "c1", Name: "March"}},
				"c1": {{ID: "c2", Name: "inner"}},
			},
			images: map[string][]Photo{"c1": photosNamed("a.png")},
		}
		resolver, games := newTestResolver(t, store)
		_, err := games.Initialize(ctx)
		require.NoError(t, err)

		set, state, err := resolver.ResolveGamePath(ctx, "quiz-night/march")
		require.NoError(t, err)
		require.Equal(t, ResolveFound, state)
		assert.False(t, set.Redirected)
		assert.Equal(t, "c1", set.FolderID)
	})
}

func TestResolveGamePath_NotFound(t *testing.T) {
	ctx := context.Background()

	store := &fakeStore{
		roots:    []Folder{{ID: "g1", Name: "quiz-night"}},
		children: map[string][]Folder{"g1": {{ID: "c1", Name: "march"}, {ID: "c2", Name: "april"}}},
	}
	resolver, games := newTestResolver(t, store)
	_, err := games.Initialize(ctx)
	require.NoError(t, err)

	t.Run("unknown game", func(t *testing.T) {
		_, state, err := resolver.ResolveGamePath(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Equal(t, ResolveNotFound, state)
	})

	t.Run("unmatched nested segment", func(t *testing.T) {
		_, state, err := resolver.ResolveGamePath(ctx, "quiz-night/may")
		require.NoError(t, err)
		assert.Equal(t, ResolveNotFound, state)
	})

	t.Run("empty path", func(t *testing.T) {
		_, state, err := resolver.ResolveGamePath(ctx, "  /  ")
		require.NoError(t, err)
		assert.Equal(t, ResolveNotFound, state)
	})
}

func TestResolveGamePath_LiveFallbackBeforeInitialize(t *testing.T) {
	ctx := context.Background()

	store := &fakeStore{
		roots:  []Folder{{ID: "g1", Name: "quiz-night"}},
		images: map[string][]Photo{"g1": photosNamed("a.png")},
	}
	resolver, _ := newTestResolver(t, store)

	// The game map never initialized; the root-name lookup still resolves.
	set, state, err := resolver.ResolveGamePath(ctx, "quiz-night")
	require.NoError(t, err)
	assert.Equal(t, ResolveFound, state)
	assert.Equal(t, "g1", set.FolderID)
}

func TestCover_FallsBackToFirstImage(t *testing.T) {
	ctx := context.Background()

	store := &fakeStore{
		roots:  []Folder{{ID: "g1", Name: "quiz-night"}},
		images: map[string][]Photo{"g1": photosNamed("zebra.png", "alpha.png")},
	}
	resolver, _ := newTestResolver(t, store)

	cover, err := resolver.Cover(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, cover)
	assert.Equal(t, "zebra.png", cover.Name)
}
