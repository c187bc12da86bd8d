package drive

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// GameMap holds the one-time discovered mapping of lowercase game names
// to store folder identifiers. Before Initialize completes at least once,
// Resolve reports not-ready rather than not-found.
type GameMap struct {
	cache  *FolderCache
	logger *slog.Logger

	mu    sync.RWMutex
	m     map[string]string
	ready bool
}

func NewGameMap(cache *FolderCache, logger *slog.Logger) *GameMap {
	return &GameMap{cache: cache, logger: logger}
}

// Initialize discovers all root folders and builds the name map.
// Idempotent: a second call returns the already-computed map without
// re-querying the store.
func (g *GameMap) Initialize(ctx context.Context) (map[string]string, error) {
	g.mu.RLock()
	if g.ready {
		defer g.mu.RUnlock()
		return g.snapshotLocked(), nil
	}
	g.mu.RUnlock()

	g.logger.Info("discovering photo folders")
	folders, err := g.cache.RootFolders(ctx)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ready {
		return g.snapshotLocked(), nil
	}

	g.m = make(map[string]string, len(folders))
	for _, f := range folders {
		g.m[strings.ToLower(f.Name)] = f.ID
	}
	g.ready = true

	if len(g.m) == 0 {
		g.logger.Warn("no folders found in store")
	} else {
		g.logger.Info("discovered photo folders", "count", len(g.m), "games", g.availableLocked())
	}

	return g.snapshotLocked(), nil
}

// Resolve looks up the folder identifier for a game name. The second
// return is false both when the map has not initialized and when the
// name is unknown; use Ready to distinguish.
func (g *GameMap) Resolve(name string) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.ready {
		g.logger.Warn("game mapping not initialized yet", "game", name)
		return "", false
	}

	id, ok := g.m[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

func (g *GameMap) Ready() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ready
}

// Available lists game names that have a folder, sorted.
func (g *GameMap) Available() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.availableLocked()
}

// Override sets a manual name to folder mapping. In-memory only.
func (g *GameMap) Override(name, folderID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.m == nil {
		g.m = make(map[string]string)
	}
	g.m[strings.ToLower(name)] = folderID
	g.logger.Info("set game folder override", "game", name, "folderId", folderID)
}

// Snapshot returns a copy of the current mapping.
func (g *GameMap) Snapshot() map[string]string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snapshotLocked()
}

// Missing reports which of the required game names have no folder.
func (g *GameMap) Missing(required []string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var missing []string
	for _, name := range required {
		if _, ok := g.m[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func (g *GameMap) snapshotLocked() map[string]string {
	out := make(map[string]string, len(g.m))
	for k, v := range g.m {
		out[k] = v
	}
	return out
}

func (g *GameMap) availableLocked() []string {
	names := make([]string, 0, len(g.m))
	for name, id := range g.m {
		if id != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
