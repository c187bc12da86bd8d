package drive

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/prplkane/umazona-website/internal/events"
)

// DefaultCacheTTL is how long a discovered folder listing is trusted.
const DefaultCacheTTL = time.Hour

type cacheEntry struct {
	folders   []Folder
	fetchedAt time.Time
}

func (e *cacheEntry) valid(now time.Time, ttl time.Duration) bool {
	return e != nil && now.Sub(e.fetchedAt) < ttl
}

// CacheStatus is the introspection view exposed on debug routes.
type CacheStatus struct {
	Cached           bool  `json:"cached"`
	FolderCount      int   `json:"folderCount"`
	AgeMs            int64 `json:"cacheAgeMs"`
	Valid            bool  `json:"cacheValid"`
	ValidRemainingMs int64 `json:"ttlRemainingMs"`
}

// FolderCache caches the store's root folder listing and per-parent child
// listings, each with an independent TTL. Expired entries are treated as
// misses on the next access, not deleted eagerly; InvalidateRoot clears
// the root entry explicitly.
type FolderCache struct {
	store         Store
	bus           *events.Bus
	logger        *slog.Logger
	ttl           time.Duration
	defaultParent string

	now func() time.Time

	mu       sync.Mutex
	root     *cacheEntry
	children map[string]*cacheEntry
}

func NewFolderCache(store Store, defaultParent string, bus *events.Bus, logger *slog.Logger) *FolderCache {
	return &FolderCache{
		store:         store,
		bus:           bus,
		logger:        logger,
		ttl:           DefaultCacheTTL,
		defaultParent: defaultParent,
		now:           time.Now,
		children:      make(map[string]*cacheEntry),
	}
}

// RootFolders returns the top-level folder listing, fetching from the
// store at most once per TTL window.
func (c *FolderCache) RootFolders(ctx context.Context) ([]Folder, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root.valid(c.now(), c.ttl) {
		c.logger.Debug("using cached folder list", "count", len(c.root.folders))
		return c.root.folders, nil
	}

	c.logger.Info("scanning store for folders")
	folders, err := c.store.ListRootFolders(ctx)
	if err != nil {
		return nil, err
	}

	c.root = &cacheEntry{folders: folders, fetchedAt: c.now()}
	c.notifyDiscovered(folders)

	c.logger.Info("discovered folders", "count", len(folders))
	return folders, nil
}

// Children returns the child folders of parentRef. The parent argument is
// resolved in priority order: direct identifier, the configured default
// identifier, then literal root folder name (case-insensitive, falling
// back to a live store lookup by name when the cached root listing has
// no match). An unresolvable parent yields an empty sequence and a
// warning, not an error, so public pages degrade to "no albums".
func (c *FolderCache) Children(ctx context.Context, parentRef string) ([]Folder, error) {
	parentID, ok, err := c.resolveParent(ctx, parentRef)
	if err != nil {
		return nil, err
	}
	if !ok {
		c.logger.Warn("could not resolve parent folder, returning no children", "parent", parentRef)
		return []Folder{}, nil
	}

	return c.childrenByID(ctx, parentID)
}

func (c *FolderCache) childrenByID(ctx context.Context, parentID string) ([]Folder, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry := c.children[parentID]; entry.valid(c.now(), c.ttl) {
		return entry.folders, nil
	}

	folders, err := c.store.ListChildFolders(ctx, parentID)
	if err != nil {
		return nil, err
	}

	c.children[parentID] = &cacheEntry{folders: folders, fetchedAt: c.now()}
	c.notifyDiscovered(folders)
	return folders, nil
}

// FindRootFolderByName matches a root folder by name, case-insensitively,
// against the cached root listing (fetching it if needed). Returns nil
// when no folder matches.
func (c *FolderCache) FindRootFolderByName(ctx context.Context, name string) (*Folder, error) {
	folders, err := c.RootFolders(ctx)
	if err != nil {
		return nil, err
	}

	for i := range folders {
		if strings.EqualFold(folders[i].Name, name) {
			return &folders[i], nil
		}
	}
	return nil, nil
}

// InvalidateRoot clears the root listing so the next access re-queries
// the store. Per-parent entries age out on their own TTLs.
func (c *FolderCache) InvalidateRoot() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.root = nil
	c.logger.Info("folder cache cleared")
}

func (c *FolderCache) Status() CacheStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil {
		return CacheStatus{}
	}

	age := c.now().Sub(c.root.fetchedAt)
	remaining := c.ttl - age
	if remaining < 0 {
		remaining = 0
	}

	return CacheStatus{
		Cached:           true,
		FolderCount:      len(c.root.folders),
		AgeMs:            age.Milliseconds(),
		Valid:            age < c.ttl,
		ValidRemainingMs: remaining.Milliseconds(),
	}
}

func (c *FolderCache) resolveParent(ctx context.Context, ref string) (string, bool, error) {
	if ref != "" {
		folder, err := c.store.GetFolder(ctx, ref)
		if err != nil {
			return "", false, err
		}
		if folder != nil {
			return folder.ID, true, nil
		}
	}

	if c.defaultParent != "" {
		return c.defaultParent, true, nil
	}

	if ref != "" {
		found, err := c.FindRootFolderByName(ctx, ref)
		if err != nil {
			return "", false, err
		}
		if found == nil {
			// Not in the cached root listing; the folder may be newer
			// than the cache entry, so ask the store by name.
			found, err = c.store.FindFolderByName(ctx, ref)
			if err != nil {
				return "", false, err
			}
		}
		if found != nil {
			return found.ID, true, nil
		}
	}

	return "", false, nil
}

// notifyDiscovered tells the local-mirror collaborator about discovered
// folder names. Fire and forget; publish failures are logged by the bus
// and never reach callers.
func (c *FolderCache) notifyDiscovered(folders []Folder) {
	if c.bus == nil || len(folders) == 0 {
		return
	}

	names := make([]string, 0, len(folders))
	for _, f := range folders {
		names = append(names, f.Name)
	}
	c.bus.Publish(events.TopicFoldersDiscovered, events.FoldersDiscoveredPayload{Names: names})
}
