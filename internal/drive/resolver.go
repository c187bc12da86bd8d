package drive

import (
	"context"
	"log/slog"
	"path"
	"strings"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".heic": true,
}

// Resolver walks the store hierarchy from a slash-separated path of
// folder names down to a concrete photo listing.
type Resolver struct {
	store  Store
	cache  *FolderCache
	games  *GameMap
	logger *slog.Logger
}

func NewResolver(store Store, cache *FolderCache, games *GameMap, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, cache: cache, games: games, logger: logger}
}

// ResolveGamePath resolves a path like "quiz-night" or
// "quiz-night/2025/march" to a photo set.
//
// Not-found conditions (unknown game, unmatched nested segment) come back
// as ResolveNotFound with a nil error; store failures propagate. A
// single-segment path whose folder contains exactly one child folder
// auto-descends into it, because uploaders commonly wrap one event's
// photos in an extra nesting folder.
func (r *Resolver) ResolveGamePath(ctx context.Context, gamePath string) (*PhotoSet, ResolveState, error) {
	segments := splitPath(gamePath)
	if len(segments) == 0 {
		return nil, ResolveNotFound, nil
	}

	folderID, state, err := r.resolveFirstSegment(ctx, segments[0])
	if state != ResolveFound || err != nil {
		return nil, state, err
	}

	for _, segment := range segments[1:] {
		child, err := r.findChildByName(ctx, folderID, segment)
		if err != nil {
			return nil, ResolveNotFound, err
		}
		if child == nil {
			r.logger.Warn("gallery path segment not found", "path", gamePath, "segment", segment)
			return nil, ResolveNotFound, nil
		}
		folderID = child.ID
	}

	redirected := false
	if len(segments) == 1 {
		children, err := r.store.ListChildFolders(ctx, folderID)
		if err != nil {
			return nil, ResolveNotFound, err
		}
		if len(children) == 1 {
			r.logger.Debug("auto-descending into single child folder",
				"from", folderID, "to", children[0].ID)
			folderID = children[0].ID
			redirected = true
		}
	}

	set, err := r.PhotosInFolder(ctx, folderID)
	if err != nil {
		return nil, ResolveNotFound, err
	}
	set.Redirected = redirected
	return set, ResolveFound, nil
}

// PhotosInFolder lists a folder's images and picks its title photo.
func (r *Resolver) PhotosInFolder(ctx context.Context, folderID string) (*PhotoSet, error) {
	photos, err := r.store.ListImages(ctx, folderID, maxImagePageSize)
	if err != nil {
		return nil, err
	}

	return &PhotoSet{
		Photos:     photos,
		TitlePhoto: PickTitlePhoto(photos),
		FolderID:   folderID,
	}, nil
}

// Cover returns the folder's title photo, falling back to the first
// listed image. Nil when the folder has no images at all.
func (r *Resolver) Cover(ctx context.Context, folderID string) (*Photo, error) {
	set, err := r.PhotosInFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}

	if set.TitlePhoto != nil {
		return set.TitlePhoto, nil
	}
	if len(set.Photos) > 0 {
		return &set.Photos[0], nil
	}
	return nil, nil
}

func (r *Resolver) resolveFirstSegment(ctx context.Context, name string) (string, ResolveState, error) {
	if id, ok := r.games.Resolve(name); ok {
		return id, ResolveFound, nil
	}

	found, err := r.cache.FindRootFolderByName(ctx, name)
	if err != nil {
		return "", ResolveNotFound, err
	}
	if found != nil {
		return found.ID, ResolveFound, nil
	}

	if !r.games.Ready() {
		return "", ResolveNotReady, nil
	}
	return "", ResolveNotFound, nil
}

func (r *Resolver) findChildByName(ctx context.Context, parentID, name string) (*Folder, error) {
	children, err := r.store.ListChildFolders(ctx, parentID)
	if err != nil {
		return nil, err
	}

	for i := range children {
		if strings.EqualFold(children[i].Name, name) {
			return &children[i], nil
		}
	}
	return nil, nil
}

// PickTitlePhoto selects the album cover by filename heuristic, scanning
// only image-extension files. Precedence: base name exactly "title", base
// name starting with "title", name containing "title", then base name
// equal to or containing "cover". First match wins; no match means no
// title photo.
func PickTitlePhoto(photos []Photo) *Photo {
	candidates := make([]*Photo, 0, len(photos))
	for i := range photos {
		if imageExtensions[strings.ToLower(path.Ext(photos[i].Name))] {
			candidates = append(candidates, &photos[i])
		}
	}

	matchers := []func(base, name string) bool{
		func(base, name string) bool { return base == "title" },
		func(base, name string) bool { return strings.HasPrefix(base, "title") },
		func(base, name string) bool { return strings.Contains(name, "title") },
		func(base, name string) bool { return base == "cover" || strings.Contains(base, "cover") },
	}

	for _, match := range matchers {
		for _, p := range candidates {
			name := strings.ToLower(p.Name)
			base := strings.TrimSuffix(name, path.Ext(name))
			if match(base, name) {
				return p
			}
		}
	}
	return nil
}

func splitPath(gamePath string) []string {
	var segments []string
	for _, s := range strings.Split(gamePath, "/") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return segments
}
