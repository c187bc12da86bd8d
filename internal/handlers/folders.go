package handlers

import (
	"log/slog"
	"net/http"

	"github.com/prplkane/umazona-website/internal/drive"
	"github.com/prplkane/umazona-website/internal/util"
)

type FoldersHandler struct {
	Cache    *drive.FolderCache
	Resolver *drive.Resolver
	Logger   *slog.Logger
}

type folderWithCover struct {
	drive.Folder
	Cover *drive.Photo `json:"cover"`
}

// Children lists child folders of ?parent= (identifier, root folder
// name, or empty for the configured default).
func (h *FoldersHandler) Children(w http.ResponseWriter, r *http.Request) {
	parent := util.GetQueryParam(r, "parent", "")

	folders, err := h.Cache.Children(r.Context(), parent)
	if err != nil {
		h.Logger.Error("children listing failed", "parent", parent, "error", err)
		util.ErrorResponse(w, http.StatusInternalServerError, "failed to list folders")
		return
	}

	util.JSONResponse(w, http.StatusOK, map[string]any{
		"count": len(folders),
		"data":  folders,
	})
}

// ChildrenWithCover lists child folders plus each one's best-effort
// cover photo. A child whose cover lookup fails is returned coverless.
func (h *FoldersHandler) ChildrenWithCover(w http.ResponseWriter, r *http.Request) {
	parent := util.GetQueryParam(r, "parent", "")

	folders, err := h.Cache.Children(r.Context(), parent)
	if err != nil {
		h.Logger.Error("children listing failed", "parent", parent, "error", err)
		util.ErrorResponse(w, http.StatusInternalServerError, "failed to list folders")
		return
	}

	out := make([]folderWithCover, 0, len(folders))
	for _, f := range folders {
		entry := folderWithCover{Folder: f}

		cover, err := h.Resolver.Cover(r.Context(), f.ID)
		if err != nil {
			h.Logger.Warn("cover lookup failed", "folderId", f.ID, "error", err)
		} else {
			entry.Cover = cover
		}
		out = append(out, entry)
	}

	util.JSONResponse(w, http.StatusOK, map[string]any{
		"count": len(out),
		"data":  out,
	})
}
