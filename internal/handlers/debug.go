package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/prplkane/umazona-website/internal/drive"
	"github.com/prplkane/umazona-website/internal/util"
)

// DebugHandler exposes operational introspection on the read-only surface.
type DebugHandler struct {
	Cache   *drive.FolderCache
	GameMap *drive.GameMap
	Logger  *slog.Logger
}

func (h *DebugHandler) Folders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.Cache.RootFolders(r.Context())
	if err != nil {
		util.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	util.JSONResponse(w, http.StatusOK, map[string]any{
		"count":   len(folders),
		"folders": folders,
		"cache":   h.Cache.Status(),
	})
}

func (h *DebugHandler) Games(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"ready":     h.GameMap.Ready(),
		"mapping":   h.GameMap.Snapshot(),
		"available": h.GameMap.Available(),
	}

	if required := util.GetQueryParam(r, "required", ""); required != "" {
		body["missing"] = h.GameMap.Missing(strings.Split(required, ","))
	}

	util.JSONResponse(w, http.StatusOK, body)
}

func (h *DebugHandler) CacheClear(w http.ResponseWriter, r *http.Request) {
	h.Cache.InvalidateRoot()
	h.Logger.Info("cache cleared via debug endpoint")
	util.JSONResponse(w, http.StatusOK, map[string]any{"cleared": true})
}
