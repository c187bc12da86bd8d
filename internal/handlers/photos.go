package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/prplkane/umazona-website/internal/drive"
	"github.com/prplkane/umazona-website/internal/util"
)

type PhotosHandler struct {
	Store    drive.Store
	Resolver *drive.Resolver
	Logger   *slog.Logger
}

type photoSetResponse struct {
	Count      int            `json:"count"`
	TitlePhoto *drive.Photo   `json:"titlePhoto"`
	Data       []drive.Photo  `json:"data"`
	FolderID   string         `json:"folderId"`
	Redirected bool           `json:"redirected"`
}

// List resolves ?game=<path> or ?folderId=<id> to a photo set.
func (h *PhotosHandler) List(w http.ResponseWriter, r *http.Request) {
	game := util.GetQueryParam(r, "game", "")
	folderID := util.GetQueryParam(r, "folderId", "")

	if game == "" && folderID == "" {
		util.ErrorResponse(w, http.StatusBadRequest, "either game or folderId is required")
		return
	}

	var (
		set   *drive.PhotoSet
		state drive.ResolveState
		err   error
	)

	if folderID != "" {
		set, err = h.Resolver.PhotosInFolder(r.Context(), folderID)
		state = drive.ResolveFound
	} else {
		set, state, err = h.Resolver.ResolveGamePath(r.Context(), game)
	}

	if err != nil {
		h.Logger.Error("photo resolution failed", "game", game, "folderId", folderID, "error", err)
		util.ErrorResponse(w, http.StatusInternalServerError, "failed to fetch photos")
		return
	}

	switch state {
	case drive.ResolveNotReady:
		util.ErrorResponse(w, http.StatusServiceUnavailable, "photo discovery has not completed yet")
		return
	case drive.ResolveNotFound:
		util.ErrorResponse(w, http.StatusNotFound, "no photos found")
		return
	}

	util.JSONResponse(w, http.StatusOK, photoSetResponse{
		Count:      len(set.Photos),
		TitlePhoto: set.TitlePhoto,
		Data:       set.Photos,
		FolderID:   set.FolderID,
		Redirected: set.Redirected,
	})
}

// Proxy streams a single file's bytes from the store with an inferred
// mime type and a one-day cache header.
func (h *PhotosHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	if fileID == "" {
		util.ErrorResponse(w, http.StatusBadRequest, "fileID is required")
		return
	}

	body, contentType, err := h.Store.Download(r.Context(), fileID)
	if err != nil {
		h.Logger.Error("photo proxy failed", "fileId", fileID, "error", err)
		util.ErrorResponse(w, http.StatusInternalServerError, "failed to fetch photo")
		return
	}
	defer body.Close()

	// The store does not always report a useful type for raw media.
	head := make([]byte, 3072)
	n, _ := io.ReadFull(body, head)
	head = head[:n]

	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(head).String()
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err := w.Write(head); err != nil {
		return
	}
	if _, err := io.Copy(w, body); err != nil {
		h.Logger.Debug("photo stream interrupted", "fileId", fileID, "error", err)
	}
}
