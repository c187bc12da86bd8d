package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/prplkane/umazona-website/internal/util"
)

const (
	maxThemeUploadBytes = 5 << 20
	themesDirName       = "themes"
)

var allowedThemeExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// UploadThemeHandler stores admin-uploaded theme images under the static
// uploads path.
type UploadThemeHandler struct {
	UploadsDir string
	Logger     *slog.Logger
}

func (h *UploadThemeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxThemeUploadBytes)

	if err := r.ParseMultipartForm(maxThemeUploadBytes); err != nil {
		util.ErrorResponse(w, http.StatusBadRequest, "upload must be multipart and at most 5MB")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		util.ErrorResponse(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedThemeExtensions[ext] {
		util.ErrorResponse(w, http.StatusBadRequest, "unsupported image type")
		return
	}

	dir := filepath.Join(h.UploadsDir, themesDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		h.Logger.Error("failed to create themes directory", "dir", dir, "error", err)
		util.ErrorResponse(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	name := uuid.NewString() + ext
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		h.Logger.Error("failed to create theme file", "path", path, "error", err)
		util.ErrorResponse(w, http.StatusInternalServerError, "failed to store image")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.Logger.Error("failed to write theme file", "path", path, "error", err)
		os.Remove(path)
		util.ErrorResponse(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	h.Logger.Info("stored theme image", "path", path, "size", header.Size)
	util.JSONResponse(w, http.StatusCreated, map[string]any{
		"url": fmt.Sprintf("/uploads/%s/%s", themesDirName, name),
	})
}
