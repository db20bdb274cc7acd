package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rlejr135/band-archive/core/media"
	"github.com/rlejr135/band-archive/logger"
	"github.com/rlejr135/band-archive/model"

	"github.com/gorilla/mux"
)

// contentTypeFor maps a resolved category to a serving content type.
func contentTypeFor(filename string) string {
	switch media.ResolveCategory("", filename) {
	case media.CategoryAudio:
		return "audio/mpeg"
	case media.CategoryVideo:
		return "video/mp4"
	case media.CategoryImage:
		return "image/jpeg"
	}
	return "application/octet-stream"
}

// dedupeStoredName appends a numeric suffix before the extension until
// prefix+name is a free storage key. Same-day uploads of the same filename
// would otherwise share one object, and deleting either record would orphan
// the other.
func (h *APIHandler) dedupeStoredName(ctx context.Context, prefix, storedName string) (string, error) {
	ext := filepath.Ext(storedName)
	base := strings.TrimSuffix(storedName, ext)

	name := storedName
	for i := 2; ; i++ {
		taken, err := h.store.Exists(ctx, prefix+name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
		name = fmt.Sprintf("%s_%d%s", base, i, ext)
	}
}

// UploadMediaHandler attaches a file to a song. The stored filename encodes
// the song id and upload date; the response is the created MediaAsset.
func (h *APIHandler) UploadMediaHandler(w http.ResponseWriter, r *http.Request) {
	songID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	song, err := h.songRepo.GetByID(songID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if song == nil {
		writeError(w, http.StatusNotFound, "Song not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}
	if header.Size > MaxUploadSize {
		writeError(w, http.StatusBadRequest, "File exceeds the 200MB limit")
		return
	}

	storedName, err := h.dedupeStoredName(r.Context(), "", generateStoredFilename(songID, header.Filename, time.Now()))
	if err != nil {
		writeServerError(w, err)
		return
	}
	if err := h.store.Save(r.Context(), storedName, file, header.Size, contentTypeFor(header.Filename)); err != nil {
		writeServerError(w, err)
		return
	}

	asset := model.MediaAsset{
		SongID:   songID,
		Filename: storedName,
		FileType: string(media.ResolveCategory("", header.Filename)),
		FileSize: header.Size,
		URL:      "/uploads/" + storedName,
	}
	if err := h.mediaRepo.Create(&asset); err != nil {
		writeServerError(w, err)
		return
	}

	logger.Info("Media uploaded",
		logger.Int64("songId", songID),
		logger.String("filename", storedName),
		logger.Int64("size", header.Size))
	writeJSON(w, http.StatusCreated, asset)
}

// DeleteMediaHandler removes a media asset and its stored file.
func (h *APIHandler) DeleteMediaHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	asset, err := h.mediaRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if asset == nil {
		writeError(w, http.StatusNotFound, "Media not found")
		return
	}

	if err := h.mediaRepo.Delete(id); err != nil {
		writeServerError(w, err)
		return
	}
	if err := h.store.Delete(r.Context(), asset.Filename); err != nil {
		logger.Warn("Failed to remove stored media file",
			logger.String("filename", asset.Filename), logger.ErrorField(err))
	}

	writeMessage(w, http.StatusOK, "Media deleted")
}

type renameRequest struct {
	Filename string `json:"filename"`
}

// RenameMediaHandler renames a media asset. The generated id/date prefix of
// the stored filename is preserved; only the display part changes.
func (h *APIHandler) RenameMediaHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	asset, err := h.mediaRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if asset == nil {
		writeError(w, http.StatusNotFound, "Media not found")
		return
	}

	var req renameRequest
	if err := decodeBody(r, &req); err != nil || strings.TrimSpace(req.Filename) == "" {
		writeError(w, http.StatusBadRequest, "filename is required")
		return
	}

	newName := sanitizeFilename(req.Filename)
	if filepath.Ext(newName) == "" {
		newName += filepath.Ext(asset.Filename)
	}

	stripped := media.StripGeneratedPrefix(asset.Filename)
	prefix := strings.TrimSuffix(asset.Filename, stripped)
	storedName := prefix + newName

	if storedName != asset.Filename {
		taken, err := h.store.Exists(r.Context(), storedName)
		if err != nil {
			writeServerError(w, err)
			return
		}
		if taken {
			writeError(w, http.StatusConflict, "A file with that name already exists")
			return
		}

		src, size, err := h.store.Open(r.Context(), asset.Filename)
		if err != nil {
			writeServerError(w, err)
			return
		}
		err = h.store.Save(r.Context(), storedName, src, size, contentTypeFor(storedName))
		src.Close()
		if err != nil {
			writeServerError(w, err)
			return
		}
		if err := h.store.Delete(r.Context(), asset.Filename); err != nil {
			logger.Warn("Failed to remove old media file",
				logger.String("filename", asset.Filename), logger.ErrorField(err))
		}
	}

	asset.Filename = storedName
	asset.URL = "/uploads/" + storedName
	if err := h.mediaRepo.Save(asset); err != nil {
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, asset)
}

// ServeUploadHandler streams a stored upload. Legacy direct links use
// /uploads/{filename}; newer records carry the same path in their url field.
func (h *APIHandler) ServeUploadHandler(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["path"]
	if key == "" || strings.Contains(key, "..") {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}

	obj, size, err := h.store.Open(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	defer obj.Close()

	w.Header().Set("Content-Type", contentTypeFor(key))
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	if _, err := io.Copy(w, obj); err != nil {
		logger.Error("Failed to serve upload", logger.String("key", key), logger.ErrorField(err))
	}
}
