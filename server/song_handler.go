package server

import (
	"net/http"
	"strings"

	"github.com/rlejr135/band-archive/cache"
	"github.com/rlejr135/band-archive/logger"
	"github.com/rlejr135/band-archive/model"
	"github.com/rlejr135/band-archive/repository"
)

// ListSongsHandler returns all songs, optionally filtered by q, status and
// genre query parameters.
func (h *APIHandler) ListSongsHandler(w http.ResponseWriter, r *http.Request) {
	filter := repository.SongFilter{
		Query:  r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
		Genre:  r.URL.Query().Get("genre"),
	}

	songs, err := h.songRepo.List(filter)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

// GetSongHandler returns a single song with its media.
func (h *APIHandler) GetSongHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	song, err := h.songRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if song == nil {
		writeError(w, http.StatusNotFound, "Song not found")
		return
	}
	writeJSON(w, http.StatusOK, song)
}

// CreateSongHandler creates a song from a draft.
func (h *APIHandler) CreateSongHandler(w http.ResponseWriter, r *http.Request) {
	var draft model.SongDraft
	if err := decodeBody(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "Request body is required")
		return
	}

	if draft.Title == nil || strings.TrimSpace(*draft.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if draft.Artist == nil || strings.TrimSpace(*draft.Artist) == "" {
		writeError(w, http.StatusBadRequest, "artist is required")
		return
	}

	song := model.Song{
		Title:      *draft.Title,
		Artist:     *draft.Artist,
		Status:     model.StatusPractice,
		Difficulty: 3,
		Media:      []model.MediaAsset{},
	}

	if draft.Status != nil {
		if !model.ValidStatus(*draft.Status) {
			writeError(w, http.StatusBadRequest, "Invalid status. Must be one of: Practice, Completed, OnHold")
			return
		}
		song.Status = *draft.Status
	}
	if draft.Difficulty != nil {
		if *draft.Difficulty < 1 || *draft.Difficulty > 5 {
			writeError(w, http.StatusBadRequest, "difficulty must be an integer between 1 and 5")
			return
		}
		song.Difficulty = *draft.Difficulty
	}
	if draft.Genre != nil {
		song.Genre = *draft.Genre
	}
	if draft.Lyrics != nil {
		song.Lyrics = *draft.Lyrics
	}
	if draft.Chords != nil {
		song.Chords = *draft.Chords
	}
	if draft.Link != nil {
		song.Link = *draft.Link
	}
	if draft.Memo != nil {
		song.Memo = *draft.Memo
	}

	if err := h.songRepo.Create(&song); err != nil {
		writeServerError(w, err)
		return
	}

	cache.InvalidateDashboardStats(r.Context())
	logger.Info("Song created", logger.Int64("songId", song.ID), logger.String("title", song.Title))
	writeJSON(w, http.StatusCreated, song)
}

// UpdateSongHandler applies a partial update and returns the fresh record.
func (h *APIHandler) UpdateSongHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	song, err := h.songRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if song == nil {
		writeError(w, http.StatusNotFound, "Song not found")
		return
	}

	var draft model.SongDraft
	if err := decodeBody(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "Request body is required")
		return
	}

	if draft.Title != nil {
		if strings.TrimSpace(*draft.Title) == "" {
			writeError(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		song.Title = *draft.Title
	}
	if draft.Artist != nil {
		if strings.TrimSpace(*draft.Artist) == "" {
			writeError(w, http.StatusBadRequest, "artist cannot be empty")
			return
		}
		song.Artist = *draft.Artist
	}
	if draft.Status != nil {
		if !model.ValidStatus(*draft.Status) {
			writeError(w, http.StatusBadRequest, "Invalid status. Must be one of: Practice, Completed, OnHold")
			return
		}
		song.Status = *draft.Status
	}
	if draft.Difficulty != nil {
		if *draft.Difficulty < 1 || *draft.Difficulty > 5 {
			writeError(w, http.StatusBadRequest, "difficulty must be an integer between 1 and 5")
			return
		}
		song.Difficulty = *draft.Difficulty
	}
	if draft.Genre != nil {
		song.Genre = *draft.Genre
	}
	if draft.Lyrics != nil {
		song.Lyrics = *draft.Lyrics
	}
	if draft.Chords != nil {
		song.Chords = *draft.Chords
	}
	if draft.Link != nil {
		song.Link = *draft.Link
	}
	if draft.Memo != nil {
		song.Memo = *draft.Memo
	}

	if err := h.songRepo.Save(song); err != nil {
		writeServerError(w, err)
		return
	}

	cache.InvalidateDashboardStats(r.Context())
	writeJSON(w, http.StatusOK, song)
}

// DeleteSongHandler removes a song with its media and practice logs.
func (h *APIHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	song, err := h.songRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if song == nil {
		writeError(w, http.StatusNotFound, "Song not found")
		return
	}

	if err := h.songRepo.Delete(id); err != nil {
		writeServerError(w, err)
		return
	}

	// Stored objects are removed after the rows; a leftover file is
	// harmless, a dangling row is not.
	for _, asset := range song.Media {
		if err := h.store.Delete(r.Context(), asset.Filename); err != nil {
			logger.Warn("Failed to remove stored media file",
				logger.String("filename", asset.Filename), logger.ErrorField(err))
		}
	}

	cache.InvalidateDashboardStats(r.Context())
	logger.Info("Song deleted", logger.Int64("songId", id))
	writeMessage(w, http.StatusOK, "Song deleted")
}
