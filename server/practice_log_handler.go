package server

import (
	"net/http"
	"time"

	"github.com/rlejr135/band-archive/cache"
	"github.com/rlejr135/band-archive/core/media"
	"github.com/rlejr135/band-archive/logger"
	"github.com/rlejr135/band-archive/model"
)

// ListPracticeLogsHandler returns a song's practice logs, newest first.
func (h *APIHandler) ListPracticeLogsHandler(w http.ResponseWriter, r *http.Request) {
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

	logs, err := h.practiceRepo.ListBySong(songID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// CreatePracticeLogHandler creates a practice log for a song.
func (h *APIHandler) CreatePracticeLogHandler(w http.ResponseWriter, r *http.Request) {
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

	var draft model.PracticeLogDraft
	if err := decodeBody(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "Request body is required")
		return
	}

	log := model.PracticeLog{
		SongID: songID,
		Date:   time.Now().UTC(),
	}
	if draft.Content != nil {
		log.Content = *draft.Content
	}
	if draft.Feedback != nil {
		log.Feedback = *draft.Feedback
	}

	if err := h.practiceRepo.Create(&log); err != nil {
		writeServerError(w, err)
		return
	}

	cache.InvalidateDashboardStats(r.Context())
	writeJSON(w, http.StatusCreated, log)
}

// GetPracticeLogHandler returns a single practice log.
func (h *APIHandler) GetPracticeLogHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice log id")
		return
	}

	log, err := h.practiceRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if log == nil {
		writeError(w, http.StatusNotFound, "Practice log not found")
		return
	}
	writeJSON(w, http.StatusOK, log)
}

// UpdatePracticeLogHandler applies a partial update to a practice log.
func (h *APIHandler) UpdatePracticeLogHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice log id")
		return
	}

	log, err := h.practiceRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if log == nil {
		writeError(w, http.StatusNotFound, "Practice log not found")
		return
	}

	var draft model.PracticeLogDraft
	if err := decodeBody(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "Request body is required")
		return
	}

	if draft.Content != nil {
		log.Content = *draft.Content
	}
	if draft.Feedback != nil {
		log.Feedback = *draft.Feedback
	}

	if err := h.practiceRepo.Save(log); err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

// DeletePracticeLogHandler removes a practice log and its recording.
func (h *APIHandler) DeletePracticeLogHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice log id")
		return
	}

	log, err := h.practiceRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if log == nil {
		writeError(w, http.StatusNotFound, "Practice log not found")
		return
	}

	if err := h.practiceRepo.Delete(id); err != nil {
		writeServerError(w, err)
		return
	}
	if log.Recording != "" {
		if err := h.store.Delete(r.Context(), log.Recording); err != nil {
			logger.Warn("Failed to remove stored recording",
				logger.String("filename", log.Recording), logger.ErrorField(err))
		}
	}

	cache.InvalidateDashboardStats(r.Context())
	writeMessage(w, http.StatusOK, "Practice log deleted")
}

// UploadRecordingHandler attaches a recording to a practice log and returns
// the updated log.
func (h *APIHandler) UploadRecordingHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice log id")
		return
	}

	log, err := h.practiceRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if log == nil {
		writeError(w, http.StatusNotFound, "Practice log not found")
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
	if !media.RecordingAllowed(header.Filename) {
		writeError(w, http.StatusBadRequest, "File type not allowed for recordings")
		return
	}

	storedName := "practice_" + generateStoredFilename(id, header.Filename, time.Now())
	if err := h.store.Save(r.Context(), storedName, file, header.Size, contentTypeFor(header.Filename)); err != nil {
		writeServerError(w, err)
		return
	}

	if log.Recording != "" && log.Recording != storedName {
		if err := h.store.Delete(r.Context(), log.Recording); err != nil {
			logger.Warn("Failed to remove replaced recording",
				logger.String("filename", log.Recording), logger.ErrorField(err))
		}
	}

	log.Recording = storedName
	if err := h.practiceRepo.Save(log); err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}
