package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/rlejr135/band-archive/core/media"
	"github.com/rlejr135/band-archive/logger"
	"github.com/rlejr135/band-archive/model"
)

type memberRequest struct {
	Name       *string `json:"name,omitempty"`
	Instrument *string `json:"instrument,omitempty"`
}

// ListMembersHandler returns all members.
func (h *APIHandler) ListMembersHandler(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberRepo.List()
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// GetMemberHandler returns a single member.
func (h *APIHandler) GetMemberHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := h.memberRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "Member not found")
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// CreateMemberHandler creates a member.
func (h *APIHandler) CreateMemberHandler(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body is required")
		return
	}

	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Instrument == nil || strings.TrimSpace(*req.Instrument) == "" {
		writeError(w, http.StatusBadRequest, "instrument is required")
		return
	}

	member := model.Member{
		Name:       strings.TrimSpace(*req.Name),
		Instrument: strings.TrimSpace(*req.Instrument),
	}
	if err := h.memberRepo.Create(&member); err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

// UpdateMemberHandler applies a partial update to a member.
func (h *APIHandler) UpdateMemberHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := h.memberRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "Member not found")
		return
	}

	var req memberRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body is required")
		return
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			writeError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		member.Name = strings.TrimSpace(*req.Name)
	}
	if req.Instrument != nil {
		if strings.TrimSpace(*req.Instrument) == "" {
			writeError(w, http.StatusBadRequest, "instrument cannot be empty")
			return
		}
		member.Instrument = strings.TrimSpace(*req.Instrument)
	}

	if err := h.memberRepo.Save(member); err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// DeleteMemberHandler removes a member and cascades to their personal logs.
func (h *APIHandler) DeleteMemberHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := h.memberRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "Member not found")
		return
	}

	filenames, err := h.memberRepo.Delete(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	for _, name := range filenames {
		if err := h.store.Delete(r.Context(), "personal_logs/"+name); err != nil {
			logger.Warn("Failed to remove stored personal log file",
				logger.String("filename", name), logger.ErrorField(err))
		}
	}

	logger.Info("Member deleted", logger.Int64("memberId", id), logger.Int("cascadedLogs", len(filenames)))
	writeMessage(w, http.StatusOK, "Member deleted")
}

// ListPersonalLogsHandler returns a member's personal logs, newest first.
func (h *APIHandler) ListPersonalLogsHandler(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := h.memberRepo.GetByID(memberID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "Member not found")
		return
	}

	logs, err := h.personalRepo.ListByMember(memberID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// CreatePersonalLogHandler uploads a member's practice recording. Multipart
// fields: file (audio/video only) and title (required).
func (h *APIHandler) CreatePersonalLogHandler(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := h.memberRepo.GetByID(memberID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "Member not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
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
		writeError(w, http.StatusBadRequest, "File type not allowed. Audio and video files only")
		return
	}

	storedName, err := h.dedupeStoredName(r.Context(), "personal_logs/", generateStoredFilename(memberID, header.Filename, time.Now()))
	if err != nil {
		writeServerError(w, err)
		return
	}
	key := "personal_logs/" + storedName
	if err := h.store.Save(r.Context(), key, file, header.Size, contentTypeFor(header.Filename)); err != nil {
		writeServerError(w, err)
		return
	}

	log := model.PersonalLog{
		MemberID:         memberID,
		Title:            title,
		Filename:         storedName,
		OriginalFilename: header.Filename,
		FileType:         string(media.ResolveCategory("", header.Filename)),
	}
	if err := h.personalRepo.Create(&log); err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

// DeletePersonalLogHandler removes a personal log and its stored file.
func (h *APIHandler) DeletePersonalLogHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid log id")
		return
	}

	log, err := h.personalRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if log == nil {
		writeError(w, http.StatusNotFound, "Personal log not found")
		return
	}

	if err := h.personalRepo.Delete(id); err != nil {
		writeServerError(w, err)
		return
	}
	if err := h.store.Delete(r.Context(), "personal_logs/"+log.Filename); err != nil {
		logger.Warn("Failed to remove stored personal log file",
			logger.String("filename", log.Filename), logger.ErrorField(err))
	}

	writeMessage(w, http.StatusOK, "Personal log deleted")
}
