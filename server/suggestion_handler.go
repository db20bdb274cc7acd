package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rlejr135/band-archive/core/auth"
	"github.com/rlejr135/band-archive/logger"
	"github.com/rlejr135/band-archive/model"
)

type suggestionRequest struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Link   string `json:"link"`
	Memo   string `json:"memo,omitempty"`
}

type deleteSuggestionRequest struct {
	Password string `json:"password"`
}

type voteRequest struct {
	VoteType string `json:"vote_type"`
}

// ListSuggestionsHandler returns suggestions ranked by score descending.
func (h *APIHandler) ListSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.suggestionRepo.List()
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

// CreateSuggestionHandler creates a suggestion. Title, artist and link are
// required.
func (h *APIHandler) CreateSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body is required")
		return
	}

	title := strings.TrimSpace(req.Title)
	artist := strings.TrimSpace(req.Artist)
	link := strings.TrimSpace(req.Link)

	if title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if artist == "" {
		writeError(w, http.StatusBadRequest, "Artist is required")
		return
	}
	if link == "" {
		writeError(w, http.StatusBadRequest, "Link is required")
		return
	}

	suggestion := model.Suggestion{
		Title:  title,
		Artist: artist,
		Link:   link,
		Memo:   strings.TrimSpace(req.Memo),
	}
	if err := h.suggestionRepo.Create(&suggestion); err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, suggestion)
}

// DeleteSuggestionHandler removes a suggestion after verifying the shared
// password. Wrong password answers 403 and leaves the record untouched.
func (h *APIHandler) DeleteSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid suggestion id")
		return
	}

	suggestion, err := h.suggestionRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if suggestion == nil {
		writeError(w, http.StatusNotFound, "Suggestion not found")
		return
	}

	var req deleteSuggestionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body is required")
		return
	}

	if err := h.gate.Verify(req.Password); err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			writeError(w, http.StatusForbidden, "Invalid password")
			return
		}
		writeServerError(w, err)
		return
	}

	if err := h.suggestionRepo.Delete(id); err != nil {
		writeServerError(w, err)
		return
	}

	logger.Info("Suggestion deleted", logger.Int64("suggestionId", id))
	writeMessage(w, http.StatusOK, "Suggestion deleted")
}

// VoteSuggestionHandler records an up or down vote and returns the updated
// record.
func (h *APIHandler) VoteSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid suggestion id")
		return
	}

	suggestion, err := h.suggestionRepo.GetByID(id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if suggestion == nil {
		writeError(w, http.StatusNotFound, "Suggestion not found")
		return
	}

	var req voteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body is required")
		return
	}
	if req.VoteType != "up" && req.VoteType != "down" {
		writeError(w, http.StatusBadRequest, "vote_type must be 'up' or 'down'")
		return
	}

	updated, err := h.suggestionRepo.Vote(id, req.VoteType)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
