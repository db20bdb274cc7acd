package server

import (
	"encoding/json"
	"net/http"

	"github.com/rlejr135/band-archive/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeMessage writes a JSON ack body.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageBody{Message: msg})
}

// writeServerError logs the error and writes a generic 500.
func writeServerError(w http.ResponseWriter, err error) {
	logger.Error("Request failed", logger.ErrorField(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}
