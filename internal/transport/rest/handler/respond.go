package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"consultcoach/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps service errors onto status codes
func writeServiceError(w http.ResponseWriter, err error) {
	var ae *service.AnalysisError
	if errors.As(err, &ae) {
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":       ae.Error(),
			"rawResponse": ae.RawResponse,
		})
		return
	}
	var ce *service.ChatServiceError
	if errors.As(err, &ce) {
		writeError(w, http.StatusBadGateway, ce.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, service.ErrDecode), errors.Is(err, service.ErrModelNotAllowed):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoTranscript), errors.Is(err, service.ErrNoAnalysis):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
