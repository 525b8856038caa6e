package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/skinadvisor/backend/internal/advisor"
	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusFor maps advisor/engine errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, contracts.ErrInvalidMeasurement),
		errors.Is(err, advisor.ErrProfileRequired),
		errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, contracts.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, advisor.ErrAnalysisUnavailable),
		errors.Is(err, advisor.ErrHistoryDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
