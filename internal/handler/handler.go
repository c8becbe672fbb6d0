package handler

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/tastefolio/personalization-service/internal/domain"
	"github.com/tastefolio/personalization-service/internal/service"
)

type Handler struct {
	service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Success: false,
		Message: message,
	})
}

// writeServiceError maps the service error taxonomy onto HTTP codes.
// Provider failures never reach here; the service absorbs them.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDomain):
		writeError(w, http.StatusBadRequest, "Invalid recommendation type.")
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found.")
	case errors.Is(err, domain.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "Item not found in recommendations.")
	default:
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}

func boolParam(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "true", "1", "yes":
		return true
	}
	return false
}
