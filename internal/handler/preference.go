package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/tastefolio/personalization-service/internal/domain"
)

// POST /api/preferences/{email}/{type}
func (h *Handler) SavePreferences(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	domainParam := chi.URLParam(r, "type")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Missing email parameter.")
		return
	}

	var snap domain.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid preferences payload.")
		return
	}

	if err := h.service.SavePreferences(r.Context(), email, domainParam, snap); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PreferencesResponse{
		Success: true,
		Data:    snap,
		Message: "Preferences saved successfully",
	})
}

// GET /api/preferences/{email}/{type}
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	domainParam := chi.URLParam(r, "type")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Missing email parameter.")
		return
	}

	snap, err := h.service.GetPreferences(r.Context(), email, domainParam)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PreferencesResponse{
		Success: true,
		Data:    snap,
	})
}
