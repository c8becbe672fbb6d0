package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tastefolio/personalization-service/internal/service"
)

// GET /api/recommendations/{email}/{type}
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	domainParam := chi.URLParam(r, "type")
	h.serveRecommendations(w, r, email, domainParam)
}

// GET /api/recommendations?email=...&type=movies&explain=true&force=true
func (h *Handler) GetRecommendationsQuery(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	domainParam := r.URL.Query().Get("type")
	if domainParam == "" {
		domainParam = "movies"
	}
	h.serveRecommendations(w, r, email, domainParam)
}

func (h *Handler) serveRecommendations(w http.ResponseWriter, r *http.Request, email, domainParam string) {
	if email == "" {
		writeError(w, http.StatusBadRequest, "Missing email parameter.")
		return
	}

	opts := service.Options{
		Explain: boolParam(r, "explain"),
		Force:   boolParam(r, "force"),
	}

	result, err := h.service.GetRecommendations(r.Context(), email, domainParam, opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendationResponse{
		Success:         true,
		Recommendations: result.Items,
		Source:          result.Source,
		Message:         fmt.Sprintf("%s recommendations fetched successfully", domainParam),
	})
}

// GET /api/recommendations/cross/{email}?query=...|base=...
func (h *Handler) GetCrossDomainRecommendations(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Missing email parameter.")
		return
	}

	query := r.URL.Query().Get("query")
	base := r.URL.Query().Get("base")
	if query == "" && base == "" {
		writeError(w, http.StatusBadRequest, "Provide either a 'query' or 'base' parameter.")
		return
	}

	seed, fromQuery := query, true
	if query == "" {
		seed, fromQuery = base, false
	}

	result, err := h.service.GetCrossDomain(r.Context(), email, seed, fromQuery)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CrossDomainResponse{
		Success:         true,
		BaseQuery:       result.BaseQuery,
		Recommendations: result.Recommendations,
		Message:         "Cross-domain recommendations fetched successfully",
	})
}

// GET /api/recommendations/{email}/history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Missing email parameter.")
		return
	}

	history, err := h.service.History(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, HistoryResponse{
		Success: true,
		History: history,
		Message: "History fetched successfully",
	})
}

// GET /api/recommendations/explain/{id}?email=...&type=movies
func (h *Handler) GetRecommendationExplanation(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")
	email := r.URL.Query().Get("email")
	if email == "" || itemID == "" {
		writeError(w, http.StatusBadRequest, "Missing email or id parameter.")
		return
	}
	domainParam := r.URL.Query().Get("type")
	if domainParam == "" {
		domainParam = "movies"
	}

	exp, err := h.service.ExplainOne(r.Context(), itemID, email, domainParam)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ExplanationResponse{
		Success:     true,
		ID:          exp.ID,
		Explanation: exp.Explanation,
		Score:       exp.Score,
	})
}

// GET /api/recommendations/global-explain?type=movies
func (h *Handler) GetGlobalExplanations(w http.ResponseWriter, r *http.Request) {
	domainParam := r.URL.Query().Get("type")
	if domainParam == "" {
		domainParam = "movies"
	}

	importances, err := h.service.ExplainGlobal(domainParam)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GlobalExplanationResponse{
		Success:     true,
		Domain:      domainParam,
		Importances: importances,
	})
}
