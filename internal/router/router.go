package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tastefolio/personalization-service/internal/handler"
)

func Setup(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Routes. Fixed prefixes keep "cross", "explain" and
	// "global-explain" from being read as an email.
	r.Route("/api/recommendations", func(r chi.Router) {
		r.Get("/", h.GetRecommendationsQuery)
		r.Get("/cross/{email}", h.GetCrossDomainRecommendations)
		r.Get("/global-explain", h.GetGlobalExplanations)
		r.Get("/explain/{id}", h.GetRecommendationExplanation)
		r.Get("/{email}/history", h.GetHistory)
		r.Get("/{email}/{type}", h.GetRecommendations)
	})

	r.Route("/api/preferences", func(r chi.Router) {
		r.Post("/{email}/{type}", h.SavePreferences)
		r.Get("/{email}/{type}", h.GetPreferences)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", healthCheck)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
