package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the service's HTTP surface.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/search", func(r chi.Router) {
		r.Post("/typosquatting", h.HandleTyposquat)
		r.Post("/similarity", h.HandleSimilarity)
		r.Post("/keyword", h.HandleKeyword)
	})
	r.Get("/algorithms", h.HandleAlgorithms)
	r.Get("/health", h.HandleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
