package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/ahump20/blaze-data-gateway/internal/metrics"
)

// NewRouter registers the gateway's HTTP routes.
func NewRouter(h *Handler, logger *slog.Logger, recorder *metrics.Recorder) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(LoggingMiddleware(logger, recorder))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Get("/games", h.Games)
		r.Get("/teams/{team}/stats", h.TeamStats)
		r.Route("/gateway", func(r chi.Router) {
			r.Get("/breakers", h.Breakers)
			r.Get("/cache", h.CacheStats)
			r.Delete("/cache", h.CacheClear)
		})
	})

	return r
}
