package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers the gateway routes.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/session", h.SessionInfo)
		r.Get("/export", h.Export)
		r.Get("/players", h.Players)
		r.Get("/players/{id}", h.PlayerByID)
		r.Route("/leagues/{id}", func(r chi.Router) {
			r.Get("/", h.LeagueOverview)
			r.Get("/roster", h.Roster)
		})
	})
	return r
}
