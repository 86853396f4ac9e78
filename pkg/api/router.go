package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetRouter initialises a new http router and applies all routes
func GetRouter(manager StatManager) http.Handler {
	r := chi.NewRouter()
	return applyRoutes(r, &handler{manager: manager})
}

func applyRoutes(r chi.Router, h *handler) chi.Router {
	r.Route("/stats/{name}", func(r chi.Router) {
		r.Post("/", h.addStat)
		r.Get("/", h.getSeries)
		r.Get("/start", h.getStatStart)
		r.Get("/{date}", h.getStat)
		r.Put("/{date}", h.updateStat)
	})
	r.Post("/repair", h.repair)
	r.Post("/reload", h.reload)

	return r
}
