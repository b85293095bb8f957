package gateway

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	mailmind "github.com/poiesic/mailmind"
)

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(sys *mailmind.System) chi.Router {
	h := NewHandler(sys)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)

	r.Get("/mail", h.ListMail)
	r.Get("/mail/{id}", h.GetMail)

	r.Get("/search", h.Search)
	r.Post("/ask", h.Ask)

	r.Get("/stats", h.Stats)
	r.Post("/index/rebuild", h.RebuildIndex)
	r.Post("/notify/test", h.TestNotification)
	r.Post("/send", h.Send)

	return r
}
