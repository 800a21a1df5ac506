package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BenjaminIrwin/scatexparser/internal/parseservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *parseservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Parsing.
	r.Post("/parse", h.Parse)

	// Parse history.
	r.Get("/history", h.ListHistory)
	r.Get("/history/{id}", h.GetHistory)
	r.Delete("/history", h.PurgeHistory)

	// Locales.
	r.Get("/locales", h.Locales)
	r.Post("/locales/reload", h.ReloadLocales)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
