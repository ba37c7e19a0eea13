package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/starford/acropad/internal/noteservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(svc *noteservice.Service, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/greet", h.Greet)

	// Vault traversal.
	r.Get("/vault/scan", h.Scan)
	r.Get("/vault/search", h.Search)

	// Single-file access.
	r.Get("/files", h.ReadFile)
	r.Put("/files", h.SaveFile)
	r.Get("/files/render", h.RenderFile)

	// Note management.
	r.Post("/files", h.CreateNote)
	r.Delete("/files", h.DeleteFile)
	r.Post("/files/rename", h.RenameFile)
	r.Post("/dirs", h.MakeDir)

	return r
}
