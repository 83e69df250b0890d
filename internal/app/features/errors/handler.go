// internal/app/features/errors/handler.go
package errors

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler serves the standalone error pages route guards redirect to.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Routes mounts GET /forbidden and GET /unauthorized.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/forbidden", h.Forbidden)
	r.Get("/unauthorized", h.Unauthorized)
	return r
}

// Forbidden renders the access denied page.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, "", "/dashboard")
}

// Unauthorized renders the sign in required page.
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	RenderUnauthorized(w, r, "")
}

// NotFound is the router's fallback handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderNotFound(w, r, "", "/dashboard")
}
