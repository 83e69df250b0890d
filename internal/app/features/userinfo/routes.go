// internal/app/features/userinfo/routes.go
package userinfo

import "github.com/go-chi/chi/v5"

// MountRoutes registers GET /api/me on the supplied router. The handler
// answers signed-out callers itself, so no guard is applied.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/api/me", h.ServeUserInfo)
}
