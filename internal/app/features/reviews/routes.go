// internal/app/features/reviews/routes.go
package reviews

import (
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/go-chi/chi/v5"
)

// Routes mounts review moderation under /reviews.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRoute(permissions.Reviews))

	r.Get("/", h.ServeList)
	r.Get("/export", h.ServeExport)
	r.Post("/{id}/status", h.HandleStatus)
	r.Post("/{id}/delete", h.HandleDelete)
	return r
}
