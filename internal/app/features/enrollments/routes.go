// internal/app/features/enrollments/routes.go
package enrollments

import (
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the enrollment pages under /enrollments.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRoute(permissions.Enrollments))

	r.Get("/", h.ServeList)
	r.Get("/export", h.ServeExport)
	r.Get("/{id}", h.ServeView)
	r.Post("/{id}/status", h.HandleUpdate)
	r.Post("/{id}/delete", h.HandleDelete)
	return r
}
