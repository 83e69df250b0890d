// internal/app/features/courses/routes.go
package courses

import (
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the course pages under /courses.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRoute(permissions.Courses))

	r.Get("/", h.ServeList)
	r.Get("/export", h.ServeExport)

	r.Get("/new", h.ServeNew)
	r.Post("/", h.HandleCreate)

	r.Get("/{id}", h.ServeView)
	r.Get("/{id}/edit", h.ServeEdit)
	r.Post("/{id}/edit", h.HandleEdit)
	r.Post("/{id}/publish", h.HandlePublish)
	r.Post("/{id}/delete", h.HandleDelete)
	return r
}
