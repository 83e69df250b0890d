// internal/app/features/assignments/routes.go
package assignments

import (
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the assignment pages under /assignments.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRoute(permissions.Assignments))

	r.Get("/", h.ServeList)
	r.Get("/new", h.ServeNew)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeView)
	r.Get("/{id}/edit", h.ServeEdit)
	r.Post("/{id}/edit", h.HandleEdit)
	r.Post("/{id}/delete", h.HandleDelete)
	r.Post("/{id}/submissions/{sid}/grade", h.HandleGrade)
	return r
}
