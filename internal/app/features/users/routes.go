// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the learner pages under /users.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRoute(permissions.Users))

	r.Get("/", h.ServeList)
	r.Get("/export", h.ServeExport)
	r.Get("/{id}", h.ServeView)
	r.Post("/{id}/status", h.HandleStatus)
	return r
}
