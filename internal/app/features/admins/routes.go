// internal/app/features/admins/routes.go
package admins

import (
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/go-chi/chi/v5"
)

// Routes mounts operator management under /admins. Only super admins hold
// the admins route.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRoute(permissions.Admins))

	r.Get("/", h.ServeList)
	r.Get("/new", h.ServeNew)
	r.Post("/", h.HandleCreate)
	r.Post("/{id}/role", h.HandleRole)
	r.Post("/{id}/delete", h.HandleDelete)
	return r
}
