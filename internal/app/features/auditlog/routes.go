// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit log (typically at "/auditlog"). Only super
// admins hold the auditlog route.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRoute(permissions.AuditLog))

		pr.Get("/", h.ServeList)
	})

	return r
}
