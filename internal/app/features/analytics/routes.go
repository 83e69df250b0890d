// internal/app/features/analytics/routes.go
package analytics

import (
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the reporting pages under /analytics.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRoute(permissions.Analytics))

	r.Get("/", h.ServeOverview)
	r.Get("/export/courses", h.ServeCoursesExport)
	r.Get("/export/revenue", h.ServeRevenueExport)
	return r
}
