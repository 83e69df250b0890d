// internal/app/features/analytics/export.go
package analytics

import (
	"net/http"
	"time"

	apianalytics "github.com/dalemusser/learnadmin/internal/app/api/analytics"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/export"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeCoursesExport handles GET /analytics/export/courses.
func (h *Handler) ServeCoursesExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "export course ranking")
	defer cancel()

	ov, err := h.API.Analytics.Overview(ctx, auth.Token(r))
	if err != nil {
		h.Act.Fail(w, r, err, "Failed to export course ranking.", "/analytics")
		return
	}
	rows := byRevenue(ov.TopCourses)
	err = export.Serve(w, "course_ranking", time.Now(), export.CourseRankingColumns, rows)
	h.Act.Exported(r, "course_ranking", len(rows), err)
}

// ServeRevenueExport handles GET /analytics/export/revenue?range=.
func (h *Handler) ServeRevenueExport(w http.ResponseWriter, r *http.Request) {
	rng := apianalytics.NormalizeRange(query.Get(r, "range"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "export revenue")
	defer cancel()

	points, err := h.API.Analytics.Revenue(ctx, auth.Token(r), rng)
	if err != nil {
		h.Act.Fail(w, r, err, "Failed to export revenue.", "/analytics?range="+rng)
		return
	}
	err = export.Serve(w, "revenue_"+rng, time.Now(), export.RevenueColumns, points)
	h.Act.Exported(r, "revenue", len(points), err)
}
