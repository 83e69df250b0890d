// internal/app/features/courses/export.go
package courses

import (
	"net/http"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/export"
	"github.com/dalemusser/learnadmin/internal/app/system/stats"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
)

// ServeExport handles GET /courses/export. It downloads the courses that
// match the list's current filters as an .xlsx sheet.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "export courses")
	defer cancel()

	courses, err := h.API.Courses.List(ctx, auth.Token(r))
	if err != nil {
		h.Act.Fail(w, r, err, "Failed to export courses.", "/courses")
		return
	}
	rows := stats.FilterCourses(courses, listFilter(r))
	err = export.Serve(w, "courses", time.Now(), export.CourseColumns, rows)
	h.Act.Exported(r, "course", len(rows), err)
}
