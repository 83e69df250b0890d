// internal/app/features/enrollments/export.go
package enrollments

import (
	"net/http"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/export"
	"github.com/dalemusser/learnadmin/internal/app/system/stats"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
)

// ServeExport handles GET /enrollments/export with the list's filters.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "export enrollments")
	defer cancel()

	enrollments, err := h.API.Enrollments.List(ctx, auth.Token(r))
	if err != nil {
		h.Act.Fail(w, r, err, "Failed to export enrollments.", "/enrollments")
		return
	}
	rows := newestFirst(stats.FilterEnrollments(enrollments, listFilter(r)))
	err = export.Serve(w, "enrollments", time.Now(), export.EnrollmentColumns, rows)
	h.Act.Exported(r, "enrollment", len(rows), err)
}
