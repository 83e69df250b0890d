// internal/app/features/instructors/export.go
package instructors

import (
	"net/http"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/export"
	"github.com/dalemusser/learnadmin/internal/app/system/stats"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
)

// ServeExport handles GET /instructors/export.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "export instructors")
	defer cancel()

	all, err := h.API.Instructors.List(ctx, auth.Token(r))
	if err != nil {
		h.Act.Fail(w, r, err, "Failed to export instructors.", "/instructors")
		return
	}
	rows := stats.FilterInstructors(all, listFilter(r))
	err = export.Serve(w, "instructors", time.Now(), export.InstructorColumns, rows)
	h.Act.Exported(r, "instructor", len(rows), err)
}
