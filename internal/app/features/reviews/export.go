// internal/app/features/reviews/export.go
package reviews

import (
	"net/http"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/export"
	"github.com/dalemusser/learnadmin/internal/app/system/stats"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
)

// ServeExport handles GET /reviews/export with the list's filters.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "export reviews")
	defer cancel()

	reviews, err := h.API.Reviews.List(ctx, auth.Token(r))
	if err != nil {
		h.Act.Fail(w, r, err, "Failed to export reviews.", "/reviews")
		return
	}
	rows := newestFirst(stats.FilterReviews(reviews, listFilter(r)))
	err = export.Serve(w, "reviews", time.Now(), export.ReviewColumns, rows)
	h.Act.Exported(r, "review", len(rows), err)
}
