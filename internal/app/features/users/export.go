// internal/app/features/users/export.go
package users

import (
	"net/http"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/export"
	"github.com/dalemusser/learnadmin/internal/app/system/stats"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
)

// ServeExport handles GET /users/export with the list's filters.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "export users")
	defer cancel()

	users, err := h.API.Users.List(ctx, auth.Token(r))
	if err != nil {
		h.Act.Fail(w, r, err, "Failed to export users.", "/users")
		return
	}
	rows := stats.FilterUsers(users, listFilter(r))
	err = export.Serve(w, "users", time.Now(), export.UserColumns, rows)
	h.Act.Exported(r, "user", len(rows), err)
}
