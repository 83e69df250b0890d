// internal/app/features/tickets/export.go
package tickets

import (
	"net/http"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/export"
	"github.com/dalemusser/learnadmin/internal/app/system/stats"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
)

// ServeExport handles GET /tickets/export.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "export tickets")
	defer cancel()

	all, err := h.API.Tickets.List(ctx, auth.Token(r))
	if err != nil {
		h.Act.Fail(w, r, err, "Failed to export tickets.", "/tickets")
		return
	}
	rows := triage(stats.FilterTickets(all, listFilter(r)))
	err = export.Serve(w, "tickets", time.Now(), export.TicketColumns, rows)
	h.Act.Exported(r, "ticket", len(rows), err)
}
