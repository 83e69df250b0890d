// internal/app/features/tickets/view.go
package tickets

import (
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeView shows a ticket with its full thread and the reply form.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	h.renderView(w, r, chi.URLParam(r, "id"), "", "")
}

func (h *Handler) renderView(w http.ResponseWriter, r *http.Request, id, draft, errMsg string) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "get ticket")
	defer cancel()

	t, err := h.API.Tickets.Get(ctx, auth.Token(r), id)
	if err != nil {
		h.Act.Fail(w, r, err, "Ticket not found.", "/tickets")
		return
	}

	data := viewData{
		BaseVM:        viewdata.NewBaseVM(w, r, t.Subject, "/tickets"),
		ticketRow:     row(t),
		Description:   htmlsanitize.PrepareForDisplay(t.Description),
		Thread:        thread(t.Replies),
		Closed:        t.Status == models.TicketClosed,
		StatusOptions: format.Options(models.TicketStatuses, t.Status),
		Draft:         draft,
	}
	if errMsg != "" {
		data.AddError(errMsg)
	}
	templates.Render(w, r, "ticket_view", data)
}

func thread(replies []models.TicketReply) []replyView {
	out := make([]replyView, 0, len(replies))
	for _, rp := range replies {
		out = append(out, replyView{
			Author:  rp.Author,
			Staff:   rp.AuthorRole != "" && rp.AuthorRole != "user",
			Message: htmlsanitize.PrepareForDisplay(rp.Message),
			Sent:    format.DateTime(rp.CreatedAt),
		})
	}
	return out
}
