// internal/app/features/tickets/reply.go
package tickets

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/learnadmin/internal/app/system/navigation"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

const maxReplyRunes = 5000

// validateReply sanitizes a reply and reports why it cannot be sent.
func validateReply(raw string) (string, string) {
	msg := htmlsanitize.Sanitize(raw)
	if strings.TrimSpace(htmlsanitize.StripTags(msg)) == "" {
		return "", "Reply cannot be empty."
	}
	if utf8.RuneCountInString(msg) > maxReplyRunes {
		return "", "Reply is too long."
	}
	return msg, ""
}

// HandleReply handles POST /tickets/{id}/reply. An invalid reply re-renders
// the thread with the draft intact.
func (h *Handler) HandleReply(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	raw := formutil.Trimmed(r, "message")

	msg, invalid := validateReply(raw)
	if invalid != "" {
		h.renderView(w, r, id, raw, invalid)
		return
	}

	self := "/tickets/" + id
	errMsg, handled := h.Act.Submit(w, r, actions.Spec{
		Success:  "Reply sent.",
		Failure:  "Failed to send reply.",
		Redirect: self,
		Audit:    &actions.Audit{Event: audit.EventTicketReplied, Resource: "ticket", ResourceID: id},
	}, func(ctx context.Context) error {
		return h.API.Tickets.Reply(ctx, auth.Token(r), id, msg)
	})
	if !handled {
		h.renderView(w, r, id, raw, errMsg)
	}
}

// HandleStatus handles POST /tickets/{id}/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status := formutil.Trimmed(r, "status")
	back := navigation.SafeBackURL(r, navigation.TicketsBackURL)

	if !slices.Contains(models.TicketStatuses, status) {
		h.Act.Reject(w, r, "Unknown ticket status.", back)
		return
	}

	_ = h.Act.Run(w, r, actions.Spec{
		Success:  "Ticket marked " + strings.ReplaceAll(status, "_", " ") + ".",
		Failure:  "Failed to update ticket.",
		Redirect: back,
		Events:   []string{"tickets:refresh"},
		Audit: &actions.Audit{
			Event: audit.EventTicketStatus, Resource: "ticket", ResourceID: id,
			Details: map[string]string{"status": status},
		},
	}, func(ctx context.Context) error {
		return h.API.Tickets.SetStatus(ctx, auth.Token(r), id, status)
	})
}
