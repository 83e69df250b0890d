// Package tickets is the backend slice for support tickets at /tickets.
package tickets

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/api"
	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/dalemusser/learnadmin/internal/domain/models"
)

func ticketID(t models.SupportTicket) string { return t.ID }

var (
	listEP = slice.Endpoint{
		Name: "tickets.list", Method: http.MethodGet, Path: "/tickets",
		Provides: slice.ProvideList(api.TagTicket, ticketID),
	}
	getEP = slice.Endpoint{
		Name: "tickets.get", Method: http.MethodGet, Path: "/tickets/{id}",
		Provides: slice.ProvideItem(api.TagTicket, ticketID),
	}
	replyEP = slice.Endpoint{
		Name: "tickets.reply", Method: http.MethodPost, Path: "/tickets/{id}/reply",
		Invalidates: slice.InvalidateItem(api.TagTicket),
	}
	// Open ticket counts feed the dashboard overview.
	statusEP = slice.Endpoint{
		Name: "tickets.status", Method: http.MethodPatch, Path: "/tickets/{id}/status",
		Invalidates: slice.InvalidateItem(api.TagTicket, apicache.List(api.TagAnalytics)),
	}
)

type Slice struct {
	r *slice.Runner
}

func New(r *slice.Runner) *Slice { return &Slice{r: r} }

func (s *Slice) List(ctx context.Context, token string) ([]models.SupportTicket, error) {
	return slice.Query[[]models.SupportTicket](ctx, s.r, listEP, slice.Call{Token: token})
}

// Get returns a ticket with its reply thread.
func (s *Slice) Get(ctx context.Context, token, id string) (models.SupportTicket, error) {
	return slice.Query[models.SupportTicket](ctx, s.r, getEP, slice.ID(token, id))
}

// Reply appends a message from the signed-in admin to the thread.
func (s *Slice) Reply(ctx context.Context, token, id, message string) error {
	call := slice.ID(token, id)
	call.Body = models.ReplyInput{Message: message}
	return slice.Exec(ctx, s.r, replyEP, call)
}

func (s *Slice) SetStatus(ctx context.Context, token, id, status string) error {
	call := slice.ID(token, id)
	call.Body = models.StatusUpdate{Status: status}
	return slice.Exec(ctx, s.r, statusEP, call)
}
