// Package notifications is the backend slice for broadcast notifications.
package notifications

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/api"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/dalemusser/learnadmin/internal/domain/models"
)

var (
	listEP = slice.Endpoint{
		Name: "notifications.list", Method: http.MethodGet, Path: "/notifications",
		Provides: slice.ProvideList(api.TagNotification, func(n models.Notification) string { return n.ID }),
	}
	sendEP = slice.Endpoint{
		Name: "notifications.send", Method: http.MethodPost, Path: "/notifications",
		Invalidates: slice.InvalidateList(api.TagNotification),
	}
	deleteEP = slice.Endpoint{
		Name: "notifications.delete", Method: http.MethodDelete, Path: "/notifications/{id}",
		Invalidates: slice.InvalidateItem(api.TagNotification),
	}
)

type Slice struct {
	r *slice.Runner
}

func New(r *slice.Runner) *Slice { return &Slice{r: r} }

func (s *Slice) List(ctx context.Context, token string) ([]models.Notification, error) {
	return slice.Query[[]models.Notification](ctx, s.r, listEP, slice.Call{Token: token})
}

// Send broadcasts a notification to its audience.
func (s *Slice) Send(ctx context.Context, token string, in models.NotificationInput) (models.Notification, error) {
	return slice.Mutate[models.Notification](ctx, s.r, sendEP, slice.Call{Token: token, Body: in})
}

func (s *Slice) Delete(ctx context.Context, token, id string) error {
	return slice.Exec(ctx, s.r, deleteEP, slice.ID(token, id))
}
