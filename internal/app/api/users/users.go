// Package users is the backend slice for learner accounts at /users.
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/api"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/dalemusser/learnadmin/internal/domain/models"
)

func userID(u models.User) string { return u.ID }

var (
	listEP = slice.Endpoint{
		Name: "users.list", Method: http.MethodGet, Path: "/users",
		Provides: slice.ProvideList(api.TagUser, userID),
	}
	getEP = slice.Endpoint{
		Name: "users.get", Method: http.MethodGet, Path: "/users/{id}",
		Provides: slice.ProvideItem(api.TagUser, userID),
	}
	statusEP = slice.Endpoint{
		Name: "users.status", Method: http.MethodPatch, Path: "/users/{id}/status",
		Invalidates: slice.InvalidateItem(api.TagUser),
	}
)

type Slice struct {
	r *slice.Runner
}

func New(r *slice.Runner) *Slice { return &Slice{r: r} }

func (s *Slice) List(ctx context.Context, token string) ([]models.User, error) {
	return slice.Query[[]models.User](ctx, s.r, listEP, slice.Call{Token: token})
}

func (s *Slice) Get(ctx context.Context, token, id string) (models.User, error) {
	return slice.Query[models.User](ctx, s.r, getEP, slice.ID(token, id))
}

// SetStatus blocks or unblocks a learner.
func (s *Slice) SetStatus(ctx context.Context, token, id string, in models.StatusUpdate) error {
	call := slice.ID(token, id)
	call.Body = in
	return slice.Exec(ctx, s.r, statusEP, call)
}
