// Package admins is the backend slice for dashboard operators and sign-in
// at /admin.
package admins

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/api"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/dalemusser/learnadmin/internal/domain/models"
)

var (
	loginEP = slice.Endpoint{
		Name: "admins.login", Method: http.MethodPost, Path: "/admin/login",
	}
	profileEP = slice.Endpoint{
		Name: "admins.profile", Method: http.MethodGet, Path: "/admin/profile",
	}
	listEP = slice.Endpoint{
		Name: "admins.list", Method: http.MethodGet, Path: "/admin",
		Provides: slice.ProvideList(api.TagAdmin, func(a models.Admin) string { return a.ID }),
	}
	createEP = slice.Endpoint{
		Name: "admins.create", Method: http.MethodPost, Path: "/admin",
		Invalidates: slice.InvalidateList(api.TagAdmin),
	}
	roleEP = slice.Endpoint{
		Name: "admins.role", Method: http.MethodPatch, Path: "/admin/{id}",
		Invalidates: slice.InvalidateItem(api.TagAdmin),
	}
	deleteEP = slice.Endpoint{
		Name: "admins.delete", Method: http.MethodDelete, Path: "/admin/{id}",
		Invalidates: slice.InvalidateItem(api.TagAdmin),
	}
)

type Slice struct {
	r *slice.Runner
}

func New(r *slice.Runner) *Slice { return &Slice{r: r} }

// Login exchanges credentials for a bearer token and the admin profile.
func (s *Slice) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	return slice.Mutate[models.LoginResult](ctx, s.r, loginEP, slice.Call{
		Body: models.Credentials{Email: email, Password: password},
	})
}

// Profile returns the admin the token belongs to. It is never cached.
func (s *Slice) Profile(ctx context.Context, token string) (models.Admin, error) {
	return slice.Mutate[models.Admin](ctx, s.r, profileEP, slice.Call{Token: token})
}

func (s *Slice) List(ctx context.Context, token string) ([]models.Admin, error) {
	return slice.Query[[]models.Admin](ctx, s.r, listEP, slice.Call{Token: token})
}

func (s *Slice) Create(ctx context.Context, token string, in models.AdminInput) (models.Admin, error) {
	return slice.Mutate[models.Admin](ctx, s.r, createEP, slice.Call{Token: token, Body: in})
}

func (s *Slice) SetRole(ctx context.Context, token, id, role string) error {
	call := slice.ID(token, id)
	call.Body = models.RoleUpdate{Role: role}
	return slice.Exec(ctx, s.r, roleEP, call)
}

func (s *Slice) Delete(ctx context.Context, token, id string) error {
	return slice.Exec(ctx, s.r, deleteEP, slice.ID(token, id))
}
