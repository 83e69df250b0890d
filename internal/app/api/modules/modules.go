// Package modules is the backend slice for /modules.
package modules

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/learnadmin/internal/app/api"
	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/dalemusser/learnadmin/internal/domain/models"
)

func moduleID(m models.Module) string { return m.ID }

var (
	listEP = slice.Endpoint{
		Name: "modules.list", Method: http.MethodGet, Path: "/modules",
		Provides: slice.ProvideList(api.TagModule, moduleID),
	}
	getEP = slice.Endpoint{
		Name: "modules.get", Method: http.MethodGet, Path: "/modules/{id}",
		Provides: slice.ProvideItem(api.TagModule, moduleID),
	}
	createEP = slice.Endpoint{
		Name: "modules.create", Method: http.MethodPost, Path: "/modules",
		Invalidates: slice.InvalidateList(api.TagModule),
	}
	updateEP = slice.Endpoint{
		Name: "modules.update", Method: http.MethodPatch, Path: "/modules/{id}",
		Invalidates: slice.InvalidateItem(api.TagModule),
	}
	deleteEP = slice.Endpoint{
		Name: "modules.delete", Method: http.MethodDelete, Path: "/modules/{id}",
		Invalidates: slice.InvalidateItem(api.TagModule, apicache.List(api.TagLesson)),
	}
)

// Slice exposes typed module calls.
type Slice struct {
	r *slice.Runner
}

// New returns a module slice over r.
func New(r *slice.Runner) *Slice { return &Slice{r: r} }

// List returns the modules of a course. An empty courseID lists all modules.
func (s *Slice) List(ctx context.Context, token, courseID string) ([]models.Module, error) {
	call := slice.Call{Token: token}
	if courseID != "" {
		call.Query = url.Values{"courseId": {courseID}}
	}
	return slice.Query[[]models.Module](ctx, s.r, listEP, call)
}

func (s *Slice) Get(ctx context.Context, token, id string) (models.Module, error) {
	return slice.Query[models.Module](ctx, s.r, getEP, slice.ID(token, id))
}

func (s *Slice) Create(ctx context.Context, token string, in models.ModuleInput) (models.Module, error) {
	return slice.Mutate[models.Module](ctx, s.r, createEP, slice.Call{Token: token, Body: in})
}

func (s *Slice) Update(ctx context.Context, token, id string, in models.ModuleInput) (models.Module, error) {
	call := slice.ID(token, id)
	call.Body = in
	return slice.Mutate[models.Module](ctx, s.r, updateEP, call)
}

// Reorder moves a module to a new position within its course.
func (s *Slice) Reorder(ctx context.Context, token, id string, order int) error {
	call := slice.ID(token, id)
	call.Body = map[string]int{"order": order}
	return slice.Exec(ctx, s.r, updateEP, call)
}

func (s *Slice) Delete(ctx context.Context, token, id string) error {
	return slice.Exec(ctx, s.r, deleteEP, slice.ID(token, id))
}
