// Package lessons is the backend slice for /lessons.
package lessons

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/learnadmin/internal/app/api"
	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/dalemusser/learnadmin/internal/domain/models"
)

func lessonID(l models.Lesson) string { return l.ID }

// Lesson counts are shown on module rows, so lesson writes also stale modules.
var (
	listEP = slice.Endpoint{
		Name: "lessons.list", Method: http.MethodGet, Path: "/lessons",
		Provides: slice.ProvideList(api.TagLesson, lessonID),
	}
	getEP = slice.Endpoint{
		Name: "lessons.get", Method: http.MethodGet, Path: "/lessons/{id}",
		Provides: slice.ProvideItem(api.TagLesson, lessonID),
	}
	createEP = slice.Endpoint{
		Name: "lessons.create", Method: http.MethodPost, Path: "/lessons",
		Invalidates: slice.InvalidateList(api.TagLesson, apicache.List(api.TagModule)),
	}
	updateEP = slice.Endpoint{
		Name: "lessons.update", Method: http.MethodPatch, Path: "/lessons/{id}",
		Invalidates: slice.InvalidateItem(api.TagLesson),
	}
	deleteEP = slice.Endpoint{
		Name: "lessons.delete", Method: http.MethodDelete, Path: "/lessons/{id}",
		Invalidates: slice.InvalidateItem(api.TagLesson, apicache.List(api.TagModule)),
	}
)

type Slice struct {
	r *slice.Runner
}

func New(r *slice.Runner) *Slice { return &Slice{r: r} }

// List returns the lessons of a module.
func (s *Slice) List(ctx context.Context, token, moduleID string) ([]models.Lesson, error) {
	call := slice.Call{Token: token}
	if moduleID != "" {
		call.Query = url.Values{"moduleId": {moduleID}}
	}
	return slice.Query[[]models.Lesson](ctx, s.r, listEP, call)
}

func (s *Slice) Get(ctx context.Context, token, id string) (models.Lesson, error) {
	return slice.Query[models.Lesson](ctx, s.r, getEP, slice.ID(token, id))
}

func (s *Slice) Create(ctx context.Context, token string, in models.LessonInput) (models.Lesson, error) {
	return slice.Mutate[models.Lesson](ctx, s.r, createEP, slice.Call{Token: token, Body: in})
}

func (s *Slice) Update(ctx context.Context, token, id string, in models.LessonInput) (models.Lesson, error) {
	call := slice.ID(token, id)
	call.Body = in
	return slice.Mutate[models.Lesson](ctx, s.r, updateEP, call)
}

func (s *Slice) Delete(ctx context.Context, token, id string) error {
	return slice.Exec(ctx, s.r, deleteEP, slice.ID(token, id))
}
